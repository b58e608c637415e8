package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"ott-manager.app/api/models"
)

func TestObserveCatalog(t *testing.T) {
	c := New()
	c.ObserveCatalog([]models.Subscription{
		{ID: "1", Price: 1549, Status: models.StatusActive},
		{ID: "2", Price: 1099, Status: models.StatusActive},
		{ID: "3", Price: 1699, Status: models.StatusExpired},
	})

	if got := testutil.ToFloat64(c.CatalogRecords.WithLabelValues("active")); got != 2 {
		t.Errorf("Expected 2 active records, got %v", got)
	}
	if got := testutil.ToFloat64(c.CatalogRecords.WithLabelValues("trial")); got != 0 {
		t.Errorf("Expected trial gauge present at 0, got %v", got)
	}
	if got := testutil.ToFloat64(c.CatalogActiveSpend); got != 2648 {
		t.Errorf("Expected 2648 cents, got %v", got)
	}
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	c := New()
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/api/v1/subscriptions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(c.HTTPRequestsTotal.WithLabelValues("/api/v1/subscriptions/{id}", "GET", "404"))
	if got != 3 {
		t.Errorf("Expected 3 requests under one route label, got %v", got)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	c := New()
	c.ObserveCatalog(nil)

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ott_manager_catalog_active_spend_cents 0") {
		t.Errorf("Expected active spend gauge in output, got:\n%s", w.Body.String())
	}
}
