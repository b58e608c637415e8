package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ott-manager.app/api/internal/catalog"
	"ott-manager.app/api/models"
	"ott-manager.app/api/storage"
)

// CreateTestSubscription creates a monthly subscription with given parameters
func CreateTestSubscription(id, name, category string, price models.Money, status models.SubscriptionStatus) models.Subscription {
	return models.Subscription{
		ID:           id,
		Name:         name,
		Category:     category,
		Price:        price,
		BillingCycle: models.BillingMonthly,
		NextRenewal:  "2024-02-15",
		Status:       status,
		Rating:       4.5,
		Subscribers:  "1M",
	}
}

// CreateTestDeployment creates a deployment with given parameters
func CreateTestDeployment(id, pipeline string, status models.DeploymentStatus) models.Deployment {
	return models.Deployment{
		ID:          id,
		Pipeline:    pipeline,
		Environment: "production",
		Branch:      "main",
		Commit:      "a1b2c3d",
		Status:      status,
	}
}

// SampleCatalog loads the bundled sample catalog
func SampleCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()

	src, err := storage.NewSampleStorage()
	if err != nil {
		t.Fatalf("Failed to open sample storage: %v", err)
	}
	return LoadCatalog(t, src)
}

// LoadCatalog reads and validates a catalog from any source
func LoadCatalog(t testing.TB, src storage.Source) *catalog.Catalog {
	t.Helper()

	subs, err := src.LoadSubscriptions(t.Context())
	if err != nil {
		t.Fatalf("Failed to load subscriptions: %v", err)
	}
	deps, err := src.LoadDeployments(t.Context())
	if err != nil {
		t.Fatalf("Failed to load deployments: %v", err)
	}

	cat, err := catalog.New(subs, deps)
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}
	return cat
}

// Get sends a GET request through the handler and returns the recorder
func Get(t testing.TB, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// DecodeJSON decodes the recorded body into v
func DecodeJSON(t testing.TB, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", ct)
	}
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

// AssertErrorResponse checks if the error response matches expected values
func AssertErrorResponse(t testing.TB, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()

	if w.Code != expectedStatus {
		t.Errorf("Expected status %d, got %d", expectedStatus, w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if response["error"] != expectedError {
		t.Errorf("Expected error '%s', got '%s'", expectedError, response["error"])
	}
}
