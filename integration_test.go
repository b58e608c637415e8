package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"ott-manager.app/api/handlers"
	"ott-manager.app/api/internal/config"
	"ott-manager.app/api/internal/metrics"
	"ott-manager.app/api/internal/ratelimit"
	"ott-manager.app/api/internal/testutil"
	"ott-manager.app/api/storage"
)

// Integration tests that exercise complete workflows end-to-end

func newFullServer(t *testing.T, src storage.Source) *handlers.Server {
	t.Helper()

	cat := testutil.LoadCatalog(t, src)
	collector := metrics.New()
	collector.ObserveCatalog(cat.Records())

	return handlers.NewHttpServer(cat, handlers.Options{
		CORSAllowedOrigins: []string{"*"},
		RateLimiter:        ratelimit.New(100, time.Minute),
		Metrics:            collector,
	})
}

func listIDs(t *testing.T, server http.Handler, query string) []string {
	t.Helper()

	var resp handlers.SubscriptionListResponse
	testutil.DecodeJSON(t, testutil.Get(t, server, "/api/v1/subscriptions"+query), &resp)

	ids := make([]string, 0, len(resp.Subscriptions))
	for _, s := range resp.Subscriptions {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestWorkflow_SeedSQLiteAndServe(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	// Step 1: seed SQLite from the bundled sample
	sample, err := storage.NewSampleStorage()
	if err != nil {
		t.Fatalf("Failed to open sample: %v", err)
	}
	seedCat := testutil.LoadCatalog(t, sample)

	db, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	if err := db.Seed(ctx, seedCat.Records(), seedCat.Deployments()); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}
	db.Close()

	// Step 2: open through configuration as the server would
	t.Setenv("CATALOG_SOURCE", "sqlite")
	t.Setenv("DATABASE_URL", path)
	cfg, err := config.New()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	src, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open source: %v", err)
	}
	defer src.Close()

	server := newFullServer(t, src)

	// Step 3: the dashboard flows
	if diff := cmp.Diff([]string{"5"}, listIDs(t, server, "?category=Music&status=all")); diff != "" {
		t.Errorf("Music filter mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"4"}, listIDs(t, server, "?category=all&status=expired")); diff != "" {
		t.Errorf("Expired filter mismatch (-want +got):\n%s", diff)
	}
	if got := listIDs(t, server, "?category=NoSuchCategory&status=all"); len(got) != 0 {
		t.Errorf("Expected no results, got %v", got)
	}

	var summary handlers.SummaryResponse
	testutil.DecodeJSON(t, testutil.Get(t, server, "/api/v1/summary"), &summary)
	if summary.TotalActiveSpendDisplay != "$77.43" {
		t.Errorf("Expected $77.43 active spend, got %s", summary.TotalActiveSpendDisplay)
	}
}

func TestWorkflow_FileCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := map[string]interface{}{
		"subscriptions": []map[string]interface{}{
			{"id": "a", "name": "Crunchyroll", "category": "Anime", "price": 7.99, "billing_cycle": "monthly", "status": "active", "rating": 4.7},
			{"id": "b", "name": "Mubi", "category": "Film", "price": 119.88, "billing_cycle": "yearly", "status": "active", "rating": 4.4},
			{"id": "c", "name": "Paramount+", "category": "Entertainment", "price": 5.99, "billing_cycle": "monthly", "status": "trial", "rating": 3.9},
		},
	}
	data, err := json.Marshal(content)
	if err != nil {
		t.Fatalf("Failed to marshal catalog: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}

	src, err := storage.NewFileStorage(path)
	if err != nil {
		t.Fatalf("Failed to open file catalog: %v", err)
	}
	server := newFullServer(t, src)

	var summary handlers.SummaryResponse
	testutil.DecodeJSON(t, testutil.Get(t, server, "/api/v1/summary"), &summary)

	// Yearly prices are summed as-is
	if summary.TotalActiveSpend.Cents() != 799+11988 {
		t.Errorf("Expected %d cents, got %d", 799+11988, summary.TotalActiveSpend.Cents())
	}

	var card handlers.SubscriptionCard
	testutil.DecodeJSON(t, testutil.Get(t, server, "/api/v1/subscriptions/b"), &card)
	if card.DisplayPrice != "$119.88/yearly" {
		t.Errorf("Expected $119.88/yearly, got %s", card.DisplayPrice)
	}

	var filters handlers.FiltersResponse
	testutil.DecodeJSON(t, testutil.Get(t, server, "/api/v1/filters"), &filters)
	if diff := cmp.Diff([]string{"all", "Anime", "Film", "Entertainment"}, filters.Categories); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}

	var deployments handlers.DeploymentListResponse
	testutil.DecodeJSON(t, testutil.Get(t, server, "/api/v1/deployments"), &deployments)
	if deployments.Count != 0 || deployments.Deployments == nil {
		t.Errorf("Expected empty non-nil deployment list, got %+v", deployments)
	}
}

func TestWorkflow_HealthCheck(t *testing.T) {
	src, err := storage.NewSampleStorage()
	if err != nil {
		t.Fatalf("Failed to open sample: %v", err)
	}
	server := newFullServer(t, src)

	w := testutil.Get(t, server, "/health")
	if w.Code != http.StatusOK {
		t.Errorf("Health check failed with status %d", w.Code)
	}

	var response handlers.HealthResponse
	testutil.DecodeJSON(t, w, &response)
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
}

func TestWorkflow_RateLimiting(t *testing.T) {
	src, err := storage.NewSampleStorage()
	if err != nil {
		t.Fatalf("Failed to open sample: %v", err)
	}
	cat := testutil.LoadCatalog(t, src)
	server := handlers.NewHttpServer(cat, handlers.Options{
		RateLimiter: ratelimit.New(3, time.Minute),
	})

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/filters", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	want := []int{200, 200, 200, 429, 429}
	if diff := cmp.Diff(want, codes); diff != "" {
		t.Errorf("Status codes mismatch (-want +got):\n%s", diff)
	}

	// A different client has its own window
	req := httptest.NewRequest(http.MethodGet, "/api/v1/filters", nil)
	req.RemoteAddr = "198.51.100.2:5555"
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected other client to be allowed, got %d", w.Code)
	}
}
