package catalog

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ott-manager.app/api/models"
)

func names(records []models.Subscription) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestFilter_Examples(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name     string
		category string
		status   StatusFilter
		expected []string
	}{
		{"identity", All, AllStatuses, []string{"Netflix", "Disney+", "Amazon Prime", "HBO Max", "Spotify Premium", "YouTube Premium", "Apple TV+", "Hulu"}},
		{"music only", "Music", AllStatuses, []string{"Spotify Premium"}},
		{"expired only", All, StatusFilter(models.StatusExpired), []string{"HBO Max"}},
		{"trial only", All, StatusFilter(models.StatusTrial), []string{"YouTube Premium"}},
		{"entertainment active keeps order", "Entertainment", StatusFilter(models.StatusActive), []string{"Netflix", "Amazon Prime", "Apple TV+", "Hulu"}},
		{"unknown category", "NoSuchCategory", AllStatuses, []string{}},
		{"no match for pair", "Music", StatusFilter(models.StatusExpired), []string{}},
		{"category is case sensitive", "music", AllStatuses, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.category, tt.status)
			if diff := cmp.Diff(tt.expected, names(got)); diff != "" {
				t.Errorf("Filter(%q, %q) mismatch (-want +got):\n%s", tt.category, tt.status, diff)
			}
		})
	}
}

func TestFilter_EmptyResultIsNotNil(t *testing.T) {
	got := Filter(sampleRecords(), "NoSuchCategory", AllStatuses)
	if got == nil {
		t.Fatal("Expected empty non-nil slice")
	}
	if len(got) != 0 {
		t.Errorf("Expected no records, got %d", len(got))
	}

	if got := Filter(nil, All, AllStatuses); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice for nil input, got %v", got)
	}
}

func TestFilter_Properties(t *testing.T) {
	records := sampleRecords()
	categories := append(Categories(records), "NoSuchCategory")
	statuses := append(StatusOptions(), StatusFilter("paused"))

	for _, cat := range categories {
		for _, st := range statuses {
			t.Run(fmt.Sprintf("%s/%s", cat, st), func(t *testing.T) {
				got := Filter(records, cat, st)

				// subset, in source order, every element satisfying the predicate
				next := 0
				for _, r := range got {
					found := false
					for next < len(records) {
						if records[next].ID == r.ID {
							found = true
							next++
							break
						}
						next++
					}
					if !found {
						t.Errorf("Record %s is not an ordered subsequence of the catalog", r.ID)
					}
					if cat != All && r.Category != cat {
						t.Errorf("Record %s has category %q, filter %q", r.ID, r.Category, cat)
					}
					if st != AllStatuses && string(r.Status) != string(st) {
						t.Errorf("Record %s has status %q, filter %q", r.ID, r.Status, st)
					}
				}

				// every matching record is kept
				expected := 0
				for _, r := range records {
					if (cat == All || r.Category == cat) && (st == AllStatuses || string(r.Status) == string(st)) {
						expected++
					}
				}
				if len(got) != expected {
					t.Errorf("Expected %d records, got %d", expected, len(got))
				}

				// idempotence
				if diff := cmp.Diff(got, Filter(got, cat, st)); diff != "" {
					t.Errorf("Filter is not idempotent (-once +twice):\n%s", diff)
				}
			})
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	_ = Filter(records, "Music", StatusFilter(models.StatusActive))
	if diff := cmp.Diff(sampleRecords(), records); diff != "" {
		t.Errorf("Input mutated (-want +got):\n%s", diff)
	}
}

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		input      string
		expected   StatusFilter
		expectedOK bool
	}{
		{"", AllStatuses, true},
		{"all", AllStatuses, true},
		{"active", StatusFilter(models.StatusActive), true},
		{"expired", StatusFilter(models.StatusExpired), true},
		{"trial", StatusFilter(models.StatusTrial), true},
		{"deployed", AllStatuses, false},
		{"ACTIVE", AllStatuses, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseStatusFilter(tt.input)
			if got != tt.expected || ok != tt.expectedOK {
				t.Errorf("ParseStatusFilter(%q) = (%q, %v), expected (%q, %v)", tt.input, got, ok, tt.expected, tt.expectedOK)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	expected := []string{"all", "Entertainment", "Family", "Premium", "Music", "Video"}
	if diff := cmp.Diff(expected, Categories(sampleRecords())); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"all"}, Categories(nil)); diff != "" {
		t.Errorf("Categories of empty catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestStatusOptions(t *testing.T) {
	expected := []StatusFilter{"all", "active", "expired", "trial"}
	if diff := cmp.Diff(expected, StatusOptions()); diff != "" {
		t.Errorf("StatusOptions mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterDeployments(t *testing.T) {
	deployments := sampleDeployments()

	if got := FilterDeployments(deployments, ""); len(got) != 3 {
		t.Errorf("Expected 3 deployments for empty filter, got %d", len(got))
	}
	if got := FilterDeployments(deployments, All); len(got) != 3 {
		t.Errorf("Expected 3 deployments for all, got %d", len(got))
	}

	got := FilterDeployments(deployments, "failed")
	if len(got) != 1 || got[0].ID != "d3" {
		t.Errorf("Expected only d3, got %v", got)
	}

	if got := FilterDeployments(deployments, "expired"); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil result, got %v", got)
	}
}

func BenchmarkFilter(b *testing.B) {
	records := sampleRecords()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Filter(records, "Entertainment", StatusFilter(models.StatusActive))
	}
}
