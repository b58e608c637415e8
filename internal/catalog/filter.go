package catalog

import "ott-manager.app/api/models"

// All is the selector value that disables a filter.
const All = "all"

// StatusFilter is either All or one of the subscription statuses.
type StatusFilter string

const AllStatuses StatusFilter = All

// ParseStatusFilter maps a selector to a filter. Empty selects everything.
// Unrecognized values also select everything and report ok=false so the
// caller can log them.
func ParseStatusFilter(s string) (filter StatusFilter, ok bool) {
	if s == "" || s == All {
		return AllStatuses, true
	}
	if models.SubscriptionStatus(s).Valid() {
		return StatusFilter(s), true
	}
	return AllStatuses, false
}

func StatusOptions() []StatusFilter {
	opts := []StatusFilter{AllStatuses}
	for _, s := range models.SubscriptionStatuses {
		opts = append(opts, StatusFilter(s))
	}
	return opts
}

func (f StatusFilter) matches(s models.SubscriptionStatus) bool {
	return f == AllStatuses || models.SubscriptionStatus(f) == s
}

// Filter keeps the records matching both selectors, in source order.
// The result is never nil.
func Filter(records []models.Subscription, category string, status StatusFilter) []models.Subscription {
	out := make([]models.Subscription, 0, len(records))
	for _, r := range records {
		if (category == All || r.Category == category) && status.matches(r.Status) {
			out = append(out, r)
		}
	}
	return out
}

// FilterDeployments keeps deployments with the given status, or all of
// them when status is All or empty.
func FilterDeployments(deployments []models.Deployment, status string) []models.Deployment {
	out := make([]models.Deployment, 0, len(deployments))
	for _, d := range deployments {
		if status == "" || status == All || string(d.Status) == status {
			out = append(out, d)
		}
	}
	return out
}

// Categories returns "all" followed by each distinct category in the
// order it first appears.
func Categories(records []models.Subscription) []string {
	out := []string{All}
	seen := make(map[string]bool)
	for _, r := range records {
		if seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		out = append(out, r.Category)
	}
	return out
}
