package catalog

import (
	"math"

	"ott-manager.app/api/models"
)

// TotalActiveSpend sums the price of every active record. Billing cycles
// are not normalized. A validated catalog never overflows; for arbitrary
// input the sum saturates at the int64 bounds instead of wrapping.
func TotalActiveSpend(records []models.Subscription) models.Money {
	var total models.Money
	for _, r := range records {
		if r.Status != models.StatusActive {
			continue
		}
		sum, ok := total.Add(r.Price)
		if !ok {
			if r.Price < 0 {
				return models.Money(math.MinInt64)
			}
			return models.Money(math.MaxInt64)
		}
		total = sum
	}
	return total
}

func activeSpendOverflows(records []models.Subscription) bool {
	var total models.Money
	for _, r := range records {
		if r.Status != models.StatusActive {
			continue
		}
		sum, ok := total.Add(r.Price)
		if !ok {
			return true
		}
		total = sum
	}
	return false
}

type Breakdown struct {
	Total            int                               `json:"total"`
	ByStatus         map[models.SubscriptionStatus]int `json:"by_status"`
	ByCategory       map[string]int                    `json:"by_category"`
	TotalActiveSpend models.Money                      `json:"total_active_spend"`
}

func Summarize(records []models.Subscription) Breakdown {
	b := Breakdown{
		Total:            len(records),
		ByStatus:         make(map[models.SubscriptionStatus]int, len(models.SubscriptionStatuses)),
		ByCategory:       make(map[string]int),
		TotalActiveSpend: TotalActiveSpend(records),
	}
	for _, s := range models.SubscriptionStatuses {
		b.ByStatus[s] = 0
	}
	for _, r := range records {
		b.ByStatus[r.Status]++
		b.ByCategory[r.Category]++
	}
	return b
}

// Tab is one entry of the status tab selector.
type Tab struct {
	Status StatusFilter `json:"status"`
	Count  int          `json:"count"`
}

func Tabs(records []models.Subscription) []Tab {
	opts := StatusOptions()
	tabs := make([]Tab, 0, len(opts))
	for _, opt := range opts {
		tabs = append(tabs, Tab{
			Status: opt,
			Count:  len(Filter(records, All, opt)),
		})
	}
	return tabs
}
