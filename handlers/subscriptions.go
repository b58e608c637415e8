package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ott-manager.app/api/internal/catalog"
	"ott-manager.app/api/internal/presentation"
	"ott-manager.app/api/models"
)

const emptyMessage = "No apps found"

type SubscriptionCard struct {
	models.Subscription
	Badge        presentation.Badge `json:"badge"`
	BadgeClasses string             `json:"badge_classes"`
	DisplayPrice string             `json:"display_price"`
}

// newSubscriptionCard drops the renewal date of records that are not
// active, since only active subscriptions renew.
func newSubscriptionCard(sub models.Subscription) SubscriptionCard {
	if !sub.IsActive() {
		sub.NextRenewal = ""
	}
	badge := presentation.ClassifySubscription(string(sub.Status))
	return SubscriptionCard{
		Subscription: sub,
		Badge:        badge,
		BadgeClasses: badge.Classes(),
		DisplayPrice: presentation.FormatPrice(sub.Price, sub.BillingCycle),
	}
}

type SubscriptionListResponse struct {
	Subscriptions []SubscriptionCard   `json:"subscriptions"`
	Count         int                  `json:"count"`
	Empty         bool                 `json:"empty"`
	Message       string               `json:"message,omitempty"`
	Category      string               `json:"category"`
	Status        catalog.StatusFilter `json:"status"`
}

type SummaryResponse struct {
	catalog.Breakdown
	TotalActiveSpendDisplay string        `json:"total_active_spend_display"`
	Tabs                    []catalog.Tab `json:"tabs"`
}

type FiltersResponse struct {
	Categories []string               `json:"categories"`
	Statuses   []catalog.StatusFilter `json:"statuses"`
}

func (s *Server) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	category := query.Get("category")
	if category == "" {
		category = catalog.All
	}

	status, ok := catalog.ParseStatusFilter(query.Get("status"))
	if !ok {
		loggerFrom(r.Context()).Warn("Unrecognized status filter, showing all", map[string]interface{}{
			"status": query.Get("status"),
		})
	}

	records := catalog.Filter(s.Catalog.Records(), category, status)
	cards := make([]SubscriptionCard, 0, len(records))
	for _, rec := range records {
		cards = append(cards, newSubscriptionCard(rec))
	}

	resp := SubscriptionListResponse{
		Subscriptions: cards,
		Count:         len(cards),
		Empty:         len(cards) == 0,
		Category:      category,
		Status:        status,
	}
	if resp.Empty {
		resp.Message = emptyMessage
	}

	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) GetSubscription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sub, err := s.Catalog.Find(id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeErrorResponse(w, http.StatusNotFound, "subscription not found")
		return
	}
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, newSubscriptionCard(sub))
}

func (s *Server) Summary(w http.ResponseWriter, r *http.Request) {
	records := s.Catalog.Records()
	breakdown := catalog.Summarize(records)

	writeJSON(w, r, http.StatusOK, SummaryResponse{
		Breakdown:               breakdown,
		TotalActiveSpendDisplay: presentation.FormatPrice(breakdown.TotalActiveSpend, ""),
		Tabs:                    catalog.Tabs(records),
	})
}

func (s *Server) Filters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, FiltersResponse{
		Categories: catalog.Categories(s.Catalog.Records()),
		Statuses:   catalog.StatusOptions(),
	})
}
