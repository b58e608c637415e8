package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/price"

	"ott-manager.app/api/internal/logger"
	"ott-manager.app/api/models"
)

// StripeSource builds the catalog from the active recurring prices of a
// Stripe account. Catalog-only attributes live in product metadata. Only
// prices in currency are loaded, so spend totals never mix currencies.
type StripeSource struct {
	list     func(ctx context.Context) ([]*stripe.Price, error)
	currency stripe.Currency
}

func NewStripeSource(secret, currency string) *StripeSource {
	stripe.Key = secret
	return &StripeSource{
		list:     listActivePrices,
		currency: stripe.Currency(strings.ToLower(currency)),
	}
}

func listActivePrices(ctx context.Context) ([]*stripe.Price, error) {
	params := &stripe.PriceListParams{
		Active: stripe.Bool(true),
		Type:   stripe.String(string(stripe.PriceTypeRecurring)),
	}
	params.Context = ctx
	params.AddExpand("data.product")

	var prices []*stripe.Price
	i := price.List(params)
	for i.Next() {
		prices = append(prices, i.Price())
	}
	if err := i.Err(); err != nil {
		return nil, fmt.Errorf("error listing Stripe prices: %w", err)
	}
	return prices, nil
}

func (s *StripeSource) LoadSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	prices, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	subscriptions := []models.Subscription{}
	for _, p := range prices {
		sub, ok := subscriptionFromPrice(p, s.currency)
		if !ok {
			fields := map[string]interface{}{}
			if p != nil {
				fields["price_id"] = p.ID
				fields["currency"] = string(p.Currency)
			}
			logger.Debug("Skipping Stripe price", fields)
			continue
		}
		subscriptions = append(subscriptions, sub)
	}

	logger.Info("Loaded catalog from Stripe", map[string]interface{}{
		"prices":        len(prices),
		"subscriptions": len(subscriptions),
	})
	return subscriptions, nil
}

// Stripe has no notion of deployment cards.
func (s *StripeSource) LoadDeployments(ctx context.Context) ([]models.Deployment, error) {
	return []models.Deployment{}, nil
}

func (s *StripeSource) Close() error {
	return nil
}

// subscriptionFromPrice maps a recurring price with an expanded product.
// Prices without a product, with a non monthly/yearly interval, or in a
// currency other than currency are skipped. Zero-decimal currencies such
// as JPY have no cents and are never accepted.
func subscriptionFromPrice(p *stripe.Price, currency stripe.Currency) (models.Subscription, bool) {
	if p == nil || p.Product == nil || p.Recurring == nil {
		return models.Subscription{}, false
	}
	if p.Currency != currency || zeroDecimalCurrencies[p.Currency] {
		return models.Subscription{}, false
	}

	var cycle models.BillingCycle
	switch p.Recurring.Interval {
	case stripe.PriceRecurringIntervalMonth:
		cycle = models.BillingMonthly
	case stripe.PriceRecurringIntervalYear:
		cycle = models.BillingYearly
	default:
		return models.Subscription{}, false
	}

	meta := p.Product.Metadata
	status := models.StatusActive
	if s, ok := meta["status"]; ok {
		status = models.SubscriptionStatus(s)
	}

	var rating float64
	if r, ok := meta["rating"]; ok {
		if parsed, err := strconv.ParseFloat(r, 64); err == nil {
			rating = parsed
		}
	}

	category := meta["category"]
	if category == "" {
		category = "Uncategorized"
	}

	var features []string
	for _, f := range p.Product.MarketingFeatures {
		if f != nil && f.Name != "" {
			features = append(features, f.Name)
		}
	}

	return models.Subscription{
		ID:           p.ID,
		Name:         p.Product.Name,
		Logo:         meta["logo"],
		Category:     category,
		Price:        models.Cents(p.UnitAmount),
		BillingCycle: cycle,
		NextRenewal:  meta["next_renewal"],
		Status:       status,
		Rating:       rating,
		Subscribers:  meta["subscribers"],
		Description:  p.Product.Description,
		Features:     features,
	}, true
}

// https://docs.stripe.com/currencies#zero-decimal
var zeroDecimalCurrencies = map[stripe.Currency]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true,
	"kmf": true, "krw": true, "mga": true, "pyg": true, "rwf": true,
	"ugx": true, "vnd": true, "vuv": true, "xaf": true, "xof": true,
	"xpf": true,
}
