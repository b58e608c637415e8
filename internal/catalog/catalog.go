package catalog

import (
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"

	"ott-manager.app/api/models"
)

var ErrNotFound = errors.New("subscription not found")

// Catalog is the validated record set loaded at startup. It is never
// mutated afterwards; accessors hand out copies.
type Catalog struct {
	records     []models.Subscription
	index       map[string]int
	deployments []models.Deployment
}

func New(records []models.Subscription, deployments []models.Deployment) (*Catalog, error) {
	if err := Validate(records, deployments); err != nil {
		return nil, err
	}

	c := &Catalog{
		records:     make([]models.Subscription, len(records)),
		index:       make(map[string]int, len(records)),
		deployments: make([]models.Deployment, len(deployments)),
	}
	copy(c.records, records)
	copy(c.deployments, deployments)
	for i, r := range c.records {
		c.index[r.ID] = i
	}

	return c, nil
}

// Validate reports every violation at once.
func Validate(records []models.Subscription, deployments []models.Deployment) error {
	var result *multierror.Error

	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.ID == "" {
			result = multierror.Append(result, fmt.Errorf("record %d: id is required", i))
		} else if seen[r.ID] {
			result = multierror.Append(result, fmt.Errorf("record %d: duplicate id %q", i, r.ID))
		}
		seen[r.ID] = true

		if r.Name == "" {
			result = multierror.Append(result, fmt.Errorf("record %q: name is required", r.ID))
		}
		if r.Price < 0 {
			result = multierror.Append(result, fmt.Errorf("record %q: price %s is negative", r.ID, r.Price))
		} else if r.Price > models.MaxMoney {
			result = multierror.Append(result, fmt.Errorf("record %q: price %s exceeds %s", r.ID, r.Price, models.MaxMoney))
		}
		if _, err := models.ParseSubscriptionStatus(string(r.Status)); err != nil {
			result = multierror.Append(result, fmt.Errorf("record %q: %w", r.ID, err))
		}
		if _, err := models.ParseBillingCycle(string(r.BillingCycle)); err != nil {
			result = multierror.Append(result, fmt.Errorf("record %q: %w", r.ID, err))
		}
		if math.IsNaN(r.Rating) || r.Rating < 0 || r.Rating > 5 {
			result = multierror.Append(result, fmt.Errorf("record %q: rating %.1f outside [0,5]", r.ID, r.Rating))
		}
		if _, err := r.RenewalDate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("record %q: next_renewal %q is not an ISO 8601 date", r.ID, r.NextRenewal))
		}
	}

	if activeSpendOverflows(records) {
		result = multierror.Append(result, errors.New("total active spend overflows"))
	}

	seenDeployments := make(map[string]bool, len(deployments))
	for i, d := range deployments {
		if d.ID == "" {
			result = multierror.Append(result, fmt.Errorf("deployment %d: id is required", i))
		} else if seenDeployments[d.ID] {
			result = multierror.Append(result, fmt.Errorf("deployment %d: duplicate id %q", i, d.ID))
		}
		seenDeployments[d.ID] = true

		if _, err := models.ParseDeploymentStatus(string(d.Status)); err != nil {
			result = multierror.Append(result, fmt.Errorf("deployment %q: %w", d.ID, err))
		}
	}

	return result.ErrorOrNil()
}

func (c *Catalog) Records() []models.Subscription {
	out := make([]models.Subscription, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Catalog) Deployments() []models.Deployment {
	out := make([]models.Deployment, len(c.deployments))
	copy(out, c.deployments)
	return out
}

func (c *Catalog) Len() int {
	return len(c.records)
}

func (c *Catalog) Find(id string) (models.Subscription, error) {
	i, ok := c.index[id]
	if !ok {
		return models.Subscription{}, ErrNotFound
	}
	return c.records[i], nil
}
