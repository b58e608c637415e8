package models

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidEnum = errors.New("invalid enum value")

// RenewalDateLayout is the ISO 8601 calendar date used for next_renewal.
const RenewalDateLayout = "2006-01-02"

type SubscriptionStatus string

const (
	StatusActive  SubscriptionStatus = "active"
	StatusExpired SubscriptionStatus = "expired"
	StatusTrial   SubscriptionStatus = "trial"
)

// SubscriptionStatuses lists every status in display order.
var SubscriptionStatuses = []SubscriptionStatus{StatusActive, StatusExpired, StatusTrial}

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusTrial:
		return true
	default:
		return false
	}
}

func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	status := SubscriptionStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("subscription status %q: %w", s, ErrInvalidEnum)
	}
	return status, nil
}

type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

func (c BillingCycle) Valid() bool {
	return c == BillingMonthly || c == BillingYearly
}

func ParseBillingCycle(s string) (BillingCycle, error) {
	cycle := BillingCycle(s)
	if !cycle.Valid() {
		return "", fmt.Errorf("billing cycle %q: %w", s, ErrInvalidEnum)
	}
	return cycle, nil
}

type Subscription struct {
	ID           string             `json:"id" yaml:"id"`
	Name         string             `json:"name" yaml:"name"`
	Logo         string             `json:"logo,omitempty" yaml:"logo"`
	Category     string             `json:"category" yaml:"category"`
	Price        Money              `json:"price" yaml:"price"`
	BillingCycle BillingCycle       `json:"billing_cycle" yaml:"billing_cycle"`
	NextRenewal  string             `json:"next_renewal,omitempty" yaml:"next_renewal"`
	Status       SubscriptionStatus `json:"status" yaml:"status"`
	Rating       float64            `json:"rating" yaml:"rating"`
	Subscribers  string             `json:"subscribers,omitempty" yaml:"subscribers"`
	Description  string             `json:"description,omitempty" yaml:"description"`
	Features     []string           `json:"features,omitempty" yaml:"features"`
}

func (s Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// RenewalDate parses NextRenewal. The zero time is returned for an empty value.
func (s Subscription) RenewalDate() (time.Time, error) {
	if s.NextRenewal == "" {
		return time.Time{}, nil
	}
	return time.Parse(RenewalDateLayout, s.NextRenewal)
}
