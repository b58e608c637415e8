package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SourceSample = "sample"
	SourceFile   = "file"
	SourceSQLite = "sqlite"
	SourceStripe = "stripe"
)

type Config struct {
	Port string

	CatalogSource string
	CatalogFile   string
	DatabaseURL   string
	StripeSecret  string

	// StripeCurrency is the lower case ISO code of the prices loaded from
	// Stripe.
	StripeCurrency string

	CORSAllowedOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	SentryDSN string
}

func New() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	source := strings.ToLower(os.Getenv("CATALOG_SOURCE"))
	if source == "" {
		source = SourceSample // Default to the bundled catalog
	}

	catalogFile := os.Getenv("CATALOG_FILE")
	dbURL := os.Getenv("DATABASE_URL")
	stripeSecret := os.Getenv("STRIPE_SECRET")
	stripeCurrency := strings.ToLower(strings.TrimSpace(os.Getenv("STRIPE_CURRENCY")))
	if stripeCurrency == "" {
		stripeCurrency = "usd"
	}

	switch source {
	case SourceSample:
	case SourceFile:
		if catalogFile == "" {
			return nil, errors.New("CATALOG_FILE environment variable is required when CATALOG_SOURCE=file")
		}
	case SourceSQLite:
		if dbURL == "" {
			return nil, errors.New("DATABASE_URL environment variable is required when CATALOG_SOURCE=sqlite")
		}
	case SourceStripe:
		if stripeSecret == "" {
			return nil, errors.New("STRIPE_SECRET environment variable is required when CATALOG_SOURCE=stripe")
		}
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE must be one of sample, file, sqlite, stripe, got %q", source)
	}

	origins := []string{"*"}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	rateLimitRequests := 60
	if raw := os.Getenv("RATE_LIMIT_REQUESTS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("RATE_LIMIT_REQUESTS must be a non-negative integer, got %q", raw)
		}
		rateLimitRequests = n
	}

	rateLimitWindow := time.Minute
	if raw := os.Getenv("RATE_LIMIT_WINDOW"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be a positive duration, got %q", raw)
		}
		rateLimitWindow = d
	}

	return &Config{
		Port:               port,
		CatalogSource:      source,
		CatalogFile:        catalogFile,
		DatabaseURL:        dbURL,
		StripeSecret:       stripeSecret,
		StripeCurrency:     stripeCurrency,
		CORSAllowedOrigins: origins,
		RateLimitRequests:  rateLimitRequests,
		RateLimitWindow:    rateLimitWindow,
		SentryDSN:          os.Getenv("SENTRY_DSN"),
	}, nil
}
