package storage

import (
	"fmt"

	"ott-manager.app/api/internal/config"
)

// Open returns the catalog source selected by configuration.
func Open(cfg *config.Config) (Source, error) {
	switch cfg.CatalogSource {
	case config.SourceSample, "":
		s, err := NewSampleStorage()
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.SourceFile:
		s, err := NewFileStorage(cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.SourceSQLite:
		s, err := NewSQLiteStorage(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.SourceStripe:
		return NewStripeSource(cfg.StripeSecret, cfg.StripeCurrency), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}
