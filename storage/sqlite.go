package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"ott-manager.app/api/internal/logger"
	"ott-manager.app/api/models"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type SQLiteStorage struct {
	db   *sql.DB
	path string
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	storage := &SQLiteStorage{
		db:   db,
		path: path,
	}

	if err := storage.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) migrate() error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if err == nil {
		logger.Debug("Database schema ready", map[string]interface{}{
			"path":    s.path,
			"version": version,
			"dirty":   dirty,
		})
	}

	return nil
}

func (s *SQLiteStorage) LoadSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	query := `SELECT id, name, logo, category, price_cents, billing_cycle, next_renewal, status, rating, subscribers, description, features
		FROM subscriptions ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warn("Failed to close rows", map[string]interface{}{"error": err.Error()})
		}
	}()

	subscriptions := []models.Subscription{}
	for rows.Next() {
		var (
			sub        models.Subscription
			priceCents int64
			features   string
		)
		err := rows.Scan(
			&sub.ID,
			&sub.Name,
			&sub.Logo,
			&sub.Category,
			&priceCents,
			&sub.BillingCycle,
			&sub.NextRenewal,
			&sub.Status,
			&sub.Rating,
			&sub.Subscribers,
			&sub.Description,
			&features,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}

		sub.Price = models.Cents(priceCents)
		if err := json.Unmarshal([]byte(features), &sub.Features); err != nil {
			return nil, fmt.Errorf("failed to decode features for %s: %w", sub.ID, err)
		}

		subscriptions = append(subscriptions, sub)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return subscriptions, nil
}

func (s *SQLiteStorage) LoadDeployments(ctx context.Context) ([]models.Deployment, error) {
	query := `SELECT id, pipeline, environment, branch, commit_sha, status, duration, deployed_at
		FROM deployments ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query deployments: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warn("Failed to close rows", map[string]interface{}{"error": err.Error()})
		}
	}()

	deployments := []models.Deployment{}
	for rows.Next() {
		var d models.Deployment
		err := rows.Scan(
			&d.ID,
			&d.Pipeline,
			&d.Environment,
			&d.Branch,
			&d.Commit,
			&d.Status,
			&d.Duration,
			&d.DeployedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deployment: %w", err)
		}
		deployments = append(deployments, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deployments: %w", err)
	}

	return deployments, nil
}

// Seed replaces the stored catalog in one transaction. It is used by the
// seed command, never by a running server.
func (s *SQLiteStorage) Seed(ctx context.Context, subscriptions []models.Subscription, deployments []models.Deployment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM subscriptions"); err != nil {
		return fmt.Errorf("error clearing subscriptions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM deployments"); err != nil {
		return fmt.Errorf("error clearing deployments: %w", err)
	}

	for i, sub := range subscriptions {
		features := sub.Features
		if features == nil {
			features = []string{}
		}
		encoded, err := json.Marshal(features)
		if err != nil {
			return fmt.Errorf("error encoding features for %s: %w", sub.ID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO subscriptions (id, position, name, logo, category, price_cents, billing_cycle, next_renewal, status, rating, subscribers, description, features)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sub.ID, i, sub.Name, sub.Logo, sub.Category, sub.Price.Cents(), string(sub.BillingCycle),
			sub.NextRenewal, string(sub.Status), sub.Rating, sub.Subscribers, sub.Description, string(encoded))
		if err != nil {
			return fmt.Errorf("error inserting subscription %s: %w", sub.ID, err)
		}
	}

	for i, d := range deployments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO deployments (id, position, pipeline, environment, branch, commit_sha, status, duration, deployed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, i, d.Pipeline, d.Environment, d.Branch, d.Commit, string(d.Status), d.Duration, d.DeployedAt)
		if err != nil {
			return fmt.Errorf("error inserting deployment %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	logger.Info("Catalog seeded", map[string]interface{}{
		"path":          s.path,
		"subscriptions": len(subscriptions),
		"deployments":   len(deployments),
	})
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
