// Package store keeps a plan catalog in SQLite so plans can be curated
// independently of scenario files. Only plan definitions and service display
// names are stored; simulation results never are.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rgehrsitz/healthsim/internal/domain"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Store is a SQLite-backed plan catalog
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the catalog database at path
func Open(path string) (*Store, error) {
	if path == "" {
		path = "healthsim.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS plans (
		name TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create plans table: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS service_names (
		service_id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create service_names table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file
func (s *Store) Path() string { return s.path }

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// ImportCatalog validates and upserts every plan and display name of config.
// Re-imported plans keep their original position.
func (s *Store) ImportCatalog(ctx context.Context, config *domain.Configuration) (retErr error) {
	for i := range config.Plans {
		if err := config.Plans[i].Validate(); err != nil {
			return fmt.Errorf("plan %s: %w", config.Plans[i].Name, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for _, plan := range config.Plans {
		payload, err := json.Marshal(plan)
		if err != nil {
			return fmt.Errorf("encode plan %s: %w", plan.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO plans (name, position, payload)
			VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM plans), ?)
			ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`,
			plan.Name, payload); err != nil {
			return fmt.Errorf("upsert plan %s: %w", plan.Name, err)
		}
	}

	for id, name := range config.ServiceNames {
		if _, err := tx.ExecContext(ctx, `INSERT INTO service_names (service_id, display_name)
			VALUES (?, ?)
			ON CONFLICT(service_id) DO UPDATE SET display_name = excluded.display_name`,
			id, name); err != nil {
			return fmt.Errorf("upsert service name %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Plans returns every stored plan in import order
func (s *Store) Plans(ctx context.Context) ([]domain.Plan, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, payload FROM plans ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select plans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var plans []domain.Plan
	for rows.Next() {
		var name string
		var payload []byte
		if err := rows.Scan(&name, &payload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		var plan domain.Plan
		if err := json.Unmarshal(payload, &plan); err != nil {
			return nil, fmt.Errorf("decode plan %s: %w", name, err)
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// Plan returns one stored plan
func (s *Store) Plan(ctx context.Context, name string) (domain.Plan, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM plans WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Plan{}, false, nil
	}
	if err != nil {
		return domain.Plan{}, false, fmt.Errorf("select plan %s: %w", name, err)
	}
	var plan domain.Plan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return domain.Plan{}, false, fmt.Errorf("decode plan %s: %w", name, err)
	}
	return plan, true, nil
}

// DeletePlan removes a plan; deleting a missing plan is not an error
func (s *Store) DeletePlan(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete plan %s: %w", name, err)
	}
	return nil
}

// ServiceNames returns the stored display names keyed by service identifier
func (s *Store) ServiceNames(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT service_id, display_name FROM service_names`)
	if err != nil {
		return nil, fmt.Errorf("select service names: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

// Catalog assembles the stored plans and display names into a configuration without scenarios
func (s *Store) Catalog(ctx context.Context) (*domain.Configuration, error) {
	plans, err := s.Plans(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.ServiceNames(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Configuration{ServiceNames: names, Plans: plans}, nil
}
