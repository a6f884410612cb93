// Package storage provides the persistence backends for station preferences.
//
// Every backend keeps one row per (key, scope, owner) and writes with a single
// atomic upsert, so concurrent writers of the same key never produce a
// duplicate row.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/CreativeUnicorns/stationprefs"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverDynamoDB = "dynamodb"
)

// Config selects and configures a backend for Open.
type Config struct {
	Driver string
	// DSN is a file path for SQLite and a connection string for Postgres.
	DSN            string
	DynamoTable    string
	DynamoRegion   string
	DynamoEndpoint string
}

// Open builds the backend named by cfg.Driver. An empty driver means memory.
func Open(ctx context.Context, cfg Config) (stationprefs.Storage, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemoryStorage(), nil
	case DriverSQLite:
		s, err := NewSQLiteStorage(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		s, err := NewPostgresStorage(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverDynamoDB:
		s, err := NewDynamoStorage(ctx, DynamoConfig{
			Table:    cfg.DynamoTable,
			Region:   cfg.DynamoRegion,
			Endpoint: cfg.DynamoEndpoint,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", stationprefs.ErrInvalidInput, cfg.Driver)
	}
}

// queries holds one SQL dialect's statements against cc_pref.
type queries struct {
	upsert string
	get    string
	list   string
}

// sqlStorage is the database/sql core shared by the SQLite and Postgres backends.
type sqlStorage struct {
	name string
	db   *sql.DB
	q    queries
}

func (s *sqlStorage) Get(ctx context.Context, key string, scope stationprefs.Scope, ownerID string) (*stationprefs.Preference, error) {
	var (
		pref      stationprefs.Preference
		scopeCode int
	)

	err := s.db.QueryRowContext(ctx, s.q.get, key, int(scope), ownerID).Scan(
		&pref.Key,
		&scopeCode,
		&pref.OwnerID,
		&pref.Value,
		&pref.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, stationprefs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get preference %q: %w", s.name, key, err)
	}

	pref.Scope = stationprefs.Scope(scopeCode)
	return &pref, nil
}

func (s *sqlStorage) Upsert(ctx context.Context, pref *stationprefs.Preference) error {
	updatedAt := pref.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, s.q.upsert,
		pref.Key,
		int(pref.Scope),
		pref.OwnerID,
		pref.Value,
		updatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to upsert preference %q: %w", s.name, pref.Key, err)
	}
	return nil
}

func (s *sqlStorage) List(ctx context.Context, scope stationprefs.Scope, ownerID string) ([]*stationprefs.Preference, error) {
	rows, err := s.db.QueryContext(ctx, s.q.list, int(scope), ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list %s preferences: %w", s.name, scope, err)
	}
	defer rows.Close()

	prefs := []*stationprefs.Preference{}
	for rows.Next() {
		var (
			pref      stationprefs.Preference
			scopeCode int
		)
		if err := rows.Scan(&pref.Key, &scopeCode, &pref.OwnerID, &pref.Value, &pref.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan preference row: %w", s.name, err)
		}
		pref.Scope = stationprefs.Scope(scopeCode)
		prefs = append(prefs, &pref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating preference rows: %w", s.name, err)
	}
	return prefs, nil
}

func (s *sqlStorage) Close() error {
	return s.db.Close()
}
