package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// sqlOpenFunc is a package-level variable that can be overridden for testing.
var sqlOpenFunc = sql.Open

var postgresQueries = queries{
	upsert: `
		INSERT INTO cc_pref (keystr, scope, subjid, valstr, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (keystr, scope, subjid)
		DO UPDATE SET valstr = EXCLUDED.valstr, updated_at = EXCLUDED.updated_at
	`,
	get: `
		SELECT keystr, scope, subjid, valstr, updated_at
		FROM cc_pref
		WHERE keystr = $1 AND scope = $2 AND subjid = $3
	`,
	list: `
		SELECT keystr, scope, subjid, valstr, updated_at
		FROM cc_pref
		WHERE scope = $1 AND subjid = $2
		ORDER BY keystr
	`,
}

// PostgresStorage stores preferences in the cc_pref table of a PostgreSQL database.
type PostgresStorage struct {
	sqlStorage
}

// NewPostgresStorage connects with connString and applies the schema migrations.
func NewPostgresStorage(connString string) (*PostgresStorage, error) {
	db, err := sqlOpenFunc("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: failed to ping database: %w", err)
	}

	if err := migratePostgres(connString); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: failed to run migrations: %w", err)
	}

	return &PostgresStorage{sqlStorage{name: "postgres", db: db, q: postgresQueries}}, nil
}
