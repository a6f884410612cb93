package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

var sqliteQueries = queries{
	upsert: `
		INSERT INTO cc_pref (keystr, scope, subjid, valstr, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (keystr, scope, subjid)
		DO UPDATE SET valstr = excluded.valstr, updated_at = excluded.updated_at
	`,
	get: `
		SELECT keystr, scope, subjid, valstr, updated_at
		FROM cc_pref
		WHERE keystr = ? AND scope = ? AND subjid = ?
	`,
	list: `
		SELECT keystr, scope, subjid, valstr, updated_at
		FROM cc_pref
		WHERE scope = ? AND subjid = ?
		ORDER BY keystr
	`,
}

// SQLiteStorage stores preferences in a SQLite database file.
type SQLiteStorage struct {
	sqlStorage
}

// NewSQLiteStorage opens the database at dbPath and applies the schema migrations.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}
	// One connection serializes writers and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to ping database: %w", err)
	}

	if err := migrateSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to run migrations: %w", err)
	}

	return &SQLiteStorage{sqlStorage{name: "sqlite", db: db, q: sqliteQueries}}, nil
}
