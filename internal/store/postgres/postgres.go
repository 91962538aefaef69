// Package postgres provides the PostgreSQL journal store.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/daylio-dash/daylio-dash/internal/store/sqlstore"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS tag_groups (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		id_tag_group BIGINT,
		icon TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		state INTEGER NOT NULL DEFAULT 0,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS moods (
		id BIGINT PRIMARY KEY,
		custom_name TEXT NOT NULL,
		mood_group_id INTEGER NOT NULL,
		icon_id BIGINT,
		predefined_name_id BIGINT,
		state INTEGER NOT NULL DEFAULT 0,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		id BIGSERIAL PRIMARY KEY,
		minute INTEGER NOT NULL,
		hour INTEGER NOT NULL,
		day INTEGER NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		datetime BIGINT NOT NULL,
		time_zone_offset BIGINT NOT NULL,
		mood BIGINT NOT NULL,
		note_title TEXT,
		note TEXT,
		tags_json TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dataset_info (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		version INTEGER NOT NULL,
		longest_chain INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_datetime ON entries(datetime DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(year, month, day)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_mood ON entries(mood)`,
	`CREATE INDEX IF NOT EXISTS idx_tags_group ON tags(id_tag_group)`,
	`CREATE INDEX IF NOT EXISTS idx_moods_group ON moods(mood_group_id)`,
}

// Dialect describes PostgreSQL for sqlstore.
var Dialect = sqlstore.Dialect{
	Name:        "postgres",
	Placeholder: sq.Dollar,
	Schema:      schema,
	ReturningID: true,
	AfterImport: resetEntrySequence,
	MaxParams:   30000,
}

// resetEntrySequence moves the entry id sequence past the imported ids so
// later inserts do not collide with them.
func resetEntrySequence(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('entries', 'id'), COALESCE((SELECT MAX(id) FROM entries), 0) + 1, false)`)
	return err
}

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New connects to dsn and returns a migrated store.
func New(ctx context.Context, dsn string, log zerolog.Logger) (*sqlstore.Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	st := sqlstore.New(db, Dialect, log)
	if err := st.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}
