// Package sqlite provides the embedded, file-backed journal store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/daylio-dash/daylio-dash/internal/store/sqlstore"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS tag_groups (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		id_tag_group INTEGER,
		icon TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		state INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS moods (
		id INTEGER PRIMARY KEY,
		custom_name TEXT NOT NULL,
		mood_group_id INTEGER NOT NULL,
		icon_id INTEGER,
		predefined_name_id INTEGER,
		state INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY,
		minute INTEGER NOT NULL,
		hour INTEGER NOT NULL,
		day INTEGER NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		datetime INTEGER NOT NULL,
		time_zone_offset INTEGER NOT NULL,
		mood INTEGER NOT NULL,
		note_title TEXT,
		note TEXT,
		tags_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
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

// Dialect describes SQLite for sqlstore.
var Dialect = sqlstore.Dialect{
	Name:        "sqlite",
	Placeholder: sq.Question,
	Schema:      schema,
	MaxParams:   900,
}

// Open opens the database at path, creating its directory when needed.
// The pool is limited to one connection: SQLite allows a single writer and
// each in-memory connection would otherwise see its own database.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	dsn := path
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New opens path and returns a migrated store.
func New(ctx context.Context, path string, log zerolog.Logger) (*sqlstore.Store, error) {
	db, err := Open(path)
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
