package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/daylio-dash/daylio-dash/internal/store"
)

// Migrate brings the database to SchemaVersion. A fresh database gets the
// full schema in one step; a database from a newer release is refused.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return store.Wrap("create schema_version", err)
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	switch {
	case current == SchemaVersion:
		return nil
	case current > SchemaVersion:
		return &store.StorageError{
			Op:  "migrate",
			Err: fmt.Errorf("database schema version %d is newer than supported version %d", current, SchemaVersion),
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Wrap("migrate", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range s.dialect.Schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return store.Wrap("migrate", err)
		}
	}
	q, args, err := s.sb.Insert("schema_version").Columns("version").Values(SchemaVersion).ToSql()
	if err != nil {
		return store.Wrap("migrate", err)
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return store.Wrap("migrate", err)
	}
	if err := tx.Commit(); err != nil {
		return store.Wrap("migrate", err)
	}
	s.log.Info().Str("dialect", s.dialect.Name).Int("schema_version", SchemaVersion).Msg("database schema created")
	return nil
}

func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	q, args, err := s.sb.Select("COALESCE(MAX(version), 0)").From("schema_version").ToSql()
	if err != nil {
		return 0, store.Wrap("read schema version", err)
	}
	var v sql.NullInt64
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&v); err != nil {
		return 0, store.Wrap("read schema version", err)
	}
	return int(v.Int64), nil
}
