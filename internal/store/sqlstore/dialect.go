// Package sqlstore implements store.Store on database/sql. SQL is built with
// squirrel; a Dialect supplies what differs between engines.
package sqlstore

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

// SchemaVersion is the schema version created by Migrate.
const SchemaVersion = 1

// Dialect describes one SQL engine.
type Dialect struct {
	Name        string
	Placeholder sq.PlaceholderFormat
	// Schema holds the DDL statements that create version 1 of the schema.
	Schema []string
	// ReturningID makes InsertEntry read the new id from a RETURNING clause
	// instead of sql.Result.LastInsertId.
	ReturningID bool
	// AfterImport runs inside the import transaction after entries with
	// explicit ids are written and before entries without one.
	AfterImport func(ctx context.Context, tx *sql.Tx) error
	// MaxParams bounds the bind parameters of a single multi-row insert.
	MaxParams int
}
