package store

import (
	"context"
	"fmt"

	"github.com/daylio-dash/daylio-dash/internal/model"
)

// Store persists the journal dataset.
// Implementations live under internal/store/<driver>/ (sqlite, postgres).
type Store interface {
	Datasets
	Entries
	Lookups

	HealthPing(ctx context.Context) error
	Close() error
}

// Datasets moves the whole journal in and out of the store.
type Datasets interface {
	// ImportDataset replaces all stored data with d in a single transaction.
	ImportDataset(ctx context.Context, d *model.Dataset) error
	// LoadDataset returns the stored journal with entries newest first.
	LoadDataset(ctx context.Context) (*model.Dataset, error)
	// ExportDataset returns the stored journal with entries in id order.
	ExportDataset(ctx context.Context) (*model.Dataset, error)
}

type Entries interface {
	InsertEntry(ctx context.Context, e *model.NewEntry) (int64, error)
	ListEntries(ctx context.Context) ([]model.EntryRecord, error)
}

type Lookups interface {
	ListMoods(ctx context.Context) ([]model.Mood, error)
	TagCatalog(ctx context.Context) (*model.TagCatalog, error)
	Summary(ctx context.Context) (*model.Summary, error)
}

// StorageError wraps a failure from the underlying database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is matches model.ErrStorage.
func (e *StorageError) Is(target error) bool { return target == model.ErrStorage }

// Wrap returns err as a *StorageError for op, or nil when err is nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
