// Package journal is the domain service behind the HTTP surface: it reads the
// stored dataset, builds views from it, and handles entry creation, backup
// import and export.
package journal

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/daylio-dash/daylio-dash/internal/backup"
	"github.com/daylio-dash/daylio-dash/internal/metrics"
	"github.com/daylio-dash/daylio-dash/internal/model"
	"github.com/daylio-dash/daylio-dash/internal/store"
	"github.com/daylio-dash/daylio-dash/internal/view"
)

// Service owns the store handle. Every read reloads from the store, so views
// reflect inserts and imports immediately.
type Service struct {
	store store.Store
	log   zerolog.Logger
}

func NewService(st store.Store, log zerolog.Logger) *Service {
	return &Service{store: st, log: log}
}

// Entries returns entry views, newest first.
func (s *Service) Entries(ctx context.Context) ([]view.EntryView, error) {
	d, err := s.store.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return view.Entries(d.DayEntries), nil
}

// Vital returns the tag, tag group and mood lookups.
func (s *Service) Vital(ctx context.Context) (view.Vital, error) {
	d, err := s.store.LoadDataset(ctx)
	if err != nil {
		return view.Vital{}, err
	}
	return view.BuildVital(d.Tags, d.TagGroups, d.CustomMoods), nil
}

// Structured returns the year/month/day mood aggregate. Entries are folded in
// the same newest-first order used by Entries.
func (s *Service) Structured(ctx context.Context) (view.Aggregate, error) {
	d, err := s.store.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return view.BuildAggregate(d.DayEntries, d.CustomMoods), nil
}

func (s *Service) Metadata(ctx context.Context) (view.Metadata, error) {
	d, err := s.store.LoadDataset(ctx)
	if err != nil {
		return view.Metadata{}, err
	}
	return view.BuildMetadata(d), nil
}

func (s *Service) Summary(ctx context.Context) (*model.Summary, error) {
	return s.store.Summary(ctx)
}

func (s *Service) Moods(ctx context.Context) ([]model.Mood, error) {
	return s.store.ListMoods(ctx)
}

func (s *Service) TagCatalog(ctx context.Context) (*model.TagCatalog, error) {
	return s.store.TagCatalog(ctx)
}

func (s *Service) RawEntries(ctx context.Context) ([]model.EntryRecord, error) {
	return s.store.ListEntries(ctx)
}

// CreateEntry validates req, stores the entry and returns it with its new id.
func (s *Service) CreateEntry(ctx context.Context, req *CreateEntryRequest) (*model.Entry, error) {
	ne, err := ParseCreateEntry(req)
	if err != nil {
		return nil, err
	}
	id, err := s.store.InsertEntry(ctx, ne)
	if err != nil {
		s.log.Error().Err(err).Msg("insert entry failed")
		return nil, err
	}
	metrics.EntryCreated()
	s.log.Debug().Int64("entry_id", id).Int64("mood", *ne.Mood).Msg("entry created")
	return &model.Entry{
		ID:             id,
		Minute:         *ne.Minute,
		Hour:           *ne.Hour,
		Day:            *ne.Day,
		Month:          *ne.Month,
		Year:           *ne.Year,
		Datetime:       *ne.Datetime,
		TimeZoneOffset: *ne.TimeZoneOffset,
		Mood:           *ne.Mood,
		NoteTitle:      ne.NoteTitle,
		Note:           ne.Note,
		Tags:           ne.Tags,
	}, nil
}

// Import decodes a backup file and replaces the stored dataset with it.
func (s *Service) Import(ctx context.Context, raw []byte) (model.ImportCounts, error) {
	d, err := backup.Decode(raw)
	if err != nil {
		metrics.BackupImported(false)
		return model.ImportCounts{}, err
	}
	if err := s.store.ImportDataset(ctx, d); err != nil {
		metrics.BackupImported(false)
		return model.ImportCounts{}, err
	}
	metrics.BackupImported(true)
	return d.Counts(), nil
}

// Export encodes the stored dataset as a backup file.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	d, err := s.store.ExportDataset(ctx)
	if err != nil {
		return nil, err
	}
	return backup.Encode(d)
}

// SeedFromFile imports the backup at path when the store holds no entries.
// It reports whether an import happened.
func (s *Service) SeedFromFile(ctx context.Context, path string) (bool, error) {
	sum, err := s.store.Summary(ctx)
	if err != nil {
		return false, err
	}
	if sum.NumberOfEntries > 0 {
		s.log.Info().Int("entries", sum.NumberOfEntries).Msg("store already populated; skipping seed import")
		return false, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read seed backup: %w", err)
	}
	counts, err := s.Import(ctx, raw)
	if err != nil {
		return false, err
	}
	s.log.Info().
		Str("path", path).
		Int("entries", counts.Entries).
		Int("moods", counts.Moods).
		Msg("seed backup imported")
	return true, nil
}
