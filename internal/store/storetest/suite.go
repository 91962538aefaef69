// Package storetest holds a behavioural suite every store.Store driver must pass.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daylio-dash/daylio-dash/internal/model"
	"github.com/daylio-dash/daylio-dash/internal/store"
)

// Run exercises the compliance suite against a store.Store implementation.
// makeStore may hand out the same underlying database more than once; every
// case starts by importing an empty dataset.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	cases := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"EmptyStore", testEmptyStore},
		{"ImportExportRoundTrip", testRoundTrip},
		{"LoadOrdersNewestFirst", testLoadOrdering},
		{"ImportReplacesPriorData", testImportReplaces},
		{"FailedImportKeepsPriorState", testFailedImportIsAtomic},
		{"InsertEntry", testInsertEntry},
		{"InsertEntryMissingField", testInsertEntryMissingField},
		{"ImportAssignsMissingEntryIDs", testImportAssignsIDs},
		{"Lookups", testLookups},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := makeStore(t)
			require.NoError(t, s.ImportDataset(context.Background(), &model.Dataset{}))
			tc.fn(t, s)
		})
	}
}

func testEmptyStore(t *testing.T, s store.Store) {
	d, err := s.LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Empty(t, d.DayEntries)
	assert.NotNil(t, d.DayEntries)
	assert.Empty(t, d.Tags)
	assert.Empty(t, d.TagGroups)
	assert.Empty(t, d.CustomMoods)
	assert.Equal(t, 0, d.Metadata.NumberOfEntries)
	assert.Equal(t, 0, d.DaysInRowLongestChain)
}

func testRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()
	in := SampleDataset()
	require.NoError(t, s.ImportDataset(ctx, in))

	out, err := s.ExportDataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	require.NoError(t, s.ImportDataset(ctx, out))
	again, err := s.ExportDataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func testLoadOrdering(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.ImportDataset(ctx, SampleDataset()))

	d, err := s.LoadDataset(ctx)
	require.NoError(t, err)
	require.Len(t, d.DayEntries, 5)
	assert.Equal(t, 5, d.Metadata.NumberOfEntries)
	assert.Equal(t, 3, d.DaysInRowLongestChain)
	for i := 1; i < len(d.DayEntries); i++ {
		assert.GreaterOrEqual(t, d.DayEntries[i-1].Datetime, d.DayEntries[i].Datetime)
	}
	assert.Equal(t, int64(1), d.DayEntries[0].ID)
	assert.Equal(t, int64(5), d.DayEntries[4].ID)
	assert.Equal(t, []int64{4, 1}, d.DayEntries[3].Tags, "tag order within an entry is kept")
}

func testImportReplaces(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.ImportDataset(ctx, SampleDataset()))

	smaller := SampleDataset()
	smaller.DayEntries = smaller.DayEntries[:2]
	smaller.Tags = nil
	smaller.Metadata.NumberOfEntries = 2
	require.NoError(t, s.ImportDataset(ctx, smaller))

	d, err := s.LoadDataset(ctx)
	require.NoError(t, err)
	assert.Len(t, d.DayEntries, 2)
	assert.Empty(t, d.Tags)

	require.NoError(t, s.ImportDataset(ctx, &model.Dataset{}))
	d, err = s.LoadDataset(ctx)
	require.NoError(t, err)
	assert.Empty(t, d.DayEntries)
	assert.Empty(t, d.CustomMoods)
	assert.Equal(t, 0, d.Version)

	require.NoError(t, s.ImportDataset(ctx, &model.Dataset{Version: 3}))
	d, err = s.ExportDataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Version)
}

func testFailedImportIsAtomic(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.ImportDataset(ctx, SampleDataset()))
	before, err := s.ExportDataset(ctx)
	require.NoError(t, err)

	bad := SampleDataset()
	bad.DayEntries = bad.DayEntries[:1]
	bad.Tags = append(bad.Tags, bad.Tags[0])
	err = s.ImportDataset(ctx, bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrStorage))

	after, err := s.ExportDataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func testInsertEntry(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.ImportDataset(ctx, SampleDataset()))

	minute, hour, day, month, year := 30, 14, 15, 3, 2024
	dt, off, mood := int64(1710513000000), int64(0), int64(0)
	id, err := s.InsertEntry(ctx, &model.NewEntry{
		Minute: &minute, Hour: &hour, Day: &day, Month: &month, Year: &year,
		Datetime: &dt, TimeZoneOffset: &off, Mood: &mood,
		Note: "new", Tags: []int64{2},
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(5))

	d, err := s.LoadDataset(ctx)
	require.NoError(t, err)
	require.Len(t, d.DayEntries, 6)
	assert.Equal(t, 6, d.Metadata.NumberOfEntries)
	got := d.DayEntries[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, int64(0), got.Mood)
	assert.Equal(t, "", got.NoteTitle)
	assert.Equal(t, []int64{2}, got.Tags)

	records, err := s.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, id, records[0].ID)
	assert.NotZero(t, records[0].CreatedAt)
}

func testInsertEntryMissingField(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.ImportDataset(ctx, SampleDataset()))

	minute, day, month, year := 0, 1, 1, 2024
	dt, off, mood := int64(1704067200000), int64(0), int64(1)
	_, err := s.InsertEntry(ctx, &model.NewEntry{
		Minute: &minute, Day: &day, Month: &month, Year: &year,
		Datetime: &dt, TimeZoneOffset: &off, Mood: &mood,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrStorage))
	var se *store.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "insert entry", se.Op)

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, sum.NumberOfEntries)
}

func testImportAssignsIDs(t *testing.T, s store.Store) {
	ctx := context.Background()
	d := SampleDataset()
	d.DayEntries[4].ID = 0
	require.NoError(t, s.ImportDataset(ctx, d))

	out, err := s.ExportDataset(ctx)
	require.NoError(t, err)
	require.Len(t, out.DayEntries, 5)
	assert.Greater(t, out.DayEntries[4].ID, int64(4))
	assert.Equal(t, 11, out.DayEntries[4].Day)
}

func testLookups(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.ImportDataset(ctx, SampleDataset()))

	moods, err := s.ListMoods(ctx)
	require.NoError(t, err)
	require.Len(t, moods, 5)
	for i := 1; i < len(moods); i++ {
		assert.LessOrEqual(t, moods[i-1].MoodGroupID, moods[i].MoodGroupID)
	}

	cat, err := s.TagCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, cat.Tags, 4)
	assert.Len(t, cat.TagGroups, 2)
	assert.Equal(t, "work", cat.Tags[0].Name)
	assert.Nil(t, cat.Tags[3].TagGroupID)

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, sum.NumberOfEntries)
	assert.Equal(t, 5, sum.NumberOfMoods)
	assert.Equal(t, 4, sum.NumberOfTags)
	require.NotNil(t, sum.OldestEntry)
	require.NotNil(t, sum.NewestEntry)
	assert.Equal(t, int64(1705010400000), *sum.OldestEntry)
	assert.Equal(t, int64(1705327200000), *sum.NewestEntry)

	require.NoError(t, s.ImportDataset(ctx, &model.Dataset{}))
	sum, err = s.Summary(ctx)
	require.NoError(t, err)
	assert.Nil(t, sum.OldestEntry)
	assert.Nil(t, sum.NewestEntry)
}
