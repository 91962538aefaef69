package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"

	"github.com/daylio-dash/daylio-dash/internal/model"
	"github.com/daylio-dash/daylio-dash/internal/store"
)

const (
	tableEntries     = "entries"
	tableTags        = "tags"
	tableTagGroups   = "tag_groups"
	tableMoods       = "moods"
	tableDatasetInfo = "dataset_info"
)

var (
	entryColumns    = []string{"id", "minute", "hour", "day", "month", "year", "datetime", "time_zone_offset", "mood", "note_title", "note", "tags_json", "created_at"}
	tagColumns      = []string{"id", "name", "id_tag_group", "icon", "order_index", "state", "created_at"}
	tagGroupColumns = []string{"id", "name", "order_index"}
	moodColumns     = []string{"id", "custom_name", "mood_group_id", "icon_id", "predefined_name_id", "state", "created_at"}
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is a store.Store over a database/sql handle.
type Store struct {
	db      *sql.DB
	dialect Dialect
	sb      sq.StatementBuilderType
	log     zerolog.Logger
	now     func() time.Time
}

var _ store.Store = (*Store)(nil)

// New wraps db. Call Migrate before first use.
func New(db *sql.DB, dialect Dialect, log zerolog.Logger) *Store {
	if dialect.MaxParams <= 0 {
		dialect.MaxParams = 900
	}
	return &Store{
		db:      db,
		dialect: dialect,
		sb:      sq.StatementBuilder.PlaceholderFormat(dialect.Placeholder),
		log:     log,
		now:     time.Now,
	}
}

// SetClock overrides the clock used for created_at stamps.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// HealthPing verifies the database is reachable.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error { return s.db.Close() }

// ImportDataset replaces entries, tags, tag groups, moods and dataset info with d.
// Any failure rolls the transaction back and leaves the previous data in place.
func (s *Store) ImportDataset(ctx context.Context, d *model.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Wrap("import: begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{tableEntries, tableTags, tableTagGroups, tableMoods, tableDatasetInfo} {
		q, args, err := s.sb.Delete(table).ToSql()
		if err != nil {
			return store.Wrap("import: clear "+table, err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return store.Wrap("import: clear "+table, err)
		}
	}

	groupRows := make([][]any, 0, len(d.TagGroups))
	for _, g := range d.TagGroups {
		groupRows = append(groupRows, []any{g.ID, g.Name, g.Order})
	}
	if err := s.insertRows(ctx, tx, tableTagGroups, tagGroupColumns, groupRows); err != nil {
		return err
	}

	tagRows := make([][]any, 0, len(d.Tags))
	for _, t := range d.Tags {
		tagRows = append(tagRows, []any{t.ID, t.Name, nullInt64(t.TagGroupID), nullString(t.Icon), t.Order, t.State, t.CreatedAt})
	}
	if err := s.insertRows(ctx, tx, tableTags, tagColumns, tagRows); err != nil {
		return err
	}

	moodRows := make([][]any, 0, len(d.CustomMoods))
	for _, m := range d.CustomMoods {
		moodRows = append(moodRows, []any{m.ID, m.CustomName, m.MoodGroupID, nullInt64(m.IconID), nullInt64(m.PredefinedNameID), m.State, m.CreatedAt})
	}
	if err := s.insertRows(ctx, tx, tableMoods, moodColumns, moodRows); err != nil {
		return err
	}

	createdAt := s.now().UnixMilli()
	var withID, withoutID [][]any
	for _, e := range d.DayEntries {
		tagsJSON, err := encodeTags(e.Tags)
		if err != nil {
			return store.Wrap("import: entries", err)
		}
		row := []any{e.Minute, e.Hour, e.Day, e.Month, e.Year, e.Datetime, e.TimeZoneOffset, e.Mood, e.NoteTitle, e.Note, tagsJSON, createdAt}
		if e.ID > 0 {
			withID = append(withID, append([]any{e.ID}, row...))
		} else {
			withoutID = append(withoutID, row)
		}
	}
	if err := s.insertRows(ctx, tx, tableEntries, entryColumns, withID); err != nil {
		return err
	}
	if s.dialect.AfterImport != nil {
		if err := s.dialect.AfterImport(ctx, tx); err != nil {
			return store.Wrap("import: entry ids", err)
		}
	}
	if err := s.insertRows(ctx, tx, tableEntries, entryColumns[1:], withoutID); err != nil {
		return err
	}

	q, args, err := s.sb.Insert(tableDatasetInfo).
		Columns("id", "version", "longest_chain").
		Values(1, d.Version, d.DaysInRowLongestChain).
		ToSql()
	if err != nil {
		return store.Wrap("import: dataset info", err)
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return store.Wrap("import: dataset info", err)
	}
	if err := tx.Commit(); err != nil {
		return store.Wrap("import: commit", err)
	}

	s.log.Info().
		Int("entries", len(d.DayEntries)).
		Int("tags", len(d.Tags)).
		Int("tag_groups", len(d.TagGroups)).
		Int("moods", len(d.CustomMoods)).
		Msg("dataset imported")
	return nil
}

// insertRows writes rows with multi-row INSERT statements sized to the
// dialect's bind parameter limit.
func (s *Store) insertRows(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) error {
	per := s.dialect.MaxParams / len(columns)
	if per < 1 {
		per = 1
	}
	for start := 0; start < len(rows); start += per {
		end := start + per
		if end > len(rows) {
			end = len(rows)
		}
		ins := s.sb.Insert(table).Columns(columns...)
		for _, r := range rows[start:end] {
			ins = ins.Values(r...)
		}
		q, args, err := ins.ToSql()
		if err != nil {
			return store.Wrap("import: "+table, err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return store.Wrap("import: "+table, err)
		}
	}
	return nil
}

// LoadDataset returns the stored journal with entries ordered newest first.
func (s *Store) LoadDataset(ctx context.Context) (*model.Dataset, error) {
	return s.readDataset(ctx, "load dataset", "datetime DESC", "id DESC")
}

// ExportDataset returns the stored journal with entries in ascending id order.
func (s *Store) ExportDataset(ctx context.Context) (*model.Dataset, error) {
	return s.readDataset(ctx, "export dataset", "id ASC")
}

func (s *Store) readDataset(ctx context.Context, op string, entryOrder ...string) (*model.Dataset, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, store.Wrap(op, err)
	}
	defer func() { _ = tx.Rollback() }()

	d := &model.Dataset{Version: model.DefaultBackupVersion}

	records, err := s.queryEntries(ctx, tx, entryOrder...)
	if err != nil {
		return nil, store.Wrap(op, err)
	}
	d.DayEntries = make([]model.Entry, len(records))
	for i, r := range records {
		d.DayEntries[i] = r.Entry
	}
	d.Metadata.NumberOfEntries = len(d.DayEntries)

	if d.Tags, err = s.queryTags(ctx, tx); err != nil {
		return nil, store.Wrap(op, err)
	}
	if d.TagGroups, err = s.queryTagGroups(ctx, tx); err != nil {
		return nil, store.Wrap(op, err)
	}
	if d.CustomMoods, err = s.queryMoods(ctx, tx); err != nil {
		return nil, store.Wrap(op, err)
	}

	q, args, err := s.sb.Select("version", "longest_chain").From(tableDatasetInfo).Where(sq.Eq{"id": 1}).ToSql()
	if err != nil {
		return nil, store.Wrap(op, err)
	}
	switch err := tx.QueryRowContext(ctx, q, args...).Scan(&d.Version, &d.DaysInRowLongestChain); err {
	case nil, sql.ErrNoRows:
	default:
		return nil, store.Wrap(op, err)
	}
	return d, nil
}

// InsertEntry appends a single entry and returns its assigned id.
func (s *Store) InsertEntry(ctx context.Context, e *model.NewEntry) (int64, error) {
	tagsJSON, err := encodeTags(e.Tags)
	if err != nil {
		return 0, store.Wrap("insert entry", err)
	}
	createdAt := e.CreatedAt
	if createdAt == 0 {
		createdAt = s.now().UnixMilli()
	}
	ins := s.sb.Insert(tableEntries).
		Columns(entryColumns[1:]...).
		Values(nullInt(e.Minute), nullInt(e.Hour), nullInt(e.Day), nullInt(e.Month), nullInt(e.Year),
			nullInt64(e.Datetime), nullInt64(e.TimeZoneOffset), nullInt64(e.Mood),
			e.NoteTitle, e.Note, tagsJSON, createdAt)

	if s.dialect.ReturningID {
		q, args, err := ins.Suffix("RETURNING id").ToSql()
		if err != nil {
			return 0, store.Wrap("insert entry", err)
		}
		var id int64
		if err := s.db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
			return 0, store.Wrap("insert entry", err)
		}
		return id, nil
	}

	q, args, err := ins.ToSql()
	if err != nil {
		return 0, store.Wrap("insert entry", err)
	}
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, store.Wrap("insert entry", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, store.Wrap("insert entry", err)
	}
	return id, nil
}

// ListEntries returns every entry with its insertion stamp, newest first.
func (s *Store) ListEntries(ctx context.Context) ([]model.EntryRecord, error) {
	out, err := s.queryEntries(ctx, s.db, "datetime DESC", "id DESC")
	return out, store.Wrap("list entries", err)
}

// ListMoods returns mood definitions ordered by mood group.
func (s *Store) ListMoods(ctx context.Context) ([]model.Mood, error) {
	out, err := s.queryMoods(ctx, s.db)
	return out, store.Wrap("list moods", err)
}

// TagCatalog returns tags and tag groups in display order.
func (s *Store) TagCatalog(ctx context.Context) (*model.TagCatalog, error) {
	tags, err := s.queryTags(ctx, s.db)
	if err != nil {
		return nil, store.Wrap("tag catalog", err)
	}
	groups, err := s.queryTagGroups(ctx, s.db)
	if err != nil {
		return nil, store.Wrap("tag catalog", err)
	}
	return &model.TagCatalog{Tags: tags, TagGroups: groups}, nil
}

// Summary counts stored records and finds the oldest and newest entry.
func (s *Store) Summary(ctx context.Context) (*model.Summary, error) {
	var sum model.Summary
	counts := []struct {
		table string
		dst   *int
	}{
		{tableEntries, &sum.NumberOfEntries},
		{tableMoods, &sum.NumberOfMoods},
		{tableTags, &sum.NumberOfTags},
	}
	for _, c := range counts {
		q, args, err := s.sb.Select("COUNT(*)").From(c.table).ToSql()
		if err != nil {
			return nil, store.Wrap("summary", err)
		}
		if err := s.db.QueryRowContext(ctx, q, args...).Scan(c.dst); err != nil {
			return nil, store.Wrap("summary", err)
		}
	}

	q, args, err := s.sb.Select("MIN(datetime)", "MAX(datetime)").From(tableEntries).ToSql()
	if err != nil {
		return nil, store.Wrap("summary", err)
	}
	var oldest, newest sql.NullInt64
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&oldest, &newest); err != nil {
		return nil, store.Wrap("summary", err)
	}
	if oldest.Valid {
		sum.OldestEntry = &oldest.Int64
	}
	if newest.Valid {
		sum.NewestEntry = &newest.Int64
	}
	return &sum, nil
}

func (s *Store) queryEntries(ctx context.Context, q querier, orderBy ...string) ([]model.EntryRecord, error) {
	query, args, err := s.sb.Select(entryColumns...).From(tableEntries).OrderBy(orderBy...).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []model.EntryRecord{}
	for rows.Next() {
		var (
			r         model.EntryRecord
			noteTitle sql.NullString
			note      sql.NullString
			tagsJSON  string
		)
		if err := rows.Scan(&r.ID, &r.Minute, &r.Hour, &r.Day, &r.Month, &r.Year, &r.Datetime,
			&r.TimeZoneOffset, &r.Mood, &noteTitle, &note, &tagsJSON, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.NoteTitle = noteTitle.String
		r.Note = note.String
		if r.Tags, err = decodeTags(tagsJSON); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) queryTags(ctx context.Context, q querier) ([]model.Tag, error) {
	query, args, err := s.sb.Select(tagColumns...).From(tableTags).OrderBy("order_index", "id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []model.Tag{}
	for rows.Next() {
		var (
			t     model.Tag
			group sql.NullInt64
			icon  sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Name, &group, &icon, &t.Order, &t.State, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.TagGroupID = int64Ptr(group)
		t.Icon = stringPtr(icon)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) queryTagGroups(ctx context.Context, q querier) ([]model.TagGroup, error) {
	query, args, err := s.sb.Select(tagGroupColumns...).From(tableTagGroups).OrderBy("order_index", "id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []model.TagGroup{}
	for rows.Next() {
		var g model.TagGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Order); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) queryMoods(ctx context.Context, q querier) ([]model.Mood, error) {
	query, args, err := s.sb.Select(moodColumns...).From(tableMoods).OrderBy("mood_group_id", "id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []model.Mood{}
	for rows.Next() {
		var (
			m          model.Mood
			iconID     sql.NullInt64
			predefined sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &m.CustomName, &m.MoodGroupID, &iconID, &predefined, &m.State, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.IconID = int64Ptr(iconID)
		m.PredefinedNameID = int64Ptr(predefined)
		out = append(out, m)
	}
	return out, rows.Err()
}

func encodeTags(tags []int64) (string, error) {
	if tags == nil {
		tags = []int64{}
	}
	b, err := json.Marshal(tags)
	return string(b), err
}

func decodeTags(s string) ([]int64, error) {
	tags := []int64{}
	if s == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []int64{}
	}
	return tags, nil
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

func nullInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func stringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}
