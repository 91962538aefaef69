package backup

import (
	"github.com/daylio-dash/daylio-dash/internal/model"
)

// Wire structs keep every optional field as a pointer so absent keys can be
// told apart from explicit zero values. Unknown keys are ignored.

type wireBackup struct {
	Version               *int           `json:"version"`
	DaysInRowLongestChain *int           `json:"daysInRowLongestChain"`
	CustomMoods           []wireMood     `json:"customMoods"`
	TagGroups             []wireTagGroup `json:"tag_groups"`
	Tags                  []wireTag      `json:"tags"`
	DayEntries            []wireEntry    `json:"dayEntries"`
}

type wireMood struct {
	ID               *int64  `json:"id"`
	CustomName       *string `json:"custom_name"`
	MoodGroupID      *int    `json:"mood_group_id"`
	IconID           *int64  `json:"icon_id"`
	PredefinedNameID *int64  `json:"predefined_name_id"`
	State            *int    `json:"state"`
	CreatedAt        *int64  `json:"createdAt"`
}

type wireTagGroup struct {
	ID    *int64  `json:"id"`
	Name  *string `json:"name"`
	Order *int    `json:"order"`
}

type wireTag struct {
	ID         *int64  `json:"id"`
	Name       *string `json:"name"`
	TagGroupID *int64  `json:"id_tag_group"`
	Icon       *string `json:"icon"`
	Order      *int    `json:"order"`
	State      *int    `json:"state"`
	CreatedAt  *int64  `json:"createdAt"`
}

type wireEntry struct {
	ID             *int64  `json:"id"`
	Minute         *int    `json:"minute"`
	Hour           *int    `json:"hour"`
	Day            *int    `json:"day"`
	Month          *int    `json:"month"`
	Year           *int    `json:"year"`
	Datetime       *int64  `json:"datetime"`
	TimeZoneOffset *int64  `json:"timeZoneOffset"`
	Mood           *int64  `json:"mood"`
	NoteTitle      *string `json:"note_title"`
	Note           *string `json:"note"`
	Tags           []int64 `json:"tags"`
}

func (wb *wireBackup) toDataset(nowMillis int64) (*model.Dataset, error) {
	d := &model.Dataset{
		Version:     model.DefaultBackupVersion,
		CustomMoods: make([]model.Mood, 0, len(wb.CustomMoods)),
		TagGroups:   make([]model.TagGroup, 0, len(wb.TagGroups)),
		Tags:        make([]model.Tag, 0, len(wb.Tags)),
		DayEntries:  make([]model.Entry, 0, len(wb.DayEntries)),
	}
	if wb.Version != nil {
		d.Version = *wb.Version
	}
	if wb.DaysInRowLongestChain != nil {
		d.DaysInRowLongestChain = *wb.DaysInRowLongestChain
	}

	moodIDs := make(map[int64]struct{}, len(wb.CustomMoods))
	for i, m := range wb.CustomMoods {
		if err := requireID("customMoods", i, m.ID, moodIDs); err != nil {
			return nil, err
		}
		if m.MoodGroupID == nil {
			return nil, importErrorf("customMoods[%d]: mood_group_id is required", i)
		}
		d.CustomMoods = append(d.CustomMoods, model.Mood{
			ID:               *m.ID,
			CustomName:       deref(m.CustomName, ""),
			MoodGroupID:      *m.MoodGroupID,
			IconID:           m.IconID,
			PredefinedNameID: m.PredefinedNameID,
			State:            deref(m.State, 0),
			CreatedAt:        deref(m.CreatedAt, nowMillis),
		})
	}

	groupIDs := make(map[int64]struct{}, len(wb.TagGroups))
	for i, g := range wb.TagGroups {
		if err := requireID("tag_groups", i, g.ID, groupIDs); err != nil {
			return nil, err
		}
		d.TagGroups = append(d.TagGroups, model.TagGroup{
			ID:    *g.ID,
			Name:  deref(g.Name, ""),
			Order: deref(g.Order, i),
		})
	}

	tagIDs := make(map[int64]struct{}, len(wb.Tags))
	for i, t := range wb.Tags {
		if err := requireID("tags", i, t.ID, tagIDs); err != nil {
			return nil, err
		}
		d.Tags = append(d.Tags, model.Tag{
			ID:         *t.ID,
			Name:       deref(t.Name, ""),
			TagGroupID: t.TagGroupID,
			Icon:       t.Icon,
			Order:      deref(t.Order, i),
			State:      deref(t.State, 0),
			CreatedAt:  deref(t.CreatedAt, nowMillis),
		})
	}

	entryIDs := make(map[int64]struct{}, len(wb.DayEntries))
	for i, e := range wb.DayEntries {
		entry, err := e.toEntry(i, entryIDs)
		if err != nil {
			return nil, err
		}
		d.DayEntries = append(d.DayEntries, entry)
	}
	d.Metadata.NumberOfEntries = len(d.DayEntries)
	return d, nil
}

func (e wireEntry) toEntry(i int, seen map[int64]struct{}) (model.Entry, error) {
	var out model.Entry
	if e.ID != nil {
		if *e.ID <= 0 {
			return out, importErrorf("dayEntries[%d]: id must be positive", i)
		}
		if _, dup := seen[*e.ID]; dup {
			return out, importErrorf("dayEntries[%d]: duplicate id %d", i, *e.ID)
		}
		seen[*e.ID] = struct{}{}
		out.ID = *e.ID
	}

	required := []struct {
		name string
		set  bool
	}{
		{"minute", e.Minute != nil},
		{"hour", e.Hour != nil},
		{"day", e.Day != nil},
		{"month", e.Month != nil},
		{"year", e.Year != nil},
		{"datetime", e.Datetime != nil},
		{"mood", e.Mood != nil},
	}
	for _, f := range required {
		if !f.set {
			return out, importErrorf("dayEntries[%d]: %s is required", i, f.name)
		}
	}

	out.Minute = *e.Minute
	out.Hour = *e.Hour
	out.Day = *e.Day
	out.Month = *e.Month
	out.Year = *e.Year
	out.Datetime = *e.Datetime
	out.TimeZoneOffset = deref(e.TimeZoneOffset, 0)
	out.Mood = *e.Mood
	out.NoteTitle = deref(e.NoteTitle, "")
	out.Note = deref(e.Note, "")
	out.Tags = e.Tags
	if out.Tags == nil {
		out.Tags = []int64{}
	}
	return out, nil
}

func requireID(section string, i int, id *int64, seen map[int64]struct{}) error {
	if id == nil {
		return importErrorf("%s[%d]: id is required", section, i)
	}
	if _, dup := seen[*id]; dup {
		return importErrorf("%s[%d]: duplicate id %d", section, i, *id)
	}
	seen[*id] = struct{}{}
	return nil
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
