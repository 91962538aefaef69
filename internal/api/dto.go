package api

import (
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/daylio-dash/daylio-dash/internal/model"
)

// Lookup responses under /api use camelCase keys, unlike the backup-shaped
// dashboard views.

type moodResponse struct {
	ID               int64  `json:"id"`
	CustomName       string `json:"customName"`
	MoodGroupID      int    `json:"moodGroupId"`
	IconID           *int64 `json:"iconId"`
	PredefinedNameID *int64 `json:"predefinedNameId"`
	State            int    `json:"state"`
	CreatedAt        int64  `json:"createdAt"`
}

type tagResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	TagGroupID *int64  `json:"tagGroupId"`
	Icon       *string `json:"icon"`
	Order      int     `json:"order"`
	State      int     `json:"state"`
	CreatedAt  int64   `json:"createdAt"`
}

type tagGroupResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type tagCatalogResponse struct {
	Tags      []tagResponse      `json:"tags"`
	TagGroups []tagGroupResponse `json:"tagGroups"`
}

type entryRecordResponse struct {
	ID             int64   `json:"id"`
	Minute         int     `json:"minute"`
	Hour           int     `json:"hour"`
	Day            int     `json:"day"`
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	Datetime       int64   `json:"datetime"`
	TimeZoneOffset int64   `json:"timeZoneOffset"`
	Mood           int64   `json:"mood"`
	NoteTitle      string  `json:"noteTitle"`
	Note           string  `json:"note"`
	Tags           []int64 `json:"tags"`
	CreatedAt      int64   `json:"createdAt"`
}

type summaryResponse struct {
	NumberOfEntries int              `json:"numberOfEntries"`
	NumberOfMoods   int              `json:"numberOfMoods"`
	NumberOfTags    int              `json:"numberOfTags"`
	OldestEntry     *int64           `json:"oldestEntry"`
	NewestEntry     *int64           `json:"newestEntry"`
	OldestEntryAt   *strfmt.DateTime `json:"oldestEntryAt"`
	NewestEntryAt   *strfmt.DateTime `json:"newestEntryAt"`
}

type importResponse struct {
	Imported model.ImportCounts `json:"imported"`
}

func toMoodResponses(moods []model.Mood) []moodResponse {
	out := make([]moodResponse, 0, len(moods))
	for _, m := range moods {
		out = append(out, moodResponse{
			ID:               m.ID,
			CustomName:       m.CustomName,
			MoodGroupID:      m.MoodGroupID,
			IconID:           m.IconID,
			PredefinedNameID: m.PredefinedNameID,
			State:            m.State,
			CreatedAt:        m.CreatedAt,
		})
	}
	return out
}

func toTagCatalogResponse(c *model.TagCatalog) tagCatalogResponse {
	resp := tagCatalogResponse{
		Tags:      make([]tagResponse, 0, len(c.Tags)),
		TagGroups: make([]tagGroupResponse, 0, len(c.TagGroups)),
	}
	for _, t := range c.Tags {
		resp.Tags = append(resp.Tags, tagResponse{
			ID:         t.ID,
			Name:       t.Name,
			TagGroupID: t.TagGroupID,
			Icon:       t.Icon,
			Order:      t.Order,
			State:      t.State,
			CreatedAt:  t.CreatedAt,
		})
	}
	for _, g := range c.TagGroups {
		resp.TagGroups = append(resp.TagGroups, tagGroupResponse{ID: g.ID, Name: g.Name, Order: g.Order})
	}
	return resp
}

func toEntryRecordResponses(records []model.EntryRecord) []entryRecordResponse {
	out := make([]entryRecordResponse, 0, len(records))
	for _, r := range records {
		tags := r.Tags
		if tags == nil {
			tags = []int64{}
		}
		out = append(out, entryRecordResponse{
			ID:             r.ID,
			Minute:         r.Minute,
			Hour:           r.Hour,
			Day:            r.Day,
			Month:          r.Month,
			Year:           r.Year,
			Datetime:       r.Datetime,
			TimeZoneOffset: r.TimeZoneOffset,
			Mood:           r.Mood,
			NoteTitle:      r.NoteTitle,
			Note:           r.Note,
			Tags:           tags,
			CreatedAt:      r.CreatedAt,
		})
	}
	return out
}

func toSummaryResponse(s *model.Summary) summaryResponse {
	return summaryResponse{
		NumberOfEntries: s.NumberOfEntries,
		NumberOfMoods:   s.NumberOfMoods,
		NumberOfTags:    s.NumberOfTags,
		OldestEntry:     s.OldestEntry,
		NewestEntry:     s.NewestEntry,
		OldestEntryAt:   millisToDateTime(s.OldestEntry),
		NewestEntryAt:   millisToDateTime(s.NewestEntry),
	}
}

func millisToDateTime(ms *int64) *strfmt.DateTime {
	if ms == nil {
		return nil
	}
	dt := strfmt.DateTime(time.UnixMilli(*ms).UTC())
	return &dt
}
