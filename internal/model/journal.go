// Package model defines the journal entities shared by the backup codec, the
// storage layer and the view builders. JSON tags follow the backup file keys.
package model

// DefaultBackupVersion is written to exports when the imported backup carried no version.
const DefaultBackupVersion = 15

// Mood is a user-defined mood mapped onto one of five fixed mood groups
// (1 = best ... 5 = worst).
type Mood struct {
	ID               int64  `json:"id"`
	CustomName       string `json:"custom_name"`
	MoodGroupID      int    `json:"mood_group_id"`
	IconID           *int64 `json:"icon_id"`
	PredefinedNameID *int64 `json:"predefined_name_id"`
	State            int    `json:"state"`
	CreatedAt        int64  `json:"createdAt"`
}

// TagGroup is a named category of activities.
type TagGroup struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Tag is an activity that can be attached to entries.
type Tag struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	TagGroupID *int64  `json:"id_tag_group"`
	Icon       *string `json:"icon"`
	Order      int     `json:"order"`
	State      int     `json:"state"`
	CreatedAt  int64   `json:"createdAt"`
}

// Entry is a single journal record. Calendar fields are stored alongside the
// epoch-millisecond datetime and are authoritative for date display.
type Entry struct {
	ID             int64   `json:"id"`
	Minute         int     `json:"minute"`
	Hour           int     `json:"hour"`
	Day            int     `json:"day"`
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	Datetime       int64   `json:"datetime"`
	TimeZoneOffset int64   `json:"timeZoneOffset"`
	Mood           int64   `json:"mood"`
	NoteTitle      string  `json:"note_title"`
	Note           string  `json:"note"`
	Tags           []int64 `json:"tags"`
}

// EntryRecord is an Entry together with the server-side insertion timestamp.
type EntryRecord struct {
	Entry
	CreatedAt int64
}

// NewEntry is the insert shape handed to the store. Pointer fields left nil
// reach the database as NULL and are rejected by its NOT NULL constraints.
type NewEntry struct {
	Minute         *int
	Hour           *int
	Day            *int
	Month          *int
	Year           *int
	Datetime       *int64
	TimeZoneOffset *int64
	Mood           *int64
	NoteTitle      string
	Note           string
	Tags           []int64
	CreatedAt      int64
}

// DatasetMetadata is the metadata block of a backup.
type DatasetMetadata struct {
	NumberOfEntries int `json:"number_of_entries"`
}

// Dataset is the full journal state, shaped like a backup file. Field order
// is the key order used when encoding exports.
type Dataset struct {
	Version               int             `json:"version"`
	DaysInRowLongestChain int             `json:"daysInRowLongestChain"`
	Metadata              DatasetMetadata `json:"metadata"`
	CustomMoods           []Mood          `json:"customMoods"`
	TagGroups             []TagGroup      `json:"tag_groups"`
	Tags                  []Tag           `json:"tags"`
	DayEntries            []Entry         `json:"dayEntries"`
}

// TagCatalog holds every tag and tag group, each in display order.
type TagCatalog struct {
	Tags      []Tag
	TagGroups []TagGroup
}

// Summary holds aggregate counts over the stored journal. Oldest and Newest
// are nil when there are no entries.
type Summary struct {
	NumberOfEntries int
	NumberOfMoods   int
	NumberOfTags    int
	OldestEntry     *int64
	NewestEntry     *int64
}

// ImportCounts reports how many records a dataset import wrote.
type ImportCounts struct {
	Entries   int `json:"entries"`
	Tags      int `json:"tags"`
	TagGroups int `json:"tag_groups"`
	Moods     int `json:"moods"`
}

// Counts returns the number of records of each kind in d.
func (d *Dataset) Counts() ImportCounts {
	return ImportCounts{
		Entries:   len(d.DayEntries),
		Tags:      len(d.Tags),
		TagGroups: len(d.TagGroups),
		Moods:     len(d.CustomMoods),
	}
}
