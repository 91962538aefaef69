package storetest

import "github.com/daylio-dash/daylio-dash/internal/model"

func i64(v int64) *int64 { return &v }
func str(v string) *string { return &v }

// SampleDataset returns five entries on 11..15 January 2024 with moods 1..5,
// where mood n belongs to mood group n and the entry on the 15th has mood 1.
// Slices are ordered the way ExportDataset returns them.
func SampleDataset() *model.Dataset {
	const created = int64(1704067200000)
	return &model.Dataset{
		Version:               22,
		DaysInRowLongestChain: 3,
		Metadata:              model.DatasetMetadata{NumberOfEntries: 5},
		CustomMoods: []model.Mood{
			{ID: 1, CustomName: "rad", MoodGroupID: 1, IconID: i64(1), PredefinedNameID: i64(1), CreatedAt: created},
			{ID: 2, CustomName: "good", MoodGroupID: 2, IconID: i64(2), PredefinedNameID: i64(2), CreatedAt: created},
			{ID: 3, CustomName: "meh", MoodGroupID: 3, IconID: i64(0), CreatedAt: created},
			{ID: 4, CustomName: "bad", MoodGroupID: 4, IconID: i64(4), PredefinedNameID: i64(4), State: 1, CreatedAt: created},
			{ID: 5, CustomName: "awful", MoodGroupID: 5, CreatedAt: created},
		},
		TagGroups: []model.TagGroup{
			{ID: 1, Name: "Hobbies", Order: 0},
			{ID: 2, Name: "Responsibilities", Order: 1},
		},
		Tags: []model.Tag{
			{ID: 1, Name: "work", TagGroupID: i64(2), Icon: str("briefcase"), Order: 0, State: 1, CreatedAt: created},
			{ID: 2, Name: "friends", TagGroupID: i64(1), Icon: str("people"), Order: 1, CreatedAt: created},
			{ID: 3, Name: "exercise", TagGroupID: i64(1), Order: 2, CreatedAt: created},
			{ID: 4, Name: "deadlines", Icon: str("clock"), Order: 3, CreatedAt: created},
		},
		DayEntries: []model.Entry{
			{ID: 1, Minute: 0, Hour: 14, Day: 15, Month: 1, Year: 2024, Datetime: 1705327200000, Mood: 1,
				NoteTitle: "Great Day", Note: "Had a wonderful day with friends.", Tags: []int64{1, 2}},
			{ID: 2, Minute: 30, Hour: 9, Day: 14, Month: 1, Year: 2024, Datetime: 1705224600000, Mood: 2,
				NoteTitle: "Good Morning", Note: "Started the day with exercise.", Tags: []int64{3}},
			{ID: 3, Minute: 0, Hour: 20, Day: 13, Month: 1, Year: 2024, Datetime: 1705176000000, Mood: 3,
				Note: "Regular day at work.\nNothing special.", Tags: []int64{1}},
			{ID: 4, Minute: 15, Hour: 18, Day: 12, Month: 1, Year: 2024, Datetime: 1705083300000, Mood: 4,
				NoteTitle: "Stressful", Note: "Too many deadlines.", Tags: []int64{4, 1}},
			{ID: 5, Minute: 0, Hour: 22, Day: 11, Month: 1, Year: 2024, Datetime: 1705010400000, TimeZoneOffset: 3600000, Mood: 5,
				NoteTitle: "Rough Day", Note: "Everything went wrong.", Tags: []int64{}},
		},
	}
}
