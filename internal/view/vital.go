package view

import (
	"strconv"

	"github.com/daylio-dash/daylio-dash/internal/model"
)

// Activity describes one tag in the vital lookup.
type Activity struct {
	Name  string  `json:"name"`
	Group *int64  `json:"group"`
	Icon  *string `json:"icon"`
}

// Vital is the reference data the UI needs to render entries.
type Vital struct {
	AvailableActivities     map[string]Activity `json:"available_activities"`
	AvailableActivityGroups map[string]string   `json:"available_activity_groups"`
	AvailableMoods          map[string]string   `json:"available_moods"`
	AvailableMoodGroups     map[string]int      `json:"available_mood_groups"`
	OrderedMoodList         []string            `json:"ordered_mood_list"`
	Months                  [12]string          `json:"months"`
}

// BuildVital indexes tags, tag groups and moods by id. ordered_mood_list keeps
// the input order of moods.
func BuildVital(tags []model.Tag, groups []model.TagGroup, moods []model.Mood) Vital {
	v := Vital{
		AvailableActivities:     make(map[string]Activity, len(tags)),
		AvailableActivityGroups: make(map[string]string, len(groups)),
		AvailableMoods:          make(map[string]string, len(moods)),
		AvailableMoodGroups:     make(map[string]int, len(moods)),
		OrderedMoodList:         make([]string, 0, len(moods)),
		Months:                  Months,
	}
	for _, t := range tags {
		v.AvailableActivities[key(t.ID)] = Activity{Name: t.Name, Group: t.TagGroupID, Icon: t.Icon}
	}
	for _, g := range groups {
		v.AvailableActivityGroups[key(g.ID)] = g.Name
	}
	for _, m := range moods {
		v.AvailableMoods[key(m.ID)] = m.CustomName
		v.AvailableMoodGroups[key(m.ID)] = m.MoodGroupID
		v.OrderedMoodList = append(v.OrderedMoodList, m.CustomName)
	}
	return v
}

func key(id int64) string { return strconv.FormatInt(id, 10) }
