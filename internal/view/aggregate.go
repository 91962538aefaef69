package view

import (
	"strconv"

	"github.com/daylio-dash/daylio-dash/internal/model"
)

// Aggregate maps year -> month -> day -> mood score. Only days with at least
// one scored entry appear.
type Aggregate map[string]map[string]map[string]float64

// moodScores inverts mood groups so the best group scores highest.
var moodScores = [5]float64{5, 4, 3, 2, 1}

// MoodScore returns the score of a mood group, false when the group is outside 1..5.
func MoodScore(group int) (float64, bool) {
	if group < 1 || group > len(moodScores) {
		return 0, false
	}
	return moodScores[group-1], true
}

// BuildAggregate scores entries by their stored calendar day. A second entry
// on the same day folds in as (current + next) / 2, so with three or more
// entries the result depends on input order and is not the arithmetic mean.
// Entries whose mood has no known group are skipped.
func BuildAggregate(entries []model.Entry, moods []model.Mood) Aggregate {
	groups := make(map[int64]int, len(moods))
	for _, m := range moods {
		groups[m.ID] = m.MoodGroupID
	}

	out := Aggregate{}
	for _, e := range entries {
		group, ok := groups[e.Mood]
		if !ok {
			continue
		}
		score, ok := MoodScore(group)
		if !ok {
			continue
		}

		y, m, d := strconv.Itoa(e.Year), strconv.Itoa(e.Month), strconv.Itoa(e.Day)
		months, ok := out[y]
		if !ok {
			months = map[string]map[string]float64{}
			out[y] = months
		}
		days, ok := months[m]
		if !ok {
			days = map[string]float64{}
			months[m] = days
		}
		if prev, seen := days[d]; seen {
			days[d] = (prev + score) / 2
		} else {
			days[d] = score
		}
	}
	return out
}
