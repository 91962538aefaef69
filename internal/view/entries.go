package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daylio-dash/daylio-dash/internal/model"
)

// EntryView is the flat record shown in entry lists and detail pages.
type EntryView struct {
	ID            int64     `json:"id"`
	Time          string    `json:"time"`
	Date          string    `json:"date"`
	DateFormatted string    `json:"date_formatted"`
	Day           string    `json:"day"`
	Journal       [2]string `json:"journal"`
	Mood          int64     `json:"mood"`
	Activities    []int64   `json:"activities"`
}

// Entries maps each entry to its view, keeping input order. Dates come from
// the stored calendar fields; time and weekday come from datetime shifted by
// the entry's time zone offset.
func Entries(entries []model.Entry) []EntryView {
	out := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		local := localInstant(e.Datetime, e.TimeZoneOffset)
		activities := e.Tags
		if activities == nil {
			activities = []int64{}
		}
		out = append(out, EntryView{
			ID:            e.ID,
			Time:          local.Format("03:04 PM"),
			Date:          fmt.Sprintf("%d-%d-%d", e.Day, e.Month, e.Year),
			DateFormatted: Ordinal(e.Day) + " " + monthName(e.Month) + " " + strconv.Itoa(e.Year),
			Day:           local.Weekday().String(),
			Journal:       [2]string{e.NoteTitle, strings.ReplaceAll(e.Note, "\n", BreakMarker)},
			Mood:          e.Mood,
			Activities:    activities,
		})
	}
	return out
}
