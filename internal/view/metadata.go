package view

import "github.com/daylio-dash/daylio-dash/internal/model"

// Metadata is the dashboard header summary.
type Metadata struct {
	LongestDaysInRow int `json:"longestDaysInRow"`
	NumberOfEntries  int `json:"numberOfEntries"`
}

// BuildMetadata reports the entry count and the streak value carried by the
// imported backup. The streak is never derived from entries.
func BuildMetadata(d *model.Dataset) Metadata {
	return Metadata{
		LongestDaysInRow: d.DaysInRowLongestChain,
		NumberOfEntries:  d.Metadata.NumberOfEntries,
	}
}
