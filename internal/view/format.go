// Package view turns stored journal data into the shapes the dashboard reads.
// Every function here is pure and recomputed from a fresh dataset per request.
package view

import (
	"strconv"
	"time"
)

// BreakMarker replaces newlines in note bodies.
const BreakMarker = "<br>"

// Months are the abbreviated month names, January first.
var Months = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Ordinal renders n with its English ordinal suffix: 1st, 2nd, 3rd, 4th, 11th, 21st.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// monthName returns the abbreviation for a 1-based month, or the number
// itself when it is out of range.
func monthName(month int) string {
	if month < 1 || month > 12 {
		return strconv.Itoa(month)
	}
	return Months[month-1]
}

// localInstant shifts an epoch-millisecond datetime by the entry's offset and
// returns it as a UTC wall clock.
func localInstant(datetime, offset int64) time.Time {
	return time.UnixMilli(datetime + offset).UTC()
}
