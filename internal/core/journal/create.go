package journal

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/daylio-dash/daylio-dash/internal/model"
)

// maxDatetimeMillis is the largest instant a JavaScript Date can hold.
const maxDatetimeMillis = 8.64e15

// CreateEntryRequest is the body of POST /api/entries. Fields stay raw so
// missing, null and wrongly typed values can be told apart.
type CreateEntryRequest struct {
	Mood      json.RawMessage `json:"mood"`
	Datetime  json.RawMessage `json:"datetime"`
	Note      json.RawMessage `json:"note"`
	NoteTitle json.RawMessage `json:"note_title"`
	Tags      json.RawMessage `json:"tags"`
}

// ParseCreateEntry validates r and decomposes its datetime in UTC. Checks run
// in a fixed order and the first failure is returned as a ValidationError.
// The time zone offset of created entries is always 0.
func ParseCreateEntry(r *CreateEntryRequest) (*model.NewEntry, error) {
	if isAbsent(r.Mood) {
		return nil, NewValidationError("mood", "mood is required")
	}
	if isFalsy(r.Datetime) {
		return nil, NewValidationError("datetime", "datetime is required")
	}
	if len(r.Tags) > 0 && !isArray(r.Tags) {
		return nil, NewValidationError("tags", "tags must be an array")
	}
	datetime, ok := parseMillis(r.Datetime)
	if !ok {
		return nil, NewValidationError("datetime", "datetime must be a valid number")
	}
	mood, ok := parseInteger(r.Mood)
	if !ok {
		return nil, NewValidationError("mood", "mood must be a valid number")
	}
	tags := []int64{}
	if len(r.Tags) > 0 {
		if err := json.Unmarshal(r.Tags, &tags); err != nil {
			return nil, NewValidationError("tags", "tags must contain activity ids")
		}
	}
	note, ok := optionalString(r.Note)
	if !ok {
		return nil, NewValidationError("note", "note must be a string")
	}
	noteTitle, ok := optionalString(r.NoteTitle)
	if !ok {
		return nil, NewValidationError("note_title", "note_title must be a string")
	}

	t := time.UnixMilli(datetime).UTC()
	minute, hour, day, month, year := t.Minute(), t.Hour(), t.Day(), int(t.Month()), t.Year()
	offset := int64(0)
	return &model.NewEntry{
		Minute:         &minute,
		Hour:           &hour,
		Day:            &day,
		Month:          &month,
		Year:           &year,
		Datetime:       &datetime,
		TimeZoneOffset: &offset,
		Mood:           &mood,
		NoteTitle:      noteTitle,
		Note:           note,
		Tags:           tags,
	}, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// isFalsy reports values a JavaScript client would treat as "not provided":
// missing, null, false, the empty string and zero.
func isFalsy(raw json.RawMessage) bool {
	if isAbsent(raw) {
		return true
	}
	trimmed := bytes.TrimSpace(raw)
	switch trimmed[0] {
	case 'f':
		return bytes.Equal(trimmed, []byte("false"))
	case '"':
		var s string
		return json.Unmarshal(trimmed, &s) == nil && s == ""
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(trimmed), 64)
		return err == nil && f == 0
	}
	return false
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// parseNumber accepts a JSON number or a string holding one.
func parseNumber(raw json.RawMessage) (float64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, false
	}
	text := string(trimmed)
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(s)
	} else if !strings.ContainsAny(text[:1], "-0123456789") {
		return 0, false
	}
	if text == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseMillis returns an epoch-millisecond instant, dropping any fraction.
func parseMillis(raw json.RawMessage) (int64, bool) {
	f, ok := parseNumber(raw)
	if !ok || math.Abs(f) > maxDatetimeMillis {
		return 0, false
	}
	return int64(math.Trunc(f)), true
}

func parseInteger(raw json.RawMessage) (int64, bool) {
	f, ok := parseNumber(raw)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int64(f), true
}

func optionalString(raw json.RawMessage) (string, bool) {
	if isAbsent(raw) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
