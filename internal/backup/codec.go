// Package backup reads and writes Daylio backup files: base64 text wrapping a
// single JSON document with moods, tag groups, tags and day entries.
package backup

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/daylio-dash/daylio-dash/internal/model"
)

// ImportError reports a backup that could not be decoded or failed validation.
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid backup: %s: %v", e.Reason, e.Err)
	}
	return "invalid backup: " + e.Reason
}

func (e *ImportError) Unwrap() error { return e.Err }

// Is matches model.ErrImport.
func (e *ImportError) Is(target error) bool { return target == model.ErrImport }

func importErrorf(format string, args ...any) *ImportError {
	return &ImportError{Reason: fmt.Sprintf(format, args...)}
}

// Decode parses a base64 backup file into a validated dataset. Optional fields
// take their defaults: version 15, order = position in its array, state 0,
// createdAt = now, empty note and title, no tags.
func Decode(raw []byte) (*model.Dataset, error) {
	return decodeAt(raw, time.Now())
}

func decodeAt(raw []byte, now time.Time) (*model.Dataset, error) {
	payload, err := decodeBase64(raw)
	if err != nil {
		return nil, err
	}

	var wb *wireBackup
	if err := json.Unmarshal(payload, &wb); err != nil {
		return nil, &ImportError{Reason: "malformed JSON", Err: err}
	}
	if wb == nil {
		return nil, importErrorf("backup document is null")
	}
	return wb.toDataset(now.UnixMilli())
}

func decodeBase64(raw []byte) ([]byte, error) {
	compact := bytes.Join(bytes.Fields(raw), nil)
	if len(compact) == 0 {
		return nil, importErrorf("file is empty")
	}
	// Padding is optional.
	trimmed := bytes.TrimRight(compact, "=")
	out := make([]byte, base64.RawStdEncoding.DecodedLen(len(trimmed)))
	n, err := base64.RawStdEncoding.Decode(out, trimmed)
	if err != nil {
		return nil, &ImportError{Reason: "malformed base64", Err: err}
	}
	return out[:n], nil
}

// Encode produces a backup file for d. The version is written as given.
func Encode(d *model.Dataset) ([]byte, error) {
	doc := *d
	doc.Metadata.NumberOfEntries = len(doc.DayEntries)
	if doc.CustomMoods == nil {
		doc.CustomMoods = []model.Mood{}
	}
	if doc.TagGroups == nil {
		doc.TagGroups = []model.TagGroup{}
	}
	if doc.Tags == nil {
		doc.Tags = []model.Tag{}
	}
	entries := make([]model.Entry, len(doc.DayEntries))
	for i, e := range doc.DayEntries {
		if e.Tags == nil {
			e.Tags = []int64{}
		}
		entries[i] = e
	}
	doc.DayEntries = entries

	payload, err := json.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	out := make([]byte, base64.StdEncoding.EncodedLen(len(payload)))
	base64.StdEncoding.Encode(out, payload)
	return out, nil
}
