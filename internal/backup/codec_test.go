package backup

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daylio-dash/daylio-dash/internal/model"
)

const sampleJSON = `{
  "version": 22,
  "daysInRowLongestChain": 3,
  "customMoods": [
    {"id": 1, "custom_name": "rad", "mood_group_id": 1, "icon_id": 1, "predefined_name_id": 1, "state": 0, "createdAt": 1700000000000},
    {"id": 2, "custom_name": "good", "mood_group_id": 2, "icon_id": 0, "predefined_name_id": null}
  ],
  "tag_groups": [
    {"id": 1, "name": "Hobbies", "order": 0},
    {"id": 2, "name": "Chores"}
  ],
  "tags": [
    {"id": 1, "name": "reading", "id_tag_group": 1, "icon": "book", "order": 0, "state": 0, "createdAt": 1700000000000},
    {"id": 2, "name": "cleaning"}
  ],
  "dayEntries": [
    {"id": 7, "minute": 0, "hour": 14, "day": 15, "month": 1, "year": 2024, "datetime": 1705327200000,
     "timeZoneOffset": 3600000, "mood": 1, "note_title": "Great Day", "note": "Line 1\nLine 2", "tags": [2, 1], "tag_ids": null},
    {"minute": 30, "hour": 9, "day": 14, "month": 1, "year": 2024, "datetime": 1705224600000, "mood": 2, "note_title": null}
  ]
}`

func encodeString(s string) []byte {
	return []byte(base64.StdEncoding.EncodeToString([]byte(s)))
}

func TestDecode_AppliesDefaults(t *testing.T) {
	now := time.UnixMilli(1710000000000)
	d, err := decodeAt(encodeString(sampleJSON), now)
	require.NoError(t, err)

	assert.Equal(t, 22, d.Version)
	assert.Equal(t, 3, d.DaysInRowLongestChain)
	assert.Equal(t, 2, d.Metadata.NumberOfEntries)

	require.Len(t, d.CustomMoods, 2)
	assert.Equal(t, int64(1700000000000), d.CustomMoods[0].CreatedAt)
	assert.Equal(t, now.UnixMilli(), d.CustomMoods[1].CreatedAt)
	require.NotNil(t, d.CustomMoods[1].IconID, "explicit zero icon_id must survive")
	assert.Equal(t, int64(0), *d.CustomMoods[1].IconID)
	assert.Nil(t, d.CustomMoods[1].PredefinedNameID)

	require.Len(t, d.TagGroups, 2)
	assert.Equal(t, 1, d.TagGroups[1].Order, "absent order falls back to array position")

	require.Len(t, d.Tags, 2)
	assert.Nil(t, d.Tags[1].TagGroupID)
	assert.Nil(t, d.Tags[1].Icon)
	assert.Equal(t, 1, d.Tags[1].Order)

	require.Len(t, d.DayEntries, 2)
	first := d.DayEntries[0]
	assert.Equal(t, int64(7), first.ID)
	assert.Equal(t, []int64{2, 1}, first.Tags)
	assert.Equal(t, int64(3600000), first.TimeZoneOffset)
	assert.Equal(t, "Line 1\nLine 2", first.Note)

	second := d.DayEntries[1]
	assert.Equal(t, int64(0), second.ID, "absent id is left for the store to assign")
	assert.Equal(t, "", second.NoteTitle)
	assert.Equal(t, "", second.Note)
	assert.Equal(t, []int64{}, second.Tags)
}

func TestDecode_DefaultVersion(t *testing.T) {
	d, err := Decode(encodeString(`{"dayEntries": []}`))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBackupVersion, d.Version)
	assert.Empty(t, d.DayEntries)
	assert.NotNil(t, d.Tags)
}

func TestDecode_ToleratesLineWrappedBase64(t *testing.T) {
	enc := encodeString(sampleJSON)
	wrapped := make([]byte, 0, len(enc)+len(enc)/60+2)
	for i := 0; i < len(enc); i += 60 {
		end := i + 60
		if end > len(enc) {
			end = len(enc)
		}
		wrapped = append(wrapped, enc[i:end]...)
		wrapped = append(wrapped, '\n')
	}
	d, err := Decode(wrapped)
	require.NoError(t, err)
	assert.Len(t, d.DayEntries, 2)
}

func TestDecode_UnpaddedBase64(t *testing.T) {
	for _, tail := range []string{"", "x", "xy"} {
		doc := `{"version":22,"dayEntries":[],"pad":"` + tail + `"}`
		raw := []byte(base64.RawStdEncoding.EncodeToString([]byte(doc)))
		d, err := Decode(raw)
		require.NoError(t, err, "tail %q", tail)
		assert.Equal(t, 22, d.Version)
	}
}

func TestDecode_ExplicitZeroVersionKept(t *testing.T) {
	d, err := Decode(encodeString(`{"version":0}`))
	require.NoError(t, err)
	assert.Equal(t, 0, d.Version)

	raw, err := Encode(d)
	require.NoError(t, err)
	back, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, 0, back.Version)
}

func TestDecode_Rejects(t *testing.T) {
	cases := map[string][]byte{
		"empty":              []byte("  \n"),
		"not base64":         []byte("%%% definitely not base64 %%%"),
		"unpadded garbage":   []byte("not a backup"),
		"truncated base64":   []byte("QUJDR"),
		"not json":           encodeString("hello world"),
		"json array":         encodeString(`[1,2,3]`),
		"null document":      encodeString(`null`),
		"mood without id":    encodeString(`{"customMoods":[{"custom_name":"x","mood_group_id":1}]}`),
		"mood without group": encodeString(`{"customMoods":[{"id":1,"custom_name":"x"}]}`),
		"duplicate tag id":   encodeString(`{"tags":[{"id":1,"name":"a"},{"id":1,"name":"b"}]}`),
		"entry without mood": encodeString(`{"dayEntries":[{"minute":0,"hour":0,"day":1,"month":1,"year":2024,"datetime":1704067200000}]}`),
		"entry wrong type":   encodeString(`{"dayEntries":[{"minute":"zero"}]}`),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			d, err := Decode(raw)
			require.Error(t, err)
			assert.Nil(t, d)
			assert.True(t, errors.Is(err, model.ErrImport))
			var ie *ImportError
			assert.True(t, errors.As(err, &ie))
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	d, err := decodeAt(encodeString(sampleJSON), time.UnixMilli(1710000000000))
	require.NoError(t, err)
	d.DayEntries[1].ID = 8

	raw, err := Encode(d)
	require.NoError(t, err)

	back, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestEncode_KeyOrderAndEmptyCollections(t *testing.T) {
	raw, err := Encode(&model.Dataset{Version: model.DefaultBackupVersion})
	require.NoError(t, err)

	plain, err := base64.StdEncoding.DecodeString(string(raw))
	require.NoError(t, err)
	assert.Equal(t,
		`{"version":15,"daysInRowLongestChain":0,"metadata":{"number_of_entries":0},"customMoods":[],"tag_groups":[],"tags":[],"dayEntries":[]}`,
		string(plain))
}
