package journal

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daylio-dash/daylio-dash/internal/model"
)

func parseBody(t *testing.T, body string) (*model.NewEntry, error) {
	t.Helper()
	var req CreateEntryRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return ParseCreateEntry(&req)
}

func TestParseCreateEntry_Decomposes(t *testing.T) {
	ne, err := parseBody(t, `{"mood": 3, "datetime": 1710513000000, "note": "Line 1\nLine 2", "note_title": "Title", "tags": [2, 1]}`)
	require.NoError(t, err)

	assert.Equal(t, 2024, *ne.Year)
	assert.Equal(t, 3, *ne.Month)
	assert.Equal(t, 15, *ne.Day)
	assert.Equal(t, 14, *ne.Hour)
	assert.Equal(t, 30, *ne.Minute)
	assert.Equal(t, int64(1710513000000), *ne.Datetime)
	assert.Equal(t, int64(0), *ne.TimeZoneOffset)
	assert.Equal(t, int64(3), *ne.Mood)
	assert.Equal(t, "Title", ne.NoteTitle)
	assert.Equal(t, "Line 1\nLine 2", ne.Note)
	assert.Equal(t, []int64{2, 1}, ne.Tags)
}

func TestParseCreateEntry_Defaults(t *testing.T) {
	ne, err := parseBody(t, `{"mood": 0, "datetime": "1710513000000.9", "note": null}`)
	require.NoError(t, err)
	assert.Equal(t, int64(0), *ne.Mood, "mood 0 is a valid mood")
	assert.Equal(t, int64(1710513000000), *ne.Datetime)
	assert.Equal(t, "", ne.Note)
	assert.Equal(t, "", ne.NoteTitle)
	assert.Equal(t, []int64{}, ne.Tags)
}

func TestParseCreateEntry_Rejects(t *testing.T) {
	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"mood missing", `{"datetime": 1710513000000}`, "mood is required"},
		{"mood null", `{"mood": null, "datetime": 1710513000000}`, "mood is required"},
		{"mood checked first", `{}`, "mood is required"},
		{"datetime missing", `{"mood": 1}`, "datetime is required"},
		{"datetime null", `{"mood": 1, "datetime": null}`, "datetime is required"},
		{"datetime zero", `{"mood": 1, "datetime": 0}`, "datetime is required"},
		{"datetime empty string", `{"mood": 1, "datetime": ""}`, "datetime is required"},
		{"datetime false", `{"mood": 1, "datetime": false}`, "datetime is required"},
		{"tags object", `{"mood": 1, "datetime": 1710513000000, "tags": {}}`, "tags must be an array"},
		{"tags string", `{"mood": 1, "datetime": 1710513000000, "tags": "1,2"}`, "tags must be an array"},
		{"tags null", `{"mood": 1, "datetime": 1710513000000, "tags": null}`, "tags must be an array"},
		{"tags before datetime type", `{"mood": 1, "datetime": "soon", "tags": 5}`, "tags must be an array"},
		{"datetime text", `{"mood": 1, "datetime": "not-a-number"}`, "datetime must be a valid number"},
		{"datetime true", `{"mood": 1, "datetime": true}`, "datetime must be a valid number"},
		{"datetime object", `{"mood": 1, "datetime": {"ms": 1}}`, "datetime must be a valid number"},
		{"datetime out of range", `{"mood": 1, "datetime": 1e300}`, "datetime must be a valid number"},
		{"mood text", `{"mood": "happy", "datetime": 1710513000000}`, "mood must be a valid number"},
		{"mood fraction", `{"mood": 1.5, "datetime": 1710513000000}`, "mood must be a valid number"},
		{"tag not an id", `{"mood": 1, "datetime": 1710513000000, "tags": ["a"]}`, "tags must contain activity ids"},
		{"note not text", `{"mood": 1, "datetime": 1710513000000, "note": 42}`, "note must be a string"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ne, err := parseBody(t, tc.body)
			require.Error(t, err)
			assert.Nil(t, ne)

			var ve ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.msg, ve.Message)
			assert.True(t, IsValidationError(err))
			assert.True(t, errors.Is(err, model.ErrValidation))
		})
	}
}

func TestParseCreateEntry_NumericStrings(t *testing.T) {
	ne, err := parseBody(t, `{"mood": "2", "datetime": " 1705327200000 "}`)
	require.NoError(t, err)
	assert.Equal(t, int64(2), *ne.Mood)
	assert.Equal(t, 15, *ne.Day)
	assert.Equal(t, 1, *ne.Month)
}
