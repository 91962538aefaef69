package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter_TagsServiceAndStack(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "daylio-test")
	log.Error().Stack().Err(errors.New("boom")).Msg("failed")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if line["service"] != "daylio-test" {
		t.Fatalf("service = %v", line["service"])
	}
	if line["message"] != "failed" {
		t.Fatalf("message = %v", line["message"])
	}
	if _, ok := line["stack"]; !ok {
		t.Fatalf("expected a stack field, got %s", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	SetLevel("warn")
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("level = %v", zerolog.GlobalLevel())
	}
	SetLevel("nonsense")
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("unknown level must not change the global level")
	}
}
