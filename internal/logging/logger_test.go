//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitJSON(t *testing.T) {
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})

	Debug().Str("table", "sales").Int("rows", 3).Msg("Table complete")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "debug" || entry["table"] != "sales" || entry["message"] != "Table complete" {
		t.Errorf("Unexpected log entry: %v", entry)
	}
}

func TestInitLevel(t *testing.T) {
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "console", Output: &buf})

	Info().Msg("hidden")
	Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Info message written at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("Warn message missing")
	}
	if Enabled(zerolog.DebugLevel) {
		t.Error("Debug should not be enabled at warn level")
	}
	if !Enabled(zerolog.ErrorLevel) {
		t.Error("Error should be enabled at warn level")
	}
}

func TestInitInvalidLevel(t *testing.T) {
	defer Init(DefaultConfig())

	Init(Config{Level: "loud", Output: &bytes.Buffer{}})
	if Logger.GetLevel() != zerolog.InfoLevel {
		t.Errorf("Expected info level fallback, got %s", Logger.GetLevel())
	}
}
