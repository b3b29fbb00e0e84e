package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: "debug", Format: "json", Output: &buf}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Init(DefaultConfig())

	Debug().Str("source", "plays.csv").Msg("loading")

	output := buf.String()
	if !strings.Contains(output, `"message":"loading"`) {
		t.Errorf("expected message in output, got: %s", output)
	}
	if !strings.Contains(output, `"level":"debug"`) || !strings.Contains(output, `"source":"plays.csv"`) {
		t.Errorf("expected level and field in output, got: %s", output)
	}
}

func TestInitLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: "warn", Format: "json", Output: &buf}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Init(DefaultConfig())

	Info().Msg("hidden")
	Warn().Msg("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("info message should be filtered at warn level: %s", output)
	}
	if !strings.Contains(output, "shown") {
		t.Errorf("expected warn message, got: %s", output)
	}
}

func TestInitRejectsInvalid(t *testing.T) {
	if err := Init(Config{Level: "loud"}); err == nil {
		t.Errorf("expected error for unknown level")
	}
	if err := Init(Config{Level: "info", Format: "xml"}); err == nil {
		t.Errorf("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if err != nil || got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v", tt.input, got, err, tt.expected)
		}
	}
}
