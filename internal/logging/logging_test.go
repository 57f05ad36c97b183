package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup(Options{Level: "debug", JSON: true, Out: &buf})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}

	logger.Debug().Str("module", "test").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["message"] != "hello" {
		t.Errorf("message = %v, want hello", entry["message"])
	}
	if entry["level"] != "debug" {
		t.Errorf("level = %v, want debug", entry["level"])
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if _, err := Setup(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestSetupFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup(Options{Level: "warn", JSON: true, Out: &buf})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	logger.Info().Msg("quiet")
	if buf.Len() != 0 {
		t.Errorf("info written at warn level: %q", buf.String())
	}
	// restore a permissive global level for other tests in the binary
	if _, err := Setup(Options{Level: "info", JSON: true, Out: &bytes.Buffer{}}); err != nil {
		t.Fatal(err)
	}
}

func TestConsoleWithoutTerminalHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup(Options{Level: "info", Out: &buf})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	logger.Info().Str("module", "test").Msg("plain")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("console output to a buffer should not be colored: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "plain") {
		t.Errorf("message missing from %q", buf.String())
	}
}
