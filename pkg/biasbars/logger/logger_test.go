package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json")
	log.Info("ingestion finished", "words", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("Output should be JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "ingestion finished" || rec["words"] != float64(3) {
		t.Errorf("Unexpected record %v", rec)
	}
}

func TestNewTextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "text")
	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Info should be filtered at warn level")
	}
	if !strings.Contains(out, "msg=shown") {
		t.Errorf("Expected text output with the warning, got %q", out)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(New(&buf, "info", "text"))
	t.Cleanup(func() { slog.SetDefault(prev) })

	WithComponent("ingest").Info("hello")
	if !strings.Contains(buf.String(), "component=ingest") {
		t.Errorf("Expected component attribute, got %q", buf.String())
	}
}

func TestSetupInstallsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l := Setup(&buf, "debug", "text")
	slog.Debug("from default")

	if l != slog.Default() {
		t.Error("Setup should install the returned logger as default")
	}
	if !strings.Contains(buf.String(), "from default") {
		t.Errorf("Expected debug output, got %q", buf.String())
	}
}
