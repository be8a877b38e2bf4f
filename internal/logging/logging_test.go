package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithoutPathIsNop(t *testing.T) {
	log, err := New(Config{Level: "debug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("expected a no-op logger")
	}
}

func TestNewWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wavescape.log")
	log, err := New(Config{Level: "info", OutputPath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Debug("hidden")
	log.Info("track loaded", zap.String("name", "tone.wav"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line at info level, got %d: %q", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON, got %q: %v", lines[0], err)
	}
	if entry["msg"] != "track loaded" || entry["name"] != "tone.wav" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"":      zapcore.InfoLevel,
		"WARN":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := New(Config{Level: "verbose", OutputPath: filepath.Join(t.TempDir(), "x.log")}); err == nil {
		t.Fatal("expected New to reject an unknown level")
	}
}
