package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_JSONOutputAndLevel(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf, Service: "shop-api", Env: "production"})

	log.Info().Msg("dropped")
	log.Warn().Str("order_id", "o1").Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON: %v", err)
	}
	if entry["message"] != "kept" || entry["order_id"] != "o1" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["service"] != "shop-api" || entry["env"] != "production" {
		t.Errorf("missing base fields: %v", entry)
	}
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	l := Get()
	l.Info().Msg("hello")

	if first.Len() == 0 || second.Len() != 0 {
		t.Errorf("expected output only on the first writer")
	}
}

func TestInit_WritesRotatingFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "shop-api.log")
	var buf bytes.Buffer
	Init(Options{Output: &buf, File: path})

	l := Get()
	l.Info().Msg("to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("file missing entry: %q", data)
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"DEBUG":    zerolog.DebugLevel,
		" warn ":   zerolog.WarnLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"fatal":    zerolog.FatalLevel,
		"disabled": zerolog.Disabled,
		"":         zerolog.InfoLevel,
		"bogus":    zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRotatingFile_Defaults(t *testing.T) {
	lj := rotatingFile("app.log", Rotation{MaxBackups: 2})

	if lj.MaxSize != defaultRotation.MaxSizeMB || lj.MaxAge != defaultRotation.MaxAgeDays {
		t.Errorf("expected default size and age, got %d MB / %d days", lj.MaxSize, lj.MaxAge)
	}
	if lj.MaxBackups != 2 {
		t.Errorf("explicit backups overridden: %d", lj.MaxBackups)
	}
	if !lj.Compress {
		t.Error("expected compressed backups")
	}
}
