package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("text handler hides debug by default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, Options{})
		l.Debug("hidden")
		l.Info("shown", "k", "v")
		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("debug record leaked: %q", out)
		}
		if !strings.Contains(out, "k=v") {
			t.Errorf("expected text attrs, got %q", out)
		}
	})

	t.Run("verbose json handler", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, Options{Verbose: true, JSON: true, Level: "error"})
		l.Debug("visible", "reason", "analyzer_error")
		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
		}
		if rec["reason"] != "analyzer_error" {
			t.Errorf("reason = %v", rec["reason"])
		}
	})
}

func TestInitLogsAndLogJSON(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "traces")
	if err := InitLogs(dir); err != nil {
		t.Fatalf("InitLogs() error = %v", err)
	}
	if err := LogJSON(dir, "../escape/line-1", map[string]int{"n": 1}); err != nil {
		t.Fatalf("LogJSON() error = %v", err)
	}

	path := filepath.Join(dir, "line-1.json")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected trace file: %v", err)
	}
	if !strings.Contains(string(b), `"n": 1`) {
		t.Errorf("unexpected content %q", b)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	unrelated := filepath.Join(dir, "package.json")
	if err := os.WriteFile(unrelated, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := InitLogs(dir); err != nil {
		t.Fatalf("InitLogs() error = %v", err)
	}
	for _, keep := range []string{path, unrelated} {
		if _, err := os.Stat(keep); err != nil {
			t.Errorf("InitLogs removed %s: %v", filepath.Base(keep), err)
		}
	}
}
