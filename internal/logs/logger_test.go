package logs

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelWarn, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestTerminalAndFile(t *testing.T) {
	if isSystemdService() {
		t.Skip("running under a systemd service")
	}
	var term bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "postfix.log")
	logger, closer, err := New(Options{Level: "warn", File: logFile, Writer: &term})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithFile(context.Background(), "src/main.rs")
	logger.InfoContext(ctx, "cache miss")
	logger.WarnContext(ctx, "rewrite failed", "code", "REW7002")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	out := term.String()
	if strings.Contains(out, "cache miss") {
		t.Errorf("info record passed warn level:\n%s", out)
	}
	if !strings.Contains(out, "rewrite failed") || !strings.Contains(out, "file=src/main.rs") {
		t.Errorf("terminal output:\n%s", out)
	}

	// файл пишет всё, начиная с debug
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("log file has %d lines:\n%s", len(lines), data)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["code"] != "REW7002" || rec["file"] != "src/main.rs" {
		t.Errorf("file record = %v", rec)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "chatty"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("logs.file-name"); got != "LOGS_FILE_NAME" {
		t.Errorf("toJournalKey = %q", got)
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("dropped")
}
