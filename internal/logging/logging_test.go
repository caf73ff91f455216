package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/abhisek/leerkit/internal/config"
)

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewLogger_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LogConfig{Level: "warn"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", zap.String("step", "quiz"))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown") || !strings.Contains(out, `"step": "quiz"`) {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestNewLogger_FileIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leerkit.log")
	var console bytes.Buffer
	logger, err := newLogger(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1}, &console)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("persisted", zap.Int("attempt", 2))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &line); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, data)
	}
	if line["msg"] != "persisted" || line["level"] != "INFO" || line["attempt"] != float64(2) {
		t.Errorf("unexpected log line %v", line)
	}
	if console.Len() == 0 {
		t.Error("console core should also receive the line")
	}
}
