package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersAreNilSafe(t *testing.T) {
	Set(nil)
	Debug("ignored", "k", 1)
	Info("ignored")
	Warn("ignored")
	Error("ignored")
}

func TestHelpersWriteKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	defer Set(nil)

	Debug("wire", "line", "clear")
	Warn("dropped", "line", "bogus")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Message != "wire" || entries[0].ContextMap()["line"] != "clear" {
		t.Fatalf("first entry = %+v", entries[0])
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("second level = %v, want warn", entries[1].Level)
	}
}

func TestInitWritesToEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "editor.log")
	t.Setenv("EDITOR_LOG_FILE", path)

	if err := Init("/nonexistent/ignored.log", true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	Debug("hello", "n", 42)
	if err := Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log missing entry:\n%s", data)
	}
}
