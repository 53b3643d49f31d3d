package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "fb.log")
	var console bytes.Buffer

	logger, err := New(Options{Level: "debug", File: file, Console: &console})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Named("question-editor").Debug("slug checked", zap.String("slug", "color"))
	_ = logger.Sync()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", data, err)
	}
	if entry["msg"] != "slug checked" || entry["slug"] != "color" || entry["logger"] != "question-editor" {
		t.Errorf("unexpected entry %v", entry)
	}

	if console.Len() != 0 {
		t.Errorf("expected debug entries to stay off the console, got %q", console.String())
	}
}

func TestNew_ConsoleReceivesWarnings(t *testing.T) {
	var console bytes.Buffer

	logger, err := New(Options{Console: &console})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("quiet")
	logger.Warn("slug check failed")
	_ = logger.Sync()

	out := console.String()
	if strings.Contains(out, "quiet") {
		t.Error("expected info entries to stay off the console")
	}
	if !strings.Contains(out, "slug check failed") {
		t.Errorf("expected warning on the console, got %q", out)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for invalid level")
	}
}
