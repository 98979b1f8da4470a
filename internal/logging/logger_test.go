package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetBeforeInitializeIsNoop(t *testing.T) {
	mu.Lock()
	root = nil
	mu.Unlock()

	log := Get(CategoryBoot)
	if log == nil {
		t.Fatal("Get returned nil logger")
	}
	// Must not panic.
	log.Debugf("discarded %d", 1)
}

func TestInitializeRejectsBadLevel(t *testing.T) {
	if err := Initialize("loud", ""); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestInitializeWritesToFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "logging_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	logFile := filepath.Join(tempDir, "zettel.log")
	if err := Initialize("debug", logFile); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	Get(CategoryGraph).Infof("stored %d links", 3)
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "graph") {
		t.Errorf("Expected category name in log output, got: %s", data)
	}
	if !strings.Contains(string(data), "stored 3 links") {
		t.Errorf("Expected message in log output, got: %s", data)
	}
}
