package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestSetup_WritesToFile(t *testing.T) {
	dir := t.TempDir()

	release, err := Setup(dir, false)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	log.Info().Str("phase", "test").Msg("hello from the run log")

	if err := release(); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read log directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 log file, got %d", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "run_") {
		t.Errorf("unexpected log file name: %s", entries[0].Name())
	}

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from the run log") {
		t.Errorf("log message missing from file: %s", data)
	}
}

func TestSetup_DebugStaysOnConsole(t *testing.T) {
	dir := t.TempDir()

	release, err := Setup(dir, true)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer release()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read log directory: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no log files in debug mode, got %d", len(entries))
	}
}

func TestSetup_InvalidDirectory(t *testing.T) {
	if _, err := Setup("/proc/cannot/create", false); err == nil {
		t.Error("expected error for invalid log directory")
	}
}
