package staging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"clipforge/internal/logging"
)

func TestCleanStaleRemovesOldEntries(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "upload-old.mp4")
	if err := os.WriteFile(stale, []byte("x"), 0o644); err != nil {
		t.Fatalf("write stale file: %v", err)
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("age stale file: %v", err)
	}

	staleDir := filepath.Join(dir, "whisper-old")
	if err := os.MkdirAll(staleDir, 0o755); err != nil {
		t.Fatalf("make stale dir: %v", err)
	}
	if err := os.Chtimes(staleDir, old, old); err != nil {
		t.Fatalf("age stale dir: %v", err)
	}

	fresh := filepath.Join(dir, "processed_video.mp4")
	if err := os.WriteFile(fresh, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fresh file: %v", err)
	}

	result := CleanStale(dir, 24*time.Hour, logging.NewNop())
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}
	if len(result.Removed) != 2 {
		t.Fatalf("removed = %v, want 2 entries", result.Removed)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("fresh file removed: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatal("stale file survived cleanup")
	}
}

func TestCleanStaleMissingDirIsQuiet(t *testing.T) {
	result := CleanStale(filepath.Join(t.TempDir(), "absent"), time.Hour, nil)
	if len(result.Removed) != 0 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCleanStaleEmptyDirConfig(t *testing.T) {
	result := CleanStale("   ", time.Hour, nil)
	if len(result.Removed) != 0 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
