package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteMedia drops a small placeholder clip at path for tests that only
// need a readable file behind a media path. Returns the path.
func WriteMedia(t testing.TB, path string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("placeholder clip bytes\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
