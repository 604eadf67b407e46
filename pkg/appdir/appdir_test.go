package appdir

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func reset() {
	appDirCache = ""
	appDirOnce = sync.Once{}
}

func TestAppDirFromEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")
	t.Setenv(EnvHome, dir)
	reset()
	t.Cleanup(reset)

	if got := AppDir(); got != dir {
		t.Fatalf("Expected %s, got %s", dir, got)
	}
	if got := Path("journal.db"); got != filepath.Join(dir, "journal.db") {
		t.Errorf("Unexpected path %s", got)
	}
	if _, err := Ensure(); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("Expected directory %s to exist", dir)
	}
}
