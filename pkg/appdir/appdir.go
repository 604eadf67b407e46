package appdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// EnvHome overrides the default application directory.
const EnvHome = "CRYPTICODER_HOME"

var (
	appDirCache string
	appDirOnce  sync.Once
)

// AppDir returns $CRYPTICODER_HOME, or ~/.crypticoder when unset.
func AppDir() string {
	appDirOnce.Do(func() {
		if dir := os.Getenv(EnvHome); dir != "" {
			appDirCache = dir
			return
		}
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		appDirCache = filepath.Join(home, ".crypticoder")
	})
	return appDirCache
}

// Ensure creates the application directory if needed and returns it.
func Ensure() (string, error) {
	dir := AppDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("appdir: failed to create %s: %w", dir, err)
	}
	return dir, nil
}

// Path joins name onto the application directory.
func Path(name string) string {
	return filepath.Join(AppDir(), name)
}
