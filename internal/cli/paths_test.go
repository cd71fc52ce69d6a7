package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestHistoryDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	os.Unsetenv("XDG_DATA_HOME")

	dir, err := historyDir()
	if err != nil {
		t.Fatalf("historyDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, filepath.Join(home, ".local", "share", appName)) {
		t.Errorf("historyDir() = %q, should be under ~/.local/share/%s", dir, appName)
	}
}

func TestHistoryDirXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/custom-data")

	dir, err := historyDir()
	if err != nil {
		t.Fatalf("historyDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-data", appName, "results")
	if dir != expected {
		t.Errorf("historyDir() with XDG_DATA_HOME = %q, want %q", dir, expected)
	}
}
