package engine

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/danieljhkim/datebucket/internal/clock"
	"github.com/danieljhkim/datebucket/internal/fsops"
)

var (
	march1 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	march2 = time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
)

// writeFile creates dir/name with content and sets its modification time
func writeFile(t *testing.T, dir, name, content string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("failed to set mtime on %s: %v", path, err)
	}
	return path
}

// readFile returns the content of path or fails the test
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// listDir returns the sorted entry names of dir
func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to list %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func newTestEngine(fs fsops.FS) *Engine {
	return New(fs, clock.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Second), nil)
}

// failingFS wraps RealFS and fails relocation of selected sources
type failingFS struct {
	*fsops.RealFS
	failOn map[string]bool
}

func newFailingFS(sources ...string) *failingFS {
	f := &failingFS{RealFS: fsops.NewRealFS(), failOn: make(map[string]bool)}
	for _, s := range sources {
		f.failOn[s] = true
	}
	return f
}

var errDiskFull = errors.New("no space left on device")

func (f *failingFS) Copy(src, dst string) error {
	if f.failOn[src] {
		return errDiskFull
	}
	return f.RealFS.Copy(src, dst)
}

func (f *failingFS) Rename(src, dst string) error {
	if f.failOn[src] {
		return errDiskFull
	}
	return f.RealFS.Rename(src, dst)
}
