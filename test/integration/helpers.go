package integration

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/danieljhkim/datebucket/internal/clock"
	"github.com/danieljhkim/datebucket/internal/engine"
	"github.com/danieljhkim/datebucket/internal/fsops"
)

// testFS is an in-memory filesystem for end-to-end runs.
// Copy and Rename fail unless the destination's parent directory exists, so
// the bucket-before-file ordering is enforced by the filesystem itself.
type testFS struct {
	mu sync.Mutex

	files    map[string][]byte
	modTimes map[string]time.Time
	dirs     map[string]bool

	mkdirCalls map[string]int
}

func newTestFS() *testFS {
	return &testFS{
		files:      make(map[string][]byte),
		modTimes:   make(map[string]time.Time),
		dirs:       make(map[string]bool),
		mkdirCalls: make(map[string]int),
	}
}

func (tfs *testFS) addDir(path string, modTime time.Time) {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	tfs.dirs[path] = true
	tfs.modTimes[path] = modTime
}

func (tfs *testFS) addFile(path, content string, modTime time.Time) {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	tfs.files[path] = []byte(content)
	tfs.modTimes[path] = modTime
}

func (tfs *testFS) content(path string) (string, bool) {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	data, ok := tfs.files[path]
	return string(data), ok
}

func (tfs *testFS) mkdirCount(path string) int {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	return tfs.mkdirCalls[path]
}

// children returns the sorted names directly inside dir
func (tfs *testFS) children(dir string) []string {
	var names []string
	for p := range tfs.files {
		if filepath.Dir(p) == dir {
			names = append(names, filepath.Base(p))
		}
	}
	for p := range tfs.dirs {
		if p != dir && filepath.Dir(p) == dir {
			names = append(names, filepath.Base(p))
		}
	}
	sort.Strings(names)
	return names
}

func (tfs *testFS) list(dir string) []string {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	return tfs.children(dir)
}

func (tfs *testFS) ReadDir(path string) ([]os.DirEntry, error) {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()

	if !tfs.dirs[path] {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	var entries []os.DirEntry
	for _, name := range tfs.children(path) {
		entries = append(entries, fs.FileInfoToDirEntry(tfs.info(filepath.Join(path, name))))
	}
	return entries, nil
}

func (tfs *testFS) info(path string) *testFileInfo {
	if data, ok := tfs.files[path]; ok {
		return &testFileInfo{name: filepath.Base(path), size: int64(len(data)), modTime: tfs.modTimes[path]}
	}
	if tfs.dirs[path] {
		return &testFileInfo{name: filepath.Base(path), modTime: tfs.modTimes[path], isDir: true}
	}
	return nil
}

func (tfs *testFS) Stat(path string) (os.FileInfo, error) {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	if info := tfs.info(path); info != nil {
		return info, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

func (tfs *testFS) Lstat(path string) (os.FileInfo, error) {
	return tfs.Stat(path)
}

func (tfs *testFS) MkdirAll(path string, perm os.FileMode) error {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	tfs.mkdirCalls[path]++
	if _, isFile := tfs.files[path]; isFile {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}
	for p := path; ; p = filepath.Dir(p) {
		tfs.dirs[p] = true
		if filepath.Dir(p) == p {
			break
		}
	}
	return nil
}

func (tfs *testFS) place(src, dst string) error {
	data, ok := tfs.files[src]
	if !ok {
		return &fs.PathError{Op: "open", Path: src, Err: fs.ErrNotExist}
	}
	if !tfs.dirs[filepath.Dir(dst)] {
		return &fs.PathError{Op: "open", Path: dst, Err: fs.ErrNotExist}
	}
	if tfs.info(dst) != nil {
		return fmt.Errorf("%w: %s", fsops.ErrDestinationExists, dst)
	}
	tfs.files[dst] = append([]byte(nil), data...)
	tfs.modTimes[dst] = tfs.modTimes[src]
	return nil
}

func (tfs *testFS) Copy(src, dst string) error {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	return tfs.place(src, dst)
}

func (tfs *testFS) Rename(src, dst string) error {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	if err := tfs.place(src, dst); err != nil {
		return err
	}
	delete(tfs.files, src)
	delete(tfs.modTimes, src)
	return nil
}

func (tfs *testFS) Exists(path string) (bool, error) {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	return tfs.info(path) != nil, nil
}

// testFileInfo implements os.FileInfo
type testFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
}

func (i *testFileInfo) Name() string       { return i.name }
func (i *testFileInfo) Size() int64        { return i.size }
func (i *testFileInfo) ModTime() time.Time { return i.modTime }
func (i *testFileInfo) IsDir() bool        { return i.isDir }
func (i *testFileInfo) Sys() interface{}   { return nil }
func (i *testFileInfo) Mode() os.FileMode {
	if i.isDir {
		return os.ModeDir | 0755
	}
	return 0644
}

func setupTestEngine(t *testing.T) (*engine.Engine, *testFS) {
	t.Helper()
	tfs := newTestFS()
	tfs.addDir("/src", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	clk := clock.NewFakeClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), time.Millisecond)
	return engine.New(tfs, clk, nil), tfs
}
