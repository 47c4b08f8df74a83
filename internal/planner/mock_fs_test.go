package planner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// mockFileInfo is a minimal os.FileInfo for tests
type mockFileInfo struct {
	name    string
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return 0 }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }
func (m *mockFileInfo) Mode() os.FileMode {
	if m.isDir {
		return os.ModeDir | 0755
	}
	return 0644
}

// mockDirEntry is a minimal os.DirEntry for tests
type mockDirEntry struct {
	info *mockFileInfo
}

func (d mockDirEntry) Name() string               { return d.info.name }
func (d mockDirEntry) IsDir() bool                { return d.info.isDir }
func (d mockDirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d mockDirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

// mockFS is an in-memory fsops.FS that counts MkdirAll calls
type mockFS struct {
	mu sync.Mutex

	children   map[string][]string
	infos      map[string]*mockFileInfo
	existing   map[string]bool
	statErr    map[string]error
	mkdirErr   map[string]error
	readDirErr error

	mkdirCalls map[string]int
	mkdirDelay time.Duration
}

func newMockFS() *mockFS {
	return &mockFS{
		children:   make(map[string][]string),
		infos:      make(map[string]*mockFileInfo),
		existing:   make(map[string]bool),
		statErr:    make(map[string]error),
		mkdirErr:   make(map[string]error),
		mkdirCalls: make(map[string]int),
	}
}

func (m *mockFS) addFile(dir, name string, modTime time.Time) {
	m.add(dir, name, modTime, false)
}

func (m *mockFS) addDir(dir, name string, modTime time.Time) {
	m.add(dir, name, modTime, true)
}

func (m *mockFS) add(dir, name string, modTime time.Time, isDir bool) {
	m.children[dir] = append(m.children[dir], name)
	m.infos[filepath.Join(dir, name)] = &mockFileInfo{name: name, modTime: modTime, isDir: isDir}
}

func (m *mockFS) setExists(path string) {
	m.existing[path] = true
}

func (m *mockFS) calls(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mkdirCalls[path]
}

func (m *mockFS) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.mkdirCalls {
		total += n
	}
	return total
}

func (m *mockFS) ReadDir(path string) ([]os.DirEntry, error) {
	if m.readDirErr != nil {
		return nil, m.readDirErr
	}
	names, ok := m.children[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	entries := make([]os.DirEntry, 0, len(sorted))
	for _, name := range sorted {
		entries = append(entries, mockDirEntry{info: m.infos[filepath.Join(path, name)]})
	}
	return entries, nil
}

func (m *mockFS) Stat(path string) (os.FileInfo, error) {
	if err, ok := m.statErr[path]; ok {
		return nil, err
	}
	if info, ok := m.infos[path]; ok {
		return info, nil
	}
	return nil, os.ErrNotExist
}

func (m *mockFS) Lstat(path string) (os.FileInfo, error) {
	return m.Stat(path)
}

func (m *mockFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	m.mkdirCalls[path]++
	err := m.mkdirErr[path]
	m.mu.Unlock()

	if m.mkdirDelay > 0 {
		time.Sleep(m.mkdirDelay)
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.existing[path] = true
	m.mu.Unlock()
	return nil
}

func (m *mockFS) Copy(src, dst string) error {
	return errors.New("not implemented")
}

func (m *mockFS) Rename(src, dst string) error {
	return errors.New("not implemented")
}

func (m *mockFS) Exists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existing[path] {
		return true, nil
	}
	_, ok := m.infos[path]
	return ok, nil
}
