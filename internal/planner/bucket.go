package planner

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/danieljhkim/datebucket/internal/fsops"
)

// BucketSet tracks the date buckets realized during one run.
// It is safe for concurrent use. Each distinct date triggers exactly one
// MkdirAll call; callers racing on the same date block until that call has
// returned and all observe its result.
type BucketSet struct {
	fs   fsops.FS
	root string

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	once sync.Once
	dir  string
	err  error
}

// NewBucketSet creates an empty BucketSet rooted at root.
func NewBucketSet(fs fsops.FS, root string) *BucketSet {
	return &BucketSet{
		fs:      fs,
		root:    root,
		buckets: make(map[string]*bucket),
	}
}

// Ensure makes sure the directory for date exists and returns its path.
func (s *BucketSet) Ensure(date string) (string, error) {
	s.mu.Lock()
	b, ok := s.buckets[date]
	if !ok {
		b = &bucket{dir: filepath.Join(s.root, date)}
		s.buckets[date] = b
	}
	s.mu.Unlock()

	b.once.Do(func() {
		// MkdirAll tolerates buckets left behind by an earlier run
		if err := s.fs.MkdirAll(b.dir, 0755); err != nil {
			b.err = fmt.Errorf("%w: %s: %w", ErrDirectoryCreation, b.dir, err)
		}
	})

	return b.dir, b.err
}

// Dates returns the dates seen so far, sorted.
func (s *BucketSet) Dates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	dates := make([]string, 0, len(s.buckets))
	for date := range s.buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Len returns the number of distinct dates seen.
func (s *BucketSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}
