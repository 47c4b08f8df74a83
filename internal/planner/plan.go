package planner

import (
	"path/filepath"
	"sort"
	"time"
)

// DateLayout is the bucket directory name format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// BucketDate returns the bucket name for a modification time.
// Dates are always resolved in UTC so bucket boundaries do not depend on the
// machine's time zone.
func BucketDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Entry is one item observed directly inside the source directory.
type Entry struct {
	// Path is the full path of the entry
	Path string

	// Name is the base name of the entry
	Name string

	// ModTime is the last modification time reported by stat
	ModTime time.Time

	// IsDir is true for directories (and symlinks to directories)
	IsDir bool
}

// Date returns the bucket date of the entry.
func (e Entry) Date() string {
	return BucketDate(e.ModTime)
}

// Relocation is a single planned (source, destination) pair.
type Relocation struct {
	// Source is the path of the file inside the source directory
	Source string `json:"source"`

	// Dest is the path of the file inside its bucket directory
	Dest string `json:"dest"`

	// Date is the bucket the file belongs to
	Date string `json:"date"`
}

// RelocationPlan is the full set of relocations computed before any file is
// copied or moved.
type RelocationPlan struct {
	// SourceDir is the scanned directory
	SourceDir string `json:"source_dir"`

	// DestRoot is the directory holding the date buckets
	DestRoot string `json:"dest_root"`

	// Relocations is the list of pairs, sorted by source path
	Relocations []Relocation `json:"relocations"`

	// Buckets lists the distinct dates of the plan, sorted
	Buckets []string `json:"buckets"`

	// Skipped lists directory entries that were not relocated
	Skipped []string `json:"skipped,omitempty"`
}

// NewRelocationPlan creates a new empty RelocationPlan.
func NewRelocationPlan(sourceDir, destRoot string) *RelocationPlan {
	return &RelocationPlan{
		SourceDir:   sourceDir,
		DestRoot:    destRoot,
		Relocations: []Relocation{},
		Buckets:     []string{},
	}
}

// AddRelocation adds a relocation to the plan.
func (p *RelocationPlan) AddRelocation(r Relocation) {
	p.Relocations = append(p.Relocations, r)
}

// AddSkipped records a directory entry that was left in place.
func (p *RelocationPlan) AddSkipped(path string) {
	p.Skipped = append(p.Skipped, path)
}

// Len returns the number of planned relocations.
func (p *RelocationPlan) Len() int {
	return len(p.Relocations)
}

// BucketDir returns the destination directory for a date.
func (p *RelocationPlan) BucketDir(date string) string {
	return filepath.Join(p.DestRoot, date)
}

func (p *RelocationPlan) sort() {
	sort.Slice(p.Relocations, func(i, j int) bool {
		return p.Relocations[i].Source < p.Relocations[j].Source
	})
	sort.Strings(p.Skipped)
}
