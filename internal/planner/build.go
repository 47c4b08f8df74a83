package planner

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/danieljhkim/datebucket/internal/fsops"
)

// PlanRequest describes what to plan.
type PlanRequest struct {
	// SourceDir is the directory whose immediate entries are relocated
	SourceDir string

	// DestRoot is the directory that receives the date buckets (must exist)
	DestRoot string

	// Workers bounds how many entries are processed concurrently (1 = sequential)
	Workers int
}

// BuildRelocationPlan scans req.SourceDir and returns the plan.
//
// Bucket directories are created under req.DestRoot while planning. Any error
// aborts the whole plan; buckets created before the error stay on disk.
func BuildRelocationPlan(ctx context.Context, fs fsops.FS, req PlanRequest) (*RelocationPlan, *BucketSet, error) {
	entries, err := fs.ReadDir(req.SourceDir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, req.SourceDir, err)
	}

	plan := NewRelocationPlan(req.SourceDir, req.DestRoot)
	buckets := NewBucketSet(fs, req.DestRoot)
	checker := NewCollisionChecker(fs)

	// One slot per entry so workers never share an append target
	slots := make([]*Relocation, len(entries))
	skipped := make([]bool, len(entries))

	workers := req.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, dirEntry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			entry, err := observe(fs, req.SourceDir, dirEntry.Name())
			if err != nil {
				return err
			}
			if entry.IsDir {
				skipped[i] = true
				return nil
			}

			date := entry.Date()
			destPath := filepath.Join(plan.BucketDir(date), entry.Name)

			if err := checker.Claim(destPath, entry.Path); err != nil {
				return err
			}

			if _, err := buckets.Ensure(date); err != nil {
				return err
			}

			slots[i] = &Relocation{
				Source: entry.Path,
				Dest:   destPath,
				Date:   date,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, buckets, err
	}

	for i, r := range slots {
		switch {
		case r != nil:
			plan.AddRelocation(*r)
		case skipped[i]:
			plan.AddSkipped(filepath.Join(req.SourceDir, entries[i].Name()))
		}
	}
	plan.Buckets = buckets.Dates()
	plan.sort()

	return plan, buckets, nil
}

// observe stats a single entry, following symlinks.
func observe(fs fsops.FS, dir, name string) (Entry, error) {
	path := filepath.Join(dir, name)
	info, err := fs.Stat(path)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %s: %w", ErrMetadataUnavailable, path, err)
	}
	return Entry{
		Path:    path,
		Name:    name,
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}, nil
}
