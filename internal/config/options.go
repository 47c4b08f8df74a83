// Package config holds the options of a single datebucket run.
//
// Options are built from command-line flags and validated before any
// filesystem work starts. No configuration file or environment variable is
// consulted.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/danieljhkim/datebucket/internal/fsops"
)

// ErrInvalidOptions indicates the run options failed validation.
var ErrInvalidOptions = errors.New("invalid options")

// Mode selects how planned files are relocated.
type Mode string

const (
	// ModeCopy duplicates content and leaves the source in place.
	ModeCopy Mode = "copy"

	// ModeMove renames the file into its bucket.
	ModeMove Mode = "move"
)

// ModeFromFlag maps the --move-files flag to a Mode.
func ModeFromFlag(move bool) Mode {
	if move {
		return ModeMove
	}
	return ModeCopy
}

// DefaultWorkers returns the worker count used when none is given.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// Options contains everything a run needs.
type Options struct {
	// Source is the directory whose files are relocated
	Source string

	// Dest is the root that receives the YYYY-MM-DD buckets
	Dest string

	// Mode is copy or move
	Mode Mode

	// Workers bounds planning and execution concurrency (1 = sequential)
	Workers int
}

// Validate checks the options and cleans both paths in place.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.Source) == "" {
		return fmt.Errorf("%w: source path is empty", ErrInvalidOptions)
	}
	if strings.TrimSpace(o.Dest) == "" {
		return fmt.Errorf("%w: destination path is empty", ErrInvalidOptions)
	}

	switch o.Mode {
	case ModeCopy, ModeMove:
	default:
		return fmt.Errorf("%w: unknown mode %q (expected %q or %q)", ErrInvalidOptions, o.Mode, ModeCopy, ModeMove)
	}

	if o.Workers < 1 {
		return fmt.Errorf("%w: jobs must be at least 1, got %d", ErrInvalidOptions, o.Workers)
	}

	o.Source = filepath.Clean(o.Source)
	o.Dest = filepath.Clean(o.Dest)
	return nil
}

// EnsureDestination creates the destination root and any missing parents.
func (o *Options) EnsureDestination(fs fsops.FS) error {
	if err := fs.MkdirAll(o.Dest, 0755); err != nil {
		return fmt.Errorf("failed to create destination %s: %w", o.Dest, err)
	}
	return nil
}
