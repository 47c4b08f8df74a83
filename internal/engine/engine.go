// Package engine provides the core orchestration of a datebucket run.
//
// The engine sits between the CLI and the lower-level packages. It validates
// the run options, prepares the destination, asks the planner for a
// RelocationPlan and then executes that plan by copying or moving every file.
//
// Key components:
//   - Engine: main orchestrator called by the CLI
//   - Run: validate, plan and execute in one call
//   - execute: the concurrent, fail-fast executor
package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/danieljhkim/datebucket/internal/clock"
	"github.com/danieljhkim/datebucket/internal/config"
	"github.com/danieljhkim/datebucket/internal/fsops"
	"github.com/danieljhkim/datebucket/internal/planner"
)

// Engine orchestrates relocation runs.
// It is the main API surface called by the CLI.
type Engine struct {
	fs     fsops.FS
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new Engine with the given dependencies.
// A nil logger discards all log output.
func New(fs fsops.FS, clk clock.Clock, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		fs:     fs,
		clock:  clk,
		logger: logger,
	}
}

// relocate applies a single planned pair.
func (e *Engine) relocate(r planner.Relocation, mode config.Mode) error {
	var err error
	switch mode {
	case config.ModeMove:
		err = e.fs.Rename(r.Source, r.Dest)
	case config.ModeCopy:
		err = e.fs.Copy(r.Source, r.Dest)
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
	if err != nil {
		return fmt.Errorf("%w: %s -> %s: %w", ErrRelocation, r.Source, r.Dest, err)
	}
	return nil
}
