package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/danieljhkim/datebucket/internal/config"
	"github.com/danieljhkim/datebucket/internal/planner"
)

// Run relocates every file directly inside opts.Source into
// opts.Dest/<YYYY-MM-DD>/.
//
// Algorithm steps:
// 1. Validate options
// 2. Check the source directory exists (before any side effect)
// 3. Create the destination root
// 4. Build the relocation plan (creates bucket directories)
// 5. Execute the plan (copy or move)
// 6. Return result
//
// Failures are not rolled back. When an error is returned together with a
// non-nil result, the result reports the buckets and relocations that were
// already applied.
func (e *Engine) Run(ctx context.Context, opts *config.Options) (*RunResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &RunResult{
		Mode:      opts.Mode,
		Source:    opts.Source,
		Dest:      opts.Dest,
		Buckets:   []string{},
		Applied:   []planner.Relocation{},
		StartedAt: e.clock.Now(),
	}
	finish := func(err error) (*RunResult, error) {
		result.FinishedAt = e.clock.Now()
		return result, err
	}

	if err := e.checkSource(opts.Source); err != nil {
		return nil, err
	}

	if err := opts.EnsureDestination(e.fs); err != nil {
		return nil, fmt.Errorf("%w: %w", planner.ErrDirectoryCreation, err)
	}

	e.logger.Debug("planning relocations",
		slog.String("source", opts.Source),
		slog.String("dest", opts.Dest),
		slog.Int("workers", opts.Workers))

	plan, buckets, err := planner.BuildRelocationPlan(ctx, e.fs, planner.PlanRequest{
		SourceDir: opts.Source,
		DestRoot:  opts.Dest,
		Workers:   opts.Workers,
	})
	if buckets != nil {
		result.Buckets = buckets.Dates()
	}
	if err != nil {
		e.logger.Error("planning failed", slog.String("error", err.Error()))
		return finish(fmt.Errorf("failed to build relocation plan: %w", err))
	}
	result.Plan = plan

	e.logger.Info("plan ready",
		slog.Int("files", plan.Len()),
		slog.Int("buckets", len(plan.Buckets)),
		slog.Int("skipped", len(plan.Skipped)))

	applied, err := e.execute(ctx, plan, opts.Mode, opts.Workers)
	result.Applied = applied
	if err != nil {
		e.logger.Error("execution aborted",
			slog.Int("applied", len(applied)),
			slog.Int("planned", plan.Len()),
			slog.String("error", err.Error()))
		return finish(fmt.Errorf("failed to execute relocation plan: %w", err))
	}

	e.logger.Info("run complete",
		slog.String("mode", string(opts.Mode)),
		slog.Int("relocated", len(applied)))

	return finish(nil)
}

// checkSource verifies the source path exists and is a directory.
func (e *Engine) checkSource(path string) error {
	info, err := e.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrInvalidSource, path)
		}
		return fmt.Errorf("%w: %s: %w", ErrInvalidSource, path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidSource, path)
	}
	return nil
}
