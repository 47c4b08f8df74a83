package engine

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/danieljhkim/datebucket/internal/config"
	"github.com/danieljhkim/datebucket/internal/planner"
)

// execute applies every relocation of plan with at most workers running at
// once. The first failure cancels the remaining work; relocations that
// already completed are returned alongside the error.
func (e *Engine) execute(ctx context.Context, plan *planner.RelocationPlan, mode config.Mode, workers int) ([]planner.Relocation, error) {
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	applied := make([]planner.Relocation, 0, plan.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, r := range plan.Relocations {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := e.relocate(r, mode); err != nil {
				return err
			}

			mu.Lock()
			applied = append(applied, r)
			mu.Unlock()

			e.logger.Debug("relocated",
				slog.String("mode", string(mode)),
				slog.String("source", r.Source),
				slog.String("dest", r.Dest))
			return nil
		})
	}

	err := g.Wait()

	sort.Slice(applied, func(i, j int) bool {
		return applied[i].Source < applied[j].Source
	})
	return applied, err
}
