package core

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Schedule runs every job in groups under a bounded concurrency limit
// of maxParallel, aggregating JobResults as tasks finish (spec.md
// §4.8). Groups are run independently and in parallel; jobs within a
// group run sequentially (today every group is a singleton, per the
// Open Question decision in DESIGN.md). Grounded on the handleui-detent
// pack repo's errgroup+semaphore concurrency pattern (see DESIGN.md):
// ofelia's own scheduler was cron-trigger-driven and had no bounded
// fan-out concept to adapt.
func Schedule(ctx context.Context, rt *Runtime, groups [][]Job, maxParallel int) []JobResult {
	sem := semaphore.NewWeighted(int64(maxParallel))
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var results []JobResult

	for _, group := range groups {
		group := group
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			for _, job := range group {
				result := rt.RunJob(gctx, job)
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
