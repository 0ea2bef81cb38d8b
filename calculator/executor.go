package calculator

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// task is a half-open range [start, end) of q indices.
type task struct {
	start int
	end   int
}

// executor splits a q range into contiguous tasks and runs them on a bounded
// pool. Every task writes into its own window of the output, so workers
// never share mutable state.
type executor struct {
	workers  int
	minChunk int
}

func newExecutor(workers, minChunk int) *executor {
	if workers < 1 {
		workers = 1
	}
	if minChunk < 1 {
		minChunk = 1
	}
	return &executor{workers: workers, minChunk: minChunk}
}

// split cuts [0, total) into about two tasks per worker, none shorter than
// minChunk unless total itself is. The first total%n tasks take one extra
// point.
func (e *executor) split(total int) []task {
	if total <= 0 {
		return nil
	}
	n := e.workers * 2
	if most := total / e.minChunk; most < n {
		n = most
	}
	if n < 1 {
		n = 1
	}

	taskLen, remainder := total/n, total%n
	tasks := make([]task, 0, n)
	start := 0
	for i := 0; i < n; i++ {
		end := start + taskLen
		if i < remainder {
			end++
		}
		tasks = append(tasks, task{start: start, end: end})
		start = end
	}
	return tasks
}

// dispatch runs f over every task of [0, total) and waits. It stops handing
// out tasks once ctx is done.
func (e *executor) dispatch(ctx context.Context, total int, f func(t task)) (int, time.Duration, error) {
	start := time.Now()
	tasks := e.split(total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, t := range tasks {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			f(t)
			return nil
		})
	}
	err := g.Wait()
	return len(tasks), time.Since(start), err
}
