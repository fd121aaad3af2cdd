// Package worker runs independent jobs across a bounded set of goroutines.
// Feeds and episodes are processed independently of each other, so the pool
// imposes no ordering, it only caps concurrency and reports per-job
// outcomes.
package worker

import (
	"context"
	"sync"
)

// Result pairs one job with its outcome
type Result[T any] struct {
	Job      T
	WorkerId int
	Err      error
}

// Pool distributes jobs of one kind across a fixed number of workers
type Pool[T any] struct {
	workerCount int
}

// NewPool creates a pool with the given worker count. Counts below one are
// raised to one.
func NewPool[T any](workerCount int) *Pool[T] {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Pool[T]{
		workerCount: workerCount,
	}
}

// Run feeds every job through process on the pool's workers and returns one
// result per job in completion order. Jobs pulled after the context is done
// fail with the context's error instead of being processed.
func (p *Pool[T]) Run(ctx context.Context, jobs []T, process func(ctx context.Context, job T) error) []Result[T] {
	jobChan := make(chan T, len(jobs))
	for _, job := range jobs {
		jobChan <- job
	}
	close(jobChan)

	var wg sync.WaitGroup
	resultsChan := make(chan Result[T], len(jobs))

	for i := 0; i < p.workerCount; i++ {
		wg.Add(1)
		go func(workerId int) {
			defer wg.Done()

			for job := range jobChan {
				select {
				case <-ctx.Done():
					resultsChan <- Result[T]{Job: job, WorkerId: workerId, Err: ctx.Err()}
					continue
				default:
				}

				resultsChan <- Result[T]{
					Job:      job,
					WorkerId: workerId,
					Err:      process(ctx, job),
				}
			}
		}(i)
	}

	// Close results channel when all workers finish
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	results := make([]Result[T], 0, len(jobs))
	for res := range resultsChan {
		results = append(results, res)
	}

	return results
}
