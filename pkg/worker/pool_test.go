package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_Run_ProcessesEveryJob(t *testing.T) {
	pool := NewPool[int](4)

	var mu sync.Mutex
	seen := make(map[int]bool)

	jobs := []int{1, 2, 3, 4, 5, 6, 7, 8}
	results := pool.Run(context.Background(), jobs, func(ctx context.Context, job int) error {
		mu.Lock()
		seen[job] = true
		mu.Unlock()
		return nil
	})

	if len(results) != len(jobs) {
		t.Fatalf("Expected %d results, got %d", len(jobs), len(results))
	}
	for _, job := range jobs {
		if !seen[job] {
			t.Errorf("Job %d was never processed", job)
		}
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("Job %d: unexpected error: %v", res.Job, res.Err)
		}
	}
}

func TestPool_Run_ReportsPerJobErrors(t *testing.T) {
	pool := NewPool[string](2)
	boom := errors.New("boom")

	results := pool.Run(context.Background(), []string{"good", "bad", "good"}, func(ctx context.Context, job string) error {
		if job == "bad" {
			return boom
		}
		return nil
	})

	failures := 0
	for _, res := range results {
		if res.Err != nil {
			failures++
			if res.Job != "bad" {
				t.Errorf("Unexpected failing job: %s", res.Job)
			}
			if !errors.Is(res.Err, boom) {
				t.Errorf("Expected boom error, got %v", res.Err)
			}
		}
	}
	if failures != 1 {
		t.Fatalf("Expected 1 failure, got %d", failures)
	}
}

func TestPool_Run_BoundsConcurrency(t *testing.T) {
	const workers = 3
	pool := NewPool[int](workers)

	var active, peak int64
	jobs := make([]int, 20)

	pool.Run(context.Background(), jobs, func(ctx context.Context, job int) error {
		now := atomic.AddInt64(&active, 1)
		for {
			old := atomic.LoadInt64(&peak)
			if now <= old || atomic.CompareAndSwapInt64(&peak, old, now) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&active, -1)
		return nil
	})

	if got := atomic.LoadInt64(&peak); got > workers {
		t.Fatalf("Expected at most %d concurrent jobs, saw %d", workers, got)
	}
}

func TestPool_Run_CancelledContext(t *testing.T) {
	pool := NewPool[int](1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := pool.Run(ctx, []int{1, 2, 3}, func(ctx context.Context, job int) error {
		t.Errorf("Job %d should not run after cancellation", job)
		return nil
	})

	if len(results) != 3 {
		t.Fatalf("Expected a result per job, got %d", len(results))
	}
	for _, res := range results {
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("Job %d: expected context.Canceled, got %v", res.Job, res.Err)
		}
	}
}

func TestNewPool_RaisesZeroWorkerCount(t *testing.T) {
	pool := NewPool[int](0)

	results := pool.Run(context.Background(), []int{1}, func(ctx context.Context, job int) error {
		return nil
	})
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("Expected the single job to run, got %+v", results)
	}
}
