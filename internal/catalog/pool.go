package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"tour-planner-backend/internal/store"
)

// Fetcher loads the places of one category from an upstream catalog.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, category string) ([]store.PlaceItem, error)
}

// Result is the outcome of fetching one category.
type Result struct {
	Category string
	Items    []store.PlaceItem
	Err      error
}

type job struct {
	index    int
	category string
}

// WorkerPool fetches categories concurrently with a fixed number of workers.
type WorkerPool struct {
	size    int
	fetcher Fetcher
}

// NewWorkerPool creates a new worker pool. A size below 1 is treated as 1.
func NewWorkerPool(size int, fetcher Fetcher) *WorkerPool {
	if size < 1 {
		size = 1
	}
	return &WorkerPool{size: size, fetcher: fetcher}
}

// FetchAll fetches every category and returns one Result per category, in
// the order given. It returns early with ctx.Err() results for categories
// that were not started before ctx was cancelled.
func (wp *WorkerPool) FetchAll(ctx context.Context, categories []string) []Result {
	results := make([]Result, len(categories))
	jobs := make(chan job, wp.size) // Buffered channel

	workers := min(wp.size, len(categories))
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go wp.worker(ctx, i, jobs, results, &wg)
	}

	for i, c := range categories {
		select {
		case jobs <- job{index: i, category: c}:
		case <-ctx.Done():
			results[i] = Result{Category: c, Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

// worker is the actual worker goroutine. Each result slot is written by
// exactly one worker.
func (wp *WorkerPool) worker(ctx context.Context, id int, jobs <-chan job, results []Result, wg *sync.WaitGroup) {
	defer wg.Done()
	for j := range jobs {
		log.Debug().Int("worker", id).Str("source", wp.fetcher.Name()).Str("category", j.category).Msg("fetching category")
		items, err := wp.fetcher.Fetch(ctx, j.category)
		results[j.index] = Result{Category: j.category, Items: items, Err: err}
	}
}
