package notes

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/notetags/internal/tags"
)

// Checker validates notes entries on a pool of worker goroutines.
// All workers share a single queue; validation is CPU-bound and stateless, so
// entries need no ordering or locking beyond their own result slot.
type Checker struct {
	logger  *slog.Logger
	workers int

	inFlight atomic.Int32
}

// CheckerConfig configures a new Checker.
type CheckerConfig struct {
	Logger  *slog.Logger
	Workers int // Number of worker goroutines (default: runtime.NumCPU())
}

// NewChecker creates a new Checker.
func NewChecker(cfg CheckerConfig) *Checker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Checker{
		logger:  logger.With("component", "checker", "workers", workers),
		workers: workers,
	}
}

// Workers returns the configured worker count.
func (c *Checker) Workers() int {
	return c.workers
}

// InFlight returns the number of entries currently being validated.
func (c *Checker) InFlight() int {
	return int(c.inFlight.Load())
}

// Check validates every entry and returns a report in entry order.
// It returns ctx.Err() if the context is cancelled before all entries are done.
func (c *Checker) Check(ctx context.Context, entries []Entry) (*Report, error) {
	start := time.Now()
	report := &Report{
		RunID:     uuid.New().String(),
		CheckedAt: start.UTC(),
		Total:     len(entries),
		Results:   make([]EntryResult, len(entries)),
	}
	logger := c.logger.With("run_id", report.RunID)

	workers := min(c.workers, len(entries))
	queue := make(chan int)

	var wg sync.WaitGroup
	for id := 0; id < workers; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c.worker(ctx, logger, id, entries, queue, report.Results)
		}(id)
	}

feed:
	for i := range entries {
		select {
		case <-ctx.Done():
			break feed
		case queue <- i:
		}
	}
	close(queue)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		logger.Warn("check cancelled", "error", err)
		return nil, err
	}

	for _, res := range report.Results {
		if !res.Valid {
			report.Invalid++
		}
	}

	logger.Info("check complete",
		"total", report.Total,
		"invalid", report.Invalid,
		"duration", time.Since(start),
	)
	return report, nil
}

// worker validates entries pulled from the shared queue.
func (c *Checker) worker(ctx context.Context, logger *slog.Logger, id int, entries []Entry, queue <-chan int, results []EntryResult) {
	for {
		select {
		case <-ctx.Done():
			return

		case i, ok := <-queue:
			if !ok {
				return
			}
			c.inFlight.Add(1)
			results[i] = checkEntry(entries[i])
			c.inFlight.Add(-1)

			if !results[i].Valid {
				logger.Debug("entry has markup errors",
					"worker_id", id,
					"entry_id", entries[i].ID,
					"errors", len(results[i].Errors),
				)
			}
		}
	}
}

func checkEntry(e Entry) EntryResult {
	r := tags.Validate(e.Notes)
	res := EntryResult{
		ID:          e.ID,
		ProductType: e.ProductType,
		Valid:       r.Valid,
		Blocks:      len(r.Blocks),
	}
	if !r.Valid {
		res.Errors = r.Errors
	}
	return res
}
