package usecase

import (
	"context"
	"log/slog"
	"time"

	"SpursScanner/internal/ports"
)

// Runner wires the poll cycle to the interval driver. Cycle errors are
// logged and swallowed so the process keeps polling indefinitely despite
// transient failures.
type Runner struct {
	driver  ports.Scheduler
	scanner *Scanner
	logger  *slog.Logger
}

// NewRunner returns a helper to start/stop the recurring scan.
func NewRunner(driver ports.Scheduler, scanner *Scanner, logger *slog.Logger) *Runner {
	return &Runner{driver: driver, scanner: scanner, logger: logger}
}

// Start registers the cycle with the provided scheduler.
func (r *Runner) Start(ctx context.Context) error {
	if r.driver == nil || r.scanner == nil {
		return nil
	}

	job := func(time.Time) {
		if err := r.scanner.RunCycle(ctx); err != nil {
			if r.logger != nil {
				r.logger.Error("cycle failed", "error", err)
			}
		}
	}

	return r.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (r *Runner) Stop(ctx context.Context) error {
	if r.driver == nil {
		return nil
	}
	return r.driver.Stop(ctx)
}
