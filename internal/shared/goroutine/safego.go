// Package goroutine runs background work with panic recovery.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

// Runner launches tracked goroutines so shutdown can wait for them to drain.
// A panic in one task is logged with its stack and does not crash the process.
type Runner struct {
	log logger.Interface
	wg  sync.WaitGroup
}

func NewRunner(log logger.Interface) *Runner {
	return &Runner{log: log}
}

// Go runs fn in a new goroutine tracked by the runner
func (r *Runner) Go(name string, fn func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", rec),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}

// Wait blocks until every task finished or ctx is done
func (r *Runner) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("background tasks still running: %w", ctx.Err())
	}
}
