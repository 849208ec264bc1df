// Package worker runs periodic background cycles with overlap protection: a
// cycle that outlives its interval simply causes the next tick to be skipped.
package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// CycleFunc is one unit of periodic work. It returns how many items it
// handled, for logging.
type CycleFunc func(ctx context.Context) (int, error)

type Worker struct {
	name     string
	interval time.Duration
	cycle    CycleFunc
	log      *zap.Logger

	running atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup
}

func New(name string, interval time.Duration, cycle CycleFunc, log *zap.Logger) *Worker {
	return &Worker{
		name:     name,
		interval: interval,
		cycle:    cycle,
		log:      log.With(zap.String("worker", name)),
		done:     make(chan struct{}),
	}
}

// Start launches the polling loop. The first cycle runs immediately instead of
// waiting a full interval.
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.log.Info("Worker started", zap.Duration("interval", w.interval))
		w.runCycle(ctx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.runCycle(ctx)
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop signals the loop to exit and waits for an in-flight cycle to finish.
func (w *Worker) Stop() {
	close(w.done)
	w.wg.Wait()
	w.log.Info("Worker stopped")
}

func (w *Worker) runCycle(ctx context.Context) {
	// Skip the tick when the previous cycle is still running.
	if !w.running.CompareAndSwap(false, true) {
		w.log.Debug("Cycle still running, skipping tick")
		return
	}
	defer w.running.Store(false)

	handled, err := w.cycle(ctx)
	if err != nil {
		w.log.Error("Worker cycle failed", zap.Error(err))
		return
	}
	if handled > 0 {
		w.log.Info("Worker cycle completed", zap.Int("handled", handled))
	}
}
