package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWorker_RunsImmediatelyAndPeriodically(t *testing.T) {
	var cycles atomic.Int32
	w := New("test", 20*time.Millisecond, func(ctx context.Context) (int, error) {
		cycles.Add(1)
		return 1, nil
	}, zap.NewNop())

	w.Start(context.Background())
	time.Sleep(70 * time.Millisecond)
	w.Stop()

	// One immediate cycle plus at least two ticks.
	assert.GreaterOrEqual(t, cycles.Load(), int32(3))
}

func TestWorker_SkipsOverlappingCycles(t *testing.T) {
	var started atomic.Int32
	block := make(chan struct{})

	w := New("test", 10*time.Millisecond, func(ctx context.Context) (int, error) {
		started.Add(1)
		<-block
		return 0, nil
	}, zap.NewNop())

	w.Start(context.Background())
	time.Sleep(60 * time.Millisecond)

	// The first cycle is still blocked, so every tick since was skipped.
	assert.Equal(t, int32(1), started.Load())

	close(block)
	w.Stop()
}

func TestWorker_StopsOnContextCancel(t *testing.T) {
	var cycles atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	w := New("test", 10*time.Millisecond, func(ctx context.Context) (int, error) {
		cycles.Add(1)
		return 0, nil
	}, zap.NewNop())

	w.Start(ctx)
	time.Sleep(25 * time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)

	after := cycles.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, cycles.Load())

	w.Stop()
}
