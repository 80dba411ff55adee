package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/WagerBot_Go/internal/logger"
)

// BaseWorker provides the timer and shutdown bookkeeping shared by timed workers
type BaseWorker struct {
	mu        sync.Mutex
	timer     *time.Timer
	shutdown  chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func (w *BaseWorker) init() {
	w.shutdown = make(chan struct{})
}

// setTimer replaces the pending timer
func (w *BaseWorker) setTimer(d time.Duration, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped() {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(d, fn)
}

func (w *BaseWorker) stopped() bool {
	select {
	case <-w.shutdown:
		return true
	default:
		return false
	}
}

// track runs fn in a goroutine that shutdown waits for
func (w *BaseWorker) track(fn func()) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		fn()
	}()
}

func (w *BaseWorker) shutdownInternal(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx).With("worker", workerName)
	log.Info(LogMsgShuttingDown)

	w.closeOnce.Do(func() { close(w.shutdown) })

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
		log.Info(LogMsgTimerCancelled)
	}
	w.mu.Unlock()

	// Wait for in-flight executions
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgShutdownComplete)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
