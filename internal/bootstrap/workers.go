package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/WagerBot_Go/internal/config"
	"github.com/osse101/WagerBot_Go/internal/event"
	"github.com/osse101/WagerBot_Go/internal/scheduler"
	"github.com/osse101/WagerBot_Go/internal/worker"
)

// Workers are the background jobs of a process
type Workers struct {
	pool      *worker.Pool
	scheduler *scheduler.Scheduler
	dayClose  *worker.DayCloseWorker
}

// StartWorkers starts the periodic recovery of unscored results and, when
// dayClose is set, the midnight betting close. Returns nil when
// BACKGROUND_JOBS is disabled for this process.
func StartWorkers(cfg *config.Config, svc *Services, bus event.Bus, dayClose bool) *Workers {
	if !cfg.BackgroundJobs {
		return nil
	}

	w := &Workers{pool: worker.NewPool(WorkerPoolSize, WorkerQueueSize)}
	w.pool.Start()

	w.scheduler = scheduler.New(w.pool)
	recovery := worker.NewRecoveryJob(svc.Scoring, svc.Clock, cfg.RecoveryLookbackDays)
	w.scheduler.Schedule(JobNameRecovery, cfg.RecoveryInterval, recovery, true)

	if dayClose {
		w.dayClose = worker.NewDayCloseWorker(svc.Wagers, bus, svc.Clock)
		w.dayClose.Start()
	}

	slog.Info(LogMsgWorkersStarted,
		"recovery_interval", cfg.RecoveryInterval,
		"lookback_days", cfg.RecoveryLookbackDays,
		"day_close", dayClose)
	return w
}

// Shutdown stops scheduling, cancels the day close timer and drains the pool
func (w *Workers) Shutdown(ctx context.Context) {
	if w == nil {
		return
	}
	w.scheduler.Stop()
	if w.dayClose != nil {
		if err := w.dayClose.Shutdown(ctx); err != nil {
			slog.Error(LogMsgDayCloseShutdownFailed, "error", err)
		}
	}
	w.pool.Stop()
}
