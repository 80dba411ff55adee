package worker

import (
	"context"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/logger"
)

// Recoverer scores results whose scoring run never completed
type Recoverer interface {
	RecoverUnscored(ctx context.Context, since domain.Date) (int, error)
}

// RecoveryJob rescans recent results for missing scores
type RecoveryJob struct {
	scoring      Recoverer
	clock        domain.Clock
	lookbackDays int
}

// NewRecoveryJob creates a recovery job covering the last lookbackDays days
func NewRecoveryJob(scoring Recoverer, clock domain.Clock, lookbackDays int) *RecoveryJob {
	if lookbackDays <= 0 {
		lookbackDays = DefaultRecoveryLookbackDays
	}
	return &RecoveryJob{scoring: scoring, clock: clock, lookbackDays: lookbackDays}
}

// Process implements Job
func (j *RecoveryJob) Process(ctx context.Context) error {
	since := j.clock.Today().AddDays(-j.lookbackDays)

	n, err := j.scoring.RecoverUnscored(ctx, since)
	if err != nil {
		return err
	}

	log := logger.FromContext(ctx)
	if n > 0 {
		log.Info(LogMsgRecoveryCompleted, "results", n, "since", since)
	} else {
		log.Debug(LogMsgRecoveryIdle, "since", since)
	}
	return nil
}
