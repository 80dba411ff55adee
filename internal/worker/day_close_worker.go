package worker

import (
	"context"
	"time"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/event"
	"github.com/osse101/WagerBot_Go/internal/logger"
)

const dayCloseWorkerName = "day close worker"

// PlacedCounter counts the wagers placed for a date
type PlacedCounter interface {
	PlacedSummary(ctx context.Context, date domain.Date) (*domain.PlacedSummary, error)
}

// DayCloseWorker publishes a betting closed event at every midnight of the
// game time zone, when the day that just started stops taking wagers
type DayCloseWorker struct {
	BaseWorker
	wagers PlacedCounter
	bus    event.Bus
	clock  domain.Clock
}

// NewDayCloseWorker creates a new DayCloseWorker
func NewDayCloseWorker(wagers PlacedCounter, bus event.Bus, clock domain.Clock) *DayCloseWorker {
	w := &DayCloseWorker{wagers: wagers, bus: bus, clock: clock}
	w.init()
	return w
}

// Start schedules the first close
func (w *DayCloseWorker) Start() {
	w.scheduleNext()
}

// scheduleNext sleeps until shortly before midnight, then schedules the close itself
func (w *DayCloseWorker) scheduleNext() {
	duration := timeUntilMidnight(w.clock)
	log := logger.FromContext(context.Background())

	// Two-stage scheduling so a long timer that drifts cannot fire on the wrong day
	if duration > DayCloseStandbyThreshold {
		wait := duration - DayCloseWakeBefore
		w.setTimer(wait, w.scheduleNext)
		log.Info(LogMsgDayCloseStandby, "next_check_at", time.Now().Add(wait).UTC())
		return
	}

	w.setTimer(duration, func() {
		if w.stopped() {
			return
		}

		// A timer that fired early reschedules for the remainder; just after
		// midnight the remainder is close to a full day
		rem := timeUntilMidnight(w.clock)
		if rem > DayCloseEarlyTolerance && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.track(func() { w.closeDay(w.clock.Today()) })
		w.scheduleNext()
	})
	log.Info(LogMsgDayCloseScheduled, "close_at", time.Now().Add(duration).UTC())
}

// closeDay counts the wagers for date and publishes the closed event
func (w *DayCloseWorker) closeDay(date domain.Date) {
	ctx, cancel := context.WithTimeout(logger.WithRequestID(context.Background(), logger.GenerateRequestID()), DayCloseJobTimeout)
	defer cancel()
	log := logger.FromContext(ctx)
	log.Info(LogMsgDayCloseStarting, "date", date)

	summary, err := w.wagers.PlacedSummary(ctx, date)
	if err != nil {
		log.Error(LogMsgDayCloseFailed, "date", date, "error", err)
		return
	}

	byRegion := make(map[string]int, len(summary.ByRegion))
	for _, rc := range summary.ByRegion {
		byRegion[rc.RegionID] = rc.Count
	}

	if err := w.bus.Publish(ctx, event.NewBettingClosedEvent(string(summary.Date), summary.Total, byRegion)); err != nil {
		log.Error(LogMsgDayCloseFailed, "date", date, "error", err)
		return
	}
	log.Info(LogMsgDayCloseCompleted, "date", date, "wagers", summary.Total)
}

// Shutdown cancels the pending timer and waits for a close in flight
func (w *DayCloseWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, dayCloseWorkerName)
}

// timeUntilMidnight is the duration until the next midnight in the clock's zone
func timeUntilMidnight(clock domain.Clock) time.Duration {
	loc := clock.Location
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now()
	if clock.Now != nil {
		now = clock.Now()
	}
	now = now.In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
