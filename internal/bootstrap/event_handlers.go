package bootstrap

import (
	"log/slog"

	"github.com/osse101/WagerBot_Go/internal/event"
	"github.com/osse101/WagerBot_Go/internal/leaderboard"
	"github.com/osse101/WagerBot_Go/internal/metrics"
)

// RegisterEventHandlers subscribes the handlers every binary needs:
// - Metrics collector (counts events by type)
// - Leaderboard cache invalidation (on every resolved result)
//
// Binary specific subscribers, such as the Discord announcer, register themselves.
func RegisterEventHandlers(bus event.Bus, leaderboards leaderboard.Service) {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	leaderboard.NewEventHandler(leaderboards).Register(bus)
	slog.Info(LogMsgLeaderboardHandlerReady)
}
