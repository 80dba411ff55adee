package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/osse101/WagerBot_Go/internal/config"
	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/event"
	"github.com/osse101/WagerBot_Go/internal/info"
	"github.com/osse101/WagerBot_Go/internal/leaderboard"
	"github.com/osse101/WagerBot_Go/internal/region"
	"github.com/osse101/WagerBot_Go/internal/repository"
	"github.com/osse101/WagerBot_Go/internal/scoring"
	"github.com/osse101/WagerBot_Go/internal/validation"
	"github.com/osse101/WagerBot_Go/internal/wager"
)

// Services holds the game services shared by the HTTP API and the Discord bot
type Services struct {
	Clock       domain.Clock
	Regions     region.Service
	Scoring     scoring.Service
	Leaderboard leaderboard.Service
	Wagers      wager.Service

	Help          *info.Loader
	HelpFormatter *info.Formatter
}

// InitializeServices wires the game services over the store. cache may be nil.
func InitializeServices(cfg *config.Config, store repository.Store, bus event.Bus, cache leaderboard.Cache) *Services {
	clock := domain.NewClock(cfg.Game.Location)
	regions := region.NewService(store, validation.NewSchemaValidator(), cfg.RegionsFile, cfg.RegionsSchemaFile)

	return &Services{
		Clock:   clock,
		Regions: regions,
		Scoring: scoring.NewService(store, regions, bus, scoring.Settings{
			Points:    cfg.Game.Points,
			MaxAmount: cfg.Game.MaxAmount,
		}),
		Leaderboard: leaderboard.NewService(store, cache),
		Wagers: wager.NewService(store, regions, bus, wager.Settings{
			MaxAmount:      cfg.Game.MaxAmount,
			ConfirmTimeout: cfg.Game.ConfirmTimeout,
			Clock:          clock,
		}),
		Help:          loadHelp(cfg.HelpDir),
		HelpFormatter: info.NewFormatter(helpVars(cfg)),
	}
}

// loadHelp reads the help topics eagerly so a broken file shows up in the
// startup log. Help is optional: a failed load leaves an empty loader.
func loadHelp(dir string) *info.Loader {
	loader := info.NewLoader(dir)
	if err := loader.Load(); err != nil {
		slog.Warn(LogMsgHelpUnavailable, "dir", dir, "error", fmt.Errorf("%s: %w", ErrMsgFailedLoadHelp, err))
	}
	return loader
}

// helpVars are the placeholders substituted into help text
func helpVars(cfg *config.Config) map[string]string {
	points := make([]string, len(cfg.Game.Points))
	for i, p := range cfg.Game.Points {
		points[i] = strconv.Itoa(p)
	}
	return map[string]string{
		info.VarNoun:     cfg.Game.BetNoun,
		info.VarPoints:   strings.Join(points, ", "),
		info.VarTimezone: cfg.Game.Timezone,
	}
}

// SyncRegions replaces the stored region catalogue with the JSON config.
// A failed sync keeps whatever catalogue the store already holds.
func SyncRegions(ctx context.Context, regions region.Service) {
	slog.Info(LogMsgSyncingRegions)
	n, err := regions.Reload(ctx)
	if err != nil {
		slog.Error(LogMsgRegionSyncFailedKeepDB, "error", fmt.Errorf("%s: %w", ErrMsgFailedSyncRegions, err))
		return
	}
	slog.Info(LogMsgRegionsSynced, "regions", n)
}
