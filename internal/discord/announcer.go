package discord

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/WagerBot_Go/internal/domain"

	"github.com/osse101/WagerBot_Go/internal/event"
	"github.com/osse101/WagerBot_Go/internal/logger"
)

// ResultAnnouncer posts newly resolved results and the nightly betting close
// to the announcement channel
type ResultAnnouncer struct {
	bot *Bot
}

// NewResultAnnouncer creates an announcer for the bot
func NewResultAnnouncer(bot *Bot) *ResultAnnouncer {
	return &ResultAnnouncer{bot: bot}
}

// Register subscribes the announcer to result and close events
func (a *ResultAnnouncer) Register(bus event.Bus) {
	bus.Subscribe(event.ResultResolved, a.HandleResultResolved)
	bus.Subscribe(event.BettingClosed, a.HandleBettingClosed)
}

// HandleResultResolved announces a result
func (a *ResultAnnouncer) HandleResultResolved(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ResultResolvedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("decode result payload: %w", err)
	}

	noun := a.bot.cfg.BetNoun
	desc := fmt.Sprintf("The %s number for **%s** on **%s** is **%s**.\n%s %s scored for **%s** points. See `/results %s`.",
		noun, regionName(payload.RegionID), payload.Date, formatNumber(payload.Value),
		formatNumber(payload.WagerCount), plural(payload.WagerCount, "bet"), formatNumber(payload.PointsTotal), payload.Date)

	a.post(ctx, createEmbed("📣 Result confirmed", desc, ColorSuccess, ""), "region", payload.RegionID, "date", payload.Date)
	return nil
}

// HandleBettingClosed announces how many bets were placed for the day that
// just started
func (a *ResultAnnouncer) HandleBettingClosed(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.BettingClosedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("decode betting closed payload: %w", err)
	}

	summary := &domain.PlacedSummary{Date: domain.Date(payload.Date), Total: payload.Total}
	for regionID, n := range payload.ByRegion {
		summary.ByRegion = append(summary.ByRegion, domain.RegionCount{RegionID: regionID, Count: n})
	}
	sort.Slice(summary.ByRegion, func(i, j int) bool {
		return summary.ByRegion[i].RegionID < summary.ByRegion[j].RegionID
	})

	desc := placedText(summary) + "\nGood luck! Bets for the next day are open with `/bet`."
	a.post(ctx, createEmbed("🔒 Betting closed", desc, ColorNeutral, ""), "date", payload.Date)
	return nil
}

// post sends an announcement. Failures are logged, never returned, so they
// cannot fail the publisher.
func (a *ResultAnnouncer) post(ctx context.Context, embed *discordgo.MessageEmbed, attrs ...any) {
	log := logger.FromContext(ctx)
	if err := a.bot.Announce(embed); err != nil {
		if errors.Is(err, ErrNoAnnounceChannel) {
			log.Debug(LogMsgAnnounceSkipped, attrs...)
			return
		}
		log.Error(LogMsgAnnounceFailed, append(attrs, "error", err)...)
	}
}
