package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/WagerBot_Go/internal/domain"
)

func regionOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "region",
		Description: "Region code",
		Required:    true,
	}
}

// SetResultCommand records a region's confirmed value and scores its bets (moderator only)
func SetResultCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "set-result",
		Description: "[MOD] Record the confirmed number for a region",
		Options: []*discordgo.ApplicationCommandOption{
			regionOption(),
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Confirmed number",
				Required:    true,
				MinValue:    &minAmount,
			},
			dateOption("Day of the result (YYYY-MM-DD), today if omitted"),
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}

		opts := getOptions(i)
		amount := 0
		if opt, ok := opts["amount"]; ok {
			amount = int(opt.IntValue())
		}
		date := domain.Date(stringOption(opts, "date", ""))
		if date.IsZero() {
			date = b.cfg.Clock.Today()
		}

		res, err := b.Services.Scoring.Resolve(ctx, stringOption(opts, "region", ""), date, amount)
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, b.resolutionEmbed("📌 Result recorded", res))
	}

	return cmd, handler
}

// RescoreCommand rewrites the scores of an already recorded result (moderator only)
func RescoreCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "rescore",
		Description: "[MOD] Score a recorded result again",
		Options: []*discordgo.ApplicationCommandOption{
			regionOption(),
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "date",
				Description: "Day of the result (YYYY-MM-DD)",
				Required:    true,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}

		opts := getOptions(i)
		res, err := b.Services.Scoring.Rescore(ctx, stringOption(opts, "region", ""), domain.Date(stringOption(opts, "date", "")))
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, b.resolutionEmbed("🔁 Result rescored", res))
	}

	return cmd, handler
}

func (b *Bot) resolutionEmbed(title string, res *domain.Resolution) *discordgo.MessageEmbed {
	desc := fmt.Sprintf("**%s** on **%s**: **%s** %s. Scored **%s** %s.",
		regionName(res.RegionID), res.Date, formatNumber(res.Value), plural(res.Value, b.cfg.BetNoun),
		formatNumber(res.WagerCount), plural(res.WagerCount, "bet"))
	embed := createEmbed(title, desc, ColorAdmin, FooterWagerBotAdmin)

	var lines []string
	for _, p := range res.Placings {
		if p.Award == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s - **%s**", p.Place, p.UserID, formatNumber(p.Award)))
	}
	if len(lines) > 0 {
		embed.Fields = []*discordgo.MessageEmbedField{{Name: "Points", Value: strings.Join(lines, "\n")}}
	}
	return embed
}

// PlacedCommand counts the bets placed for a day (moderator only)
func PlacedCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "placed",
		Description: "[MOD] Count the bets placed for a day",
		Options: []*discordgo.ApplicationCommandOption{
			dateOption("Day to count (YYYY-MM-DD), tomorrow if omitted"),
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}

		summary, err := b.Services.Wagers.PlacedSummary(ctx, domain.Date(stringOption(getOptions(i), "date", "")))
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, createEmbed("🧮 Bets placed", placedText(summary), ColorAdmin, FooterWagerBotAdmin))
	}

	return cmd, handler
}

// placedText renders "For **2024-03-02**, there are **3 bets** placed, broken into nsw: 2, vic: 1."
func placedText(summary *domain.PlacedSummary) string {
	text := fmt.Sprintf("For **%s**, there are **%s %s** placed", summary.Date, formatNumber(summary.Total), plural(summary.Total, "bet"))
	if len(summary.ByRegion) == 0 {
		return text + "."
	}
	parts := make([]string, len(summary.ByRegion))
	for n, rc := range summary.ByRegion {
		parts[n] = fmt.Sprintf("%s: %s", rc.RegionID, formatNumber(rc.Count))
	}
	return text + ", broken into " + strings.Join(parts, ", ") + "."
}

// ReloadRegionsCommand replaces the region list from the catalogue file (moderator only)
func ReloadRegionsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "reload-regions",
		Description: "[MOD] Reload the region catalogue",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}

		n, err := b.Services.Regions.Reload(ctx)
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, createEmbed("🔄 Regions reloaded", fmt.Sprintf("Loaded **%d** %s.", n, plural(n, "region")), ColorAdmin, FooterWagerBotAdmin))
	}

	return cmd, handler
}
