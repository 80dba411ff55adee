package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/leaderboard"
)

func dateOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "date",
		Description: description,
		Required:    false,
	}
}

// RegionsCommand lists the regions open for betting
func RegionsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "regions",
		Description: "List the regions you can bet on",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}

		regions, err := b.Services.Regions.List(ctx, true)
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		lines := make([]string, len(regions))
		for n, r := range regions {
			lines[n] = fmt.Sprintf("**%s** - %s", regionName(r.ID), r.Label)
		}
		desc := strings.Join(lines, "\n")
		if desc == "" {
			desc = "No regions are open right now."
		}
		sendEmbed(s, i, createEmbed("🗺️ Regions", desc, ColorInfo, ""))
	}

	return cmd, handler
}

// BetsCommand shows the caller's wagers for a day, tomorrow by default
func BetsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "bets",
		Description: "Show your bets, visible only to you",
		Options: []*discordgo.ApplicationCommandOption{
			dateOption("Day to show (YYYY-MM-DD), tomorrow if omitted"),
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferEphemeral(s, i) {
			return
		}

		date := domain.Date(stringOption(getOptions(i), "date", ""))
		if date.IsZero() {
			date = b.cfg.Clock.Tomorrow()
		}

		wagers, err := b.Services.Wagers.ListWagers(ctx, playerID(getInteractionUser(i)), date)
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		title := fmt.Sprintf("Your Bets for %s", date)
		if len(wagers) == 0 {
			sendEmbed(s, i, createEmbed(title, fmt.Sprintf("Sorry, you have no bets for **%s**.", date), ColorNeutral, ""))
			return
		}

		embed := createEmbed(title, "", ColorInfo, "")
		for _, w := range wagers {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name: regionName(w.RegionID),
				Value: fmt.Sprintf("Bet: **%s** %s\nPlaced: <t:%d:f>",
					formatNumber(w.Amount), plural(w.Amount, b.cfg.BetNoun), w.UpdatedAt.Unix()),
				Inline: true,
			})
		}
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// ResultsCommand shows the scores of a day, today by default
func ResultsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "results",
		Description: "Show the scores for a day",
		Options: []*discordgo.ApplicationCommandOption{
			dateOption("Day to show (YYYY-MM-DD), today if omitted"),
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}

		date := domain.Date(stringOption(getOptions(i), "date", ""))
		if date.IsZero() {
			date = b.cfg.Clock.Today()
		}

		view, err := b.Services.Leaderboard.DailyResults(ctx, date)
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, b.resultsEmbed(view))
	}

	return cmd, handler
}

func (b *Bot) resultsEmbed(view *domain.DailyResults) *discordgo.MessageEmbed {
	title := fmt.Sprintf("Score Results for %s", view.Date)
	if view.Empty() {
		return createEmbed(title, "No results yet.", ColorNeutral, "")
	}

	embed := createEmbed(title, "", ColorSuccess, "")
	for _, region := range view.Regions {
		lines := make([]string, len(region.Rows))
		for n, row := range region.Rows {
			tie := ""
			if row.Tied {
				tie = "t"
			}
			lines[n] = fmt.Sprintf("%d. %s - **%s%s** (± %s %s)",
				n+1, row.UserID, formatNumber(row.Score), tie, formatNumber(row.Distance), plural(row.Distance, b.cfg.BetNoun))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s - %s %s", regionName(region.RegionID), formatNumber(region.Value), plural(region.Value, b.cfg.BetNoun)),
			Value: strings.Join(lines, "\n"),
		})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Notes",
		Value: "**t** marks a tie: the points for that place were split.",
	})
	return embed
}

// ScoreCommand shows a player's points and distance per region
func ScoreCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "score",
		Description: "Show your score breakdown",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Player to look up, yourself if omitted",
				Required:    false,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}

		target := userOption(i, getOptions(i), "user")
		title := "Your Score"
		if target == nil {
			target = getInteractionUser(i)
		} else {
			title = fmt.Sprintf("Score for %s", playerID(target))
		}

		board, err := b.Services.Leaderboard.Scoreboard(ctx, playerID(target))
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, scoreEmbed(title, board))
	}

	return cmd, handler
}

func scoreEmbed(title string, board *domain.Scoreboard) *discordgo.MessageEmbed {
	if len(board.Regions) == 0 {
		return createEmbed(title, "No scores yet. Place a bet with `/bet`.", ColorNeutral, "")
	}

	lines := make([]string, len(board.Regions))
	for n, tally := range board.Regions {
		lines[n] = fmt.Sprintf("%s - **%s** points / ± **%s** total distance.",
			regionName(tally.RegionID), formatNumber(tally.Score), formatNumber(tally.Distance))
	}

	embed := createEmbed(title, "", ColorInfo, "")
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Breakdown", Value: strings.Join(lines, "\n")},
		{Name: "Total", Value: fmt.Sprintf("**%s** points", formatNumber(board.Total))},
	}
	return embed
}

// LeaderboardCommand shows the all-time top players
func LeaderboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "leaderboard",
		Description: "Show the top players",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "metric",
				Description: "Rank by points (default) or average distance",
				Required:    false,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Points", Value: string(domain.MetricPoints)},
					{Name: "Distance", Value: string(domain.MetricDistance)},
				},
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}

		metric := domain.LeaderboardMetric(stringOption(getOptions(i), "metric", ""))
		board, err := b.Services.Leaderboard.Leaderboard(ctx, metric)
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, leaderboardEmbed(board))
	}

	return cmd, handler
}

func leaderboardEmbed(board *domain.Leaderboard) *discordgo.MessageEmbed {
	prefix := ""
	if board.Metric == domain.MetricDistance {
		prefix = "± "
	}

	embed := createEmbed(fmt.Sprintf("Leaderboard (%s)", metricTitle(board.Metric)), "", ColorInfo, "")
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  fmt.Sprintf("Top %d (Global)", leaderboard.TopN),
		Value: placingLines(board.Global, prefix),
	})
	for _, region := range board.Regions {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("Top %d %s", leaderboard.TopN, regionName(region.RegionID)),
			Value:  placingLines(region.Standings, prefix),
			Inline: true,
		})
	}
	return embed
}

// userOption returns the user picked for a user option, preferring the
// resolved data Discord sends along so no extra API call is made
func userOption(i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.User {
	opt, ok := opts[name]
	if !ok {
		return nil
	}
	id, _ := opt.Value.(string)
	if resolved := i.ApplicationCommandData().Resolved; resolved != nil {
		if u, ok := resolved.Users[id]; ok {
			return u
		}
	}
	return &discordgo.User{ID: id, Username: id}
}
