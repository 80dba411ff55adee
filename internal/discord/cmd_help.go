package discord

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/WagerBot_Go/internal/info"
	"github.com/osse101/WagerBot_Go/internal/logger"
)

// PingCommand returns the ping command definition and handler
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Check if the bot is alive",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Pong! 🏓",
			},
		}); err != nil {
			logger.FromContext(ctx).Error(LogMsgRespondFailed, "command", "ping", "error", err)
		}
	}

	return cmd, handler
}

// HelpCommand returns the help command definition and handler
func HelpCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "help",
		Description: "Explain the game and its commands",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "topic",
				Description: "Feature or command to explain, e.g. betting or bet",
				Required:    false,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}
		topic := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(stringOption(getOptions(i), "topic", ""))), "/")
		sendEmbed(s, i, b.helpEmbed(ctx, topic))
	}

	return cmd, handler
}

func (b *Bot) helpEmbed(ctx context.Context, topic string) *discordgo.MessageEmbed {
	loader, formatter := b.Services.Help, b.Services.HelpFormatter
	list := func() *discordgo.MessageEmbed {
		return createEmbed("❔ Help", formatter.FormatFeatureList(loader.Features(), info.PlatformDiscord), ColorInfo, "")
	}

	if topic == "" {
		return list()
	}

	if feature, ok := loader.Feature(topic); ok {
		title := strings.TrimSpace(feature.Icon + " " + feature.Title)
		return createEmbed(title, formatter.FormatFeature(feature, info.PlatformDiscord), parseColor(feature.Color), "")
	}

	if t, featureName, ok := loader.SearchTopic(topic); ok {
		color := ColorInfo
		if feature, ok := loader.Feature(featureName); ok {
			color = parseColor(feature.Color)
		}
		return createEmbed("❔ "+t.Name, formatter.FormatTopic(t, info.PlatformDiscord), color, "")
	}

	logger.FromContext(ctx).Debug(LogMsgHelpTopicMissing, "topic", topic)
	embed := list()
	embed.Description = "No help for **" + topic + "**.\n\n" + embed.Description
	return embed
}

// parseColor reads a "#RRGGBB" color, falling back to ColorInfo
func parseColor(hex string) int {
	v, err := strconv.ParseInt(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || hex == "" {
		return ColorInfo
	}
	return int(v)
}
