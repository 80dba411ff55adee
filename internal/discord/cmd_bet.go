package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/WagerBot_Go/internal/logger"
	"github.com/osse101/WagerBot_Go/internal/wager"
)

var minAmount = float64(0)

// BetCommand returns the bet command definition and handler.
// The bet is only written once the player presses the confirm button. Every
// reply is ephemeral so other players never see a guess.
func BetCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "bet",
		Description: "Bet on tomorrow's number for a region",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "region",
				Description: "Region code, see /regions",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Your guess",
				Required:    true,
				MinValue:    &minAmount,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferEphemeral(s, i) {
			return
		}

		opts := getOptions(i)
		amount := 0
		if opt, ok := opts["amount"]; ok {
			amount = int(opt.IntValue())
		}

		c, err := b.Services.Wagers.Propose(ctx, playerID(getInteractionUser(i)), stringOption(opts, "region", ""), amount)
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		components := confirmationButtons(c.ID)
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds:     &[]*discordgo.MessageEmbed{b.proposalEmbed(c)},
			Components: &components,
		}); err != nil {
			// The player never saw the buttons; the wait below will expire it
			logger.FromContext(ctx).Error(LogMsgEditFailed, "confirmation_id", c.ID, "error", err)
		}

		b.waitForConfirmation(ctx, s, i.Interaction, c)
	}

	return cmd, handler
}

// waitForConfirmation awaits the player's answer in the background and then
// replaces the prompt with the outcome
func (b *Bot) waitForConfirmation(ctx context.Context, s *discordgo.Session, interaction *discordgo.Interaction, c *wager.Confirmation) {
	waitCtx := logger.WithRequestID(b.ctx, logger.GetRequestID(ctx))

	b.waiters.Add(1)
	go func() {
		defer b.waiters.Done()
		log := logger.FromContext(waitCtx)

		outcome, err := b.Services.Wagers.Await(waitCtx, c)
		if err != nil {
			log.Error(LogMsgAwaitFailed, "confirmation_id", c.ID, "error", err)
		}

		noComponents := []discordgo.MessageComponent{}
		if _, err := s.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
			Embeds:     &[]*discordgo.MessageEmbed{b.outcomeEmbed(c, outcome, err)},
			Components: &noComponents,
		}); err != nil {
			log.Error(LogMsgOutcomeEditFailed, "confirmation_id", c.ID, "error", err)
		}
	}()
}

// handleComponent routes a button press to the pending confirmation
func (b *Bot) handleComponent(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	log := logger.FromContext(ctx)

	customID := i.MessageComponentData().CustomID
	action, confirmationID, ok := parseComponentID(customID)
	if !ok {
		log.Debug(LogMsgUnknownComponent, "custom_id", customID)
		return
	}

	player := playerID(getInteractionUser(i))
	if !b.Services.Wagers.Acknowledge(confirmationID, player, action == ActionConfirm) {
		respondEphemeral(s, i, b.ackRefusal(confirmationID, player))
		return
	}

	// The waiting goroutine edits the message once it has the answer
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.Error(LogMsgAckFailed, "confirmation_id", confirmationID, "error", err)
	}
}

// ackRefusal explains why a button press was ignored
func (b *Bot) ackRefusal(confirmationID, player string) string {
	c, pending := b.Services.Wagers.Pending(confirmationID)
	switch {
	case !pending:
		return MsgConfirmationFinished
	case c.UserID != player:
		return MsgNotYourConfirmation
	default:
		return MsgAlreadyAnswered
	}
}

func componentID(action, confirmationID string) string {
	return strings.Join([]string{ComponentPrefix, action, confirmationID}, ":")
}

func parseComponentID(customID string) (action, confirmationID string, ok bool) {
	parts := strings.SplitN(customID, ":", 3)
	if len(parts) != 3 || parts[0] != ComponentPrefix || parts[2] == "" {
		return "", "", false
	}
	switch parts[1] {
	case ActionConfirm, ActionDecline:
		return parts[1], parts[2], true
	}
	return "", "", false
}

func confirmationButtons(confirmationID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Confirm",
					Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
					Style:    discordgo.SuccessButton,
					CustomID: componentID(ActionConfirm, confirmationID),
				},
				discordgo.Button{
					Label:    "Decline",
					Emoji:    &discordgo.ComponentEmoji{Name: "❌"},
					Style:    discordgo.DangerButton,
					CustomID: componentID(ActionDecline, confirmationID),
				},
			},
		},
	}
}

func (b *Bot) proposalEmbed(c *wager.Confirmation) *discordgo.MessageEmbed {
	noun := b.cfg.BetNoun
	title := "🎟 Place Bet"
	question := fmt.Sprintf("Are you sure you'd like to place this bet for **%s** on **%s**?", regionName(c.RegionID), c.Date)
	if c.IsUpdate() {
		title = "🎟 Update Bet"
		question = fmt.Sprintf("You already have a bet of **%s** for **%s** on **%s**.\nWould you like to change it to **%s**?",
			formatNumber(c.Previous.Amount), regionName(c.RegionID), c.Date, formatNumber(c.Amount))
	}

	embed := createEmbed(title, question+"\n\nPress ✅ to confirm or ❌ to decline (within 60 seconds).", ColorInfo, "")
	embed.Fields = []*discordgo.MessageEmbedField{{
		Name:  "Your bet",
		Value: fmt.Sprintf("%s %s", formatNumber(c.Amount), plural(c.Amount, noun)),
	}}
	return embed
}

func (b *Bot) outcomeEmbed(c *wager.Confirmation, outcome *wager.Outcome, err error) *discordgo.MessageEmbed {
	if err != nil || outcome == nil {
		return createEmbed("👎 Bet not placed", "Dang, your bet wasn't able to be placed. Sorry!", ColorDanger, "")
	}

	switch outcome.State {
	case wager.StateConfirmed:
		return createEmbed("👍 Bet placed",
			fmt.Sprintf("**%s** for **%s** on **%s**.", formatNumber(c.Amount), regionName(c.RegionID), c.Date), ColorSuccess, "")
	case wager.StateDeclined:
		if c.IsUpdate() {
			return createEmbed("OK!", fmt.Sprintf("Your bet remains at **%s**.", formatNumber(c.Previous.Amount)), ColorNeutral, "")
		}
		return createEmbed("OK!", "No bet made.", ColorNeutral, "")
	default:
		return createEmbed("⌛ Expired", "No answer within 60 seconds, so nothing was changed.", ColorNeutral, "")
	}
}
