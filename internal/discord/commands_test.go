package discord

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/WagerBot_Go/internal/domain"
)

func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()

	cmd := &discordgo.ApplicationCommand{Name: "test", Description: "Test command"}
	handlerCalled := false
	registry.Register(cmd, func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		handlerCalled = true
	})

	assert.NotNil(t, registry.Commands["test"])
	assert.NotNil(t, registry.Handlers["test"])
	assert.False(t, registry.IsModeratorCommand("test"))

	tc := SetupTestContext(t)
	registry.Handle(context.Background(), tc.Bot.Session, commandInteraction("test", "amy"), tc.Bot)
	assert.True(t, handlerCalled)
}

func TestRegisterAll(t *testing.T) {
	tc := SetupTestContext(t)
	registry := tc.Bot.Registry

	for _, name := range []string{"ping", "help", "regions", "bet", "bets", "results", "score", "leaderboard"} {
		assert.Contains(t, registry.Commands, name)
		assert.False(t, registry.IsModeratorCommand(name), name)
	}
	for _, name := range []string{"set-result", "rescore", "placed", "reload-regions"} {
		assert.Contains(t, registry.Commands, name)
		assert.True(t, registry.IsModeratorCommand(name), name)
	}
}

func TestRecordCommand(t *testing.T) {
	before := commandCounter.Load()

	RecordCommand()
	RecordCommand()
	RecordCommand()

	assert.Equal(t, before+3, commandCounter.Load())
	assert.NotZero(t, lastCommandUnix.Load())
}

func TestCommandsEqual(t *testing.T) {
	a, _ := BetCommand()
	b, _ := BetCommand()
	assert.True(t, commandsEqual([]*discordgo.ApplicationCommand{a}, []*discordgo.ApplicationCommand{b}))

	b.Options[1].Required = false
	assert.False(t, commandsEqual([]*discordgo.ApplicationCommand{a}, []*discordgo.ApplicationCommand{b}))

	c, _ := LeaderboardCommand()
	assert.False(t, commandsEqual([]*discordgo.ApplicationCommand{a}, []*discordgo.ApplicationCommand{a, c}))
}

func TestPlayerID(t *testing.T) {
	assert.Equal(t, "amy", playerID(&discordgo.User{Username: "amy", Discriminator: "0"}))
	assert.Equal(t, "amy", playerID(&discordgo.User{Username: "amy"}))
	assert.Equal(t, "amy#1234", playerID(&discordgo.User{Username: "amy", Discriminator: "1234"}))
}

func TestGetInteractionUser(t *testing.T) {
	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{User: testUser("amy")}}
	assert.Equal(t, "amy", getInteractionUser(dm).ID)

	empty := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}
	assert.NotNil(t, getInteractionUser(empty))
}

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: MsgGenericError},
		{name: "unknown region", err: fmt.Errorf("%w: %s: %q", domain.ErrInvalidInput, domain.ErrMsgRegionNotFound, "qld"), expected: MsgRegionNotFound},
		{name: "closed region", err: fmt.Errorf("%w: %s: tas", domain.ErrInvalidInput, domain.ErrMsgRegionClosed), expected: MsgRegionClosed},
		{name: "amount", err: fmt.Errorf("%w: %s: must be 0..9", domain.ErrInvalidInput, domain.ErrMsgAmountRange), expected: MsgAmountOutOfRange},
		{name: "no change", err: fmt.Errorf("%w: already 40", domain.ErrNoChange), expected: MsgNoChange},
		{name: "already resolved", err: domain.ErrAlreadyResolved, expected: MsgAlreadyResolved},
		{name: "already scored", err: domain.ErrAlreadyScored, expected: MsgAlreadyScored},
		{name: "not found", err: fmt.Errorf("%w: result nsw", domain.ErrNotFound), expected: MsgNotFound},
		{name: "validation", err: fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput), expected: "❌ date must be YYYY-MM-DD"},
		{name: "store failure hides detail", err: fmt.Errorf("%w: insert: %w", domain.ErrStoreFailure, errors.New("pq: password rejected")), expected: MsgGenericError},
		{name: "unknown", err: errors.New("boom"), expected: MsgGenericError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFriendlyError(tt.err))
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "1,234,567", formatNumber(1234567))
	assert.Equal(t, "case", plural(1, "case"))
	assert.Equal(t, "cases", plural(0, "case"))
	assert.Equal(t, "NSW", regionName("nsw"))
	assert.Equal(t, "Distance", metricTitle(domain.MetricDistance))
	assert.Equal(t, "_Empty_.", placingLines(nil, ""))
	assert.Equal(t, 0xE67E22, parseColor("#E67E22"))
	assert.Equal(t, ColorInfo, parseColor("orange"))
	assert.Equal(t, ColorInfo, parseColor(""))
}
