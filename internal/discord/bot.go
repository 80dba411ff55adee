package discord

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/info"
	"github.com/osse101/WagerBot_Go/internal/leaderboard"
	"github.com/osse101/WagerBot_Go/internal/logger"
	"github.com/osse101/WagerBot_Go/internal/region"
	"github.com/osse101/WagerBot_Go/internal/scoring"
	"github.com/osse101/WagerBot_Go/internal/wager"
)

// Services are the game services the bot calls in-process
type Services struct {
	Regions     region.Service
	Scoring     scoring.Service
	Leaderboard leaderboard.Service
	Wagers      wager.Service

	Help          *info.Loader
	HelpFormatter *info.Formatter
}

// Config holds the bot configuration
type Config struct {
	Token             string
	AppID             string
	ModeratorIDs      []string
	AllowedChannelIDs []string
	AnnounceChannelID string
	BetNoun           string
	Clock             domain.Clock
}

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	Services Services
	AppID    string
	Registry *CommandRegistry

	cfg Config

	// ctx bounds the confirmation waits started by /bet; cancelled on Stop
	ctx     context.Context
	cancel  context.CancelFunc
	waiters sync.WaitGroup
}

// New creates a new Discord bot
func New(cfg Config, svc Services) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return newBot(s, cfg, svc), nil
}

func newBot(s *discordgo.Session, cfg Config, svc Services) *Bot {
	if cfg.BetNoun == "" {
		cfg.BetNoun = DefaultBetNoun
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Bot{
		Session:  s,
		Services: svc,
		AppID:    cfg.AppID,
		Registry: NewCommandRegistry(),
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the bot
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	slog.Info(LogMsgBotRunning)
	return nil
}

// Stop ends pending confirmations as expired, waits for their messages to be
// updated, then closes the session
func (b *Bot) Stop() {
	if n := b.Services.Wagers.ExpireAll(context.Background()); n > 0 {
		slog.Info(LogMsgExpiringPending, "count", n)
	}
	b.cancel()
	b.waiters.Wait()
	if err := b.Session.Close(); err != nil {
		slog.Warn(LogMsgSessionCloseFailed, "error", err)
	}
}

// Run runs the bot until a signal is received
func (b *Bot) Run() error {
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Stop()

	// Wait here until CTRL-C or other term signal is received.
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return nil
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info(LogMsgBotReady, "user", r.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if b.Registry != nil {
			b.Registry.Handle(ctx, s, i, b)
		}
	case discordgo.InteractionMessageComponent:
		b.handleComponent(ctx, s, i)
	}
}

// isModerator reports whether the user may run moderator commands
func (b *Bot) isModerator(userID string) bool {
	return contains(b.cfg.ModeratorIDs, userID)
}

// channelAllowed reports whether commands are accepted where the interaction
// happened. Direct messages are always accepted; an empty allow list accepts
// every guild channel.
func (b *Bot) channelAllowed(i *discordgo.InteractionCreate) bool {
	if i.GuildID == "" {
		return true
	}
	return len(b.cfg.AllowedChannelIDs) == 0 || contains(b.cfg.AllowedChannelIDs, i.ChannelID)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
