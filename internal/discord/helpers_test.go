package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/event"
	"github.com/osse101/WagerBot_Go/internal/info"
	"github.com/osse101/WagerBot_Go/internal/leaderboard"
	"github.com/osse101/WagerBot_Go/internal/region"
	"github.com/osse101/WagerBot_Go/internal/scoring"
	"github.com/osse101/WagerBot_Go/internal/testing/memstore"
	"github.com/osse101/WagerBot_Go/internal/wager"
)

const (
	testModeratorID = "mod-1"
	testAnnounceID  = "announce-1"
	testGuildID     = "guild-1"
)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// sentMessage is the part of an outgoing Discord message the tests look at.
// Components stay raw since discordgo cannot decode them into its interface type.
type sentMessage struct {
	Content    string                    `json:"content"`
	Embeds     []*discordgo.MessageEmbed `json:"embeds"`
	Components []json.RawMessage         `json:"components"`
	Flags      discordgo.MessageFlags    `json:"flags"`
}

type callback struct {
	Type discordgo.InteractionResponseType `json:"type"`
	Data *sentMessage                      `json:"data"`
}

// discordRecorder captures every REST call the session makes
type discordRecorder struct {
	mu        sync.Mutex
	callbacks []callback
	edits     []sentMessage
	posts     map[string][]sentMessage
}

func (r *discordRecorder) roundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}

	r.mu.Lock()
	switch {
	case strings.HasSuffix(req.URL.Path, "/callback"):
		var cb callback
		_ = json.Unmarshal(body, &cb)
		r.callbacks = append(r.callbacks, cb)
	case req.Method == http.MethodPatch && strings.Contains(req.URL.Path, "/messages/@original"):
		var msg sentMessage
		_ = json.Unmarshal(body, &msg)
		r.edits = append(r.edits, msg)
	case req.Method == http.MethodPost && strings.Contains(req.URL.Path, "/channels/"):
		var msg sentMessage
		_ = json.Unmarshal(body, &msg)
		channel := strings.Split(strings.TrimPrefix(req.URL.Path[strings.Index(req.URL.Path, "/channels/"):], "/channels/"), "/")[0]
		r.posts[channel] = append(r.posts[channel], msg)
	}
	r.mu.Unlock()

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString("{}")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func (r *discordRecorder) Callbacks() []callback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]callback(nil), r.callbacks...)
}

func (r *discordRecorder) Edits() []sentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentMessage(nil), r.edits...)
}

func (r *discordRecorder) Posts(channelID string) []sentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentMessage(nil), r.posts[channelID]...)
}

// LastEdit returns the most recent edit of the original response
func (r *discordRecorder) LastEdit(t *testing.T) sentMessage {
	t.Helper()
	edits := r.Edits()
	require.NotEmpty(t, edits, "expected the response to be edited")
	return edits[len(edits)-1]
}

// LastEmbed returns the first embed of the most recent edit
func (r *discordRecorder) LastEmbed(t *testing.T) *discordgo.MessageEmbed {
	t.Helper()
	edit := r.LastEdit(t)
	require.NotEmpty(t, edit.Embeds, "expected an embed, got content %q", edit.Content)
	return edit.Embeds[0]
}

// TestContext bundles a bot wired to real services over an in-memory store
type TestContext struct {
	Bot     *Bot
	Store   *memstore.Store
	Bus     *event.MemoryBus
	Discord *discordRecorder
}

type testOptions struct {
	confirmTimeout    time.Duration
	allowedChannelIDs []string
}

var testClock = domain.Clock{
	Now:      func() time.Time { return time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC) },
	Location: time.UTC,
}

func SetupTestContext(t *testing.T, opts ...func(*testOptions)) *TestContext {
	t.Helper()
	o := testOptions{confirmTimeout: 5 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	store := memstore.New(
		domain.Region{ID: "nsw", Label: "New South Wales", Open: true},
		domain.Region{ID: "vic", Label: "Victoria", Open: true},
		domain.Region{ID: "tas", Label: "Tasmania"},
	)
	bus := event.NewMemoryBus()

	regions := region.NewService(store, nil, "", "")
	boards := leaderboard.NewService(store, nil)
	svc := Services{
		Regions:     regions,
		Scoring:     scoring.NewService(store, regions, bus, scoring.Settings{}),
		Leaderboard: boards,
		Wagers: wager.NewService(store, regions, bus, wager.Settings{
			MaxAmount:      900000000,
			ConfirmTimeout: o.confirmTimeout,
			Clock:          testClock,
		}),
		Help:          info.NewLoader("../../configs/info"),
		HelpFormatter: info.NewFormatter(map[string]string{info.VarNoun: "case"}),
	}

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	rec := &discordRecorder{posts: make(map[string][]sentMessage)}
	session.Client = &http.Client{Transport: &MockRoundTripper{RoundTripFunc: rec.roundTrip}}

	bot := newBot(session, Config{
		AppID:             "app-1",
		ModeratorIDs:      []string{testModeratorID},
		AllowedChannelIDs: o.allowedChannelIDs,
		AnnounceChannelID: testAnnounceID,
		Clock:             testClock,
	}, svc)
	bot.RegisterAll()
	NewResultAnnouncer(bot).Register(bus)

	t.Cleanup(bot.Stop)

	return &TestContext{Bot: bot, Store: store, Bus: bus, Discord: rec}
}

func withConfirmTimeout(d time.Duration) func(*testOptions) {
	return func(o *testOptions) { o.confirmTimeout = d }
}

func withAllowedChannels(ids ...string) func(*testOptions) {
	return func(o *testOptions) { o.allowedChannelIDs = ids }
}

func testUser(id string) *discordgo.User {
	return &discordgo.User{ID: id, Username: id, Discriminator: "0"}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	// Discord delivers numbers as JSON, so they decode to float64
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

func commandInteraction(name, userID string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction-" + name,
			AppID:     "app-1",
			Token:     "token-" + name + "-" + userID,
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   testGuildID,
			ChannelID: "game",
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
			Member: &discordgo.Member{User: testUser(userID)},
		},
	}
}

// dmCommandInteraction is a command sent in a direct message, where Discord
// sets User instead of Member and leaves GuildID empty
func dmCommandInteraction(name, userID string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	i := commandInteraction(name, userID, opts...)
	i.GuildID = ""
	i.ChannelID = "dm-" + userID
	i.User = i.Member.User
	i.Member = nil
	return i
}

func componentInteraction(customID, userID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "component-" + userID,
			AppID:     "app-1",
			Token:     "token-component-" + userID,
			Type:      discordgo.InteractionMessageComponent,
			GuildID:   testGuildID,
			ChannelID: "game",
			Data:      discordgo.MessageComponentInteractionData{CustomID: customID},
			Member:    &discordgo.Member{User: testUser(userID)},
		},
	}
}

// Dispatch runs an interaction through the bot as the gateway would
func (tc *TestContext) Dispatch(i *discordgo.InteractionCreate) {
	tc.Bot.interactionCreate(tc.Bot.Session, i)
}

// buttonIDs returns the custom ids of the buttons in a message
func buttonIDs(t *testing.T, msg sentMessage) []string {
	t.Helper()
	var ids []string
	for _, raw := range msg.Components {
		var row struct {
			Components []struct {
				CustomID string `json:"custom_id"`
			} `json:"components"`
		}
		require.NoError(t, json.Unmarshal(raw, &row))
		for _, c := range row.Components {
			ids = append(ids, c.CustomID)
		}
	}
	return ids
}

func fieldValues(embed *discordgo.MessageEmbed) string {
	var b strings.Builder
	for _, f := range embed.Fields {
		b.WriteString(f.Name)
		b.WriteString("\n")
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
	return b.String()
}
