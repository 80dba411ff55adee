package discord

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

// HTTPServer serves the bot's internal endpoints: health and announcements
type HTTPServer struct {
	server *http.Server
	bot    *Bot
	ping   StorePinger
}

// NewHTTPServer creates the internal HTTP server. ping may be nil.
func NewHTTPServer(port string, bot *Bot, ping StorePinger) *HTTPServer {
	mux := http.NewServeMux()

	srv := &HTTPServer{
		server: &http.Server{
			Addr:              ":" + port,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		bot:  bot,
		ping: ping,
	}

	mux.HandleFunc("GET /healthz", srv.HandleHealth)
	mux.HandleFunc("POST /admin/announce", srv.handleAnnounce)
	return srv
}

// Start starts the HTTP server
func (s *HTTPServer) Start() {
	go func() {
		slog.Info(LogMsgInternalStarting, "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error(LogMsgInternalFailed, "error", err)
		}
	}()
}

// Stop stops the HTTP server
func (s *HTTPServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), InternalServerShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error(LogMsgInternalStopFailed, "error", err)
	}
}

// AnnounceRequest is the body of POST /admin/announce
type AnnounceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

func (s *HTTPServer) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	var req AnnounceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || (req.Title == "" && req.Description == "") {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Color == 0 {
		req.Color = ColorInfo
	}

	embed := createEmbed(req.Title, req.Description, req.Color, FooterWagerBotAdmin)
	embed.Timestamp = time.Now().Format(time.RFC3339)

	if err := s.bot.Announce(embed); err != nil {
		slog.Error(LogMsgAnnounceFailed, "error", err)
		if errors.Is(err, ErrNoAnnounceChannel) {
			http.Error(w, "No announcement channel configured", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "Failed to send to Discord", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ErrNoAnnounceChannel is returned by Announce when no channel is configured
var ErrNoAnnounceChannel = errors.New("no announcement channel configured")

// Announce posts an embed to the announcement channel
func (b *Bot) Announce(embed *discordgo.MessageEmbed) error {
	if b.cfg.AnnounceChannelID == "" {
		return ErrNoAnnounceChannel
	}
	_, err := b.Session.ChannelMessageSendEmbed(b.cfg.AnnounceChannelID, embed)
	return err
}
