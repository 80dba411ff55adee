package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// HealthStatus represents the bot's health status
type HealthStatus struct {
	Status           string     `json:"status"`
	Uptime           string     `json:"uptime"`
	Connected        bool       `json:"connected"`
	CommandsReceived int64      `json:"commands_received"`
	LastCommandTime  *time.Time `json:"last_command_time,omitempty"`
	StoreReachable   bool       `json:"store_reachable"`
}

// StorePinger reports whether the game store answers
type StorePinger func(ctx context.Context) error

const healthPingTimeout = 2 * time.Second

var (
	startTime       = time.Now()
	commandCounter  atomic.Int64
	lastCommandUnix atomic.Int64
)

// RecordCommand increments the command counter
func RecordCommand() {
	commandCounter.Add(1)
	lastCommandUnix.Store(time.Now().Unix())
}

// HandleHealth returns the bot's health status
func (h *HTTPServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	connected := h.bot.Session != nil && h.bot.Session.DataReady

	storeReachable := true
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		storeReachable = h.ping(ctx) == nil
		cancel()
	}

	health := HealthStatus{
		Status:           "healthy",
		Uptime:           time.Since(startTime).Round(time.Second).String(),
		Connected:        connected,
		CommandsReceived: commandCounter.Load(),
		StoreReachable:   storeReachable,
	}
	if unix := lastCommandUnix.Load(); unix > 0 {
		t := time.Unix(unix, 0).UTC()
		health.LastCommandTime = &t
	}

	w.Header().Set("Content-Type", "application/json")
	if !connected || !storeReachable {
		health.Status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	// Headers are already sent; nothing useful can be done with an encode error
	_ = json.NewEncoder(w).Encode(health)
}
