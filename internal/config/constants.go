package config

import "time"

const (
	// Configuration file paths
	ConfigPathRegions       = "configs/regions.json"
	ConfigPathRegionsSchema = "configs/schemas/regions.schema.json"
	ConfigPathHelp          = "configs/info"
)

// Defaults
const (
	DefaultPort                = 8080
	DefaultDiscordInternalPort = 8082
	DefaultDBMaxConns          = 20
	DefaultDBMaxConnIdleTime   = 5 * time.Minute
	DefaultDBMaxConnLifetime   = 30 * time.Minute
	DefaultGameTimezone        = "UTC"
	DefaultGamePoints          = "100,50,25,10,5,1"
	DefaultGameMaxAmount       = 900000000
	DefaultGameBetNoun         = "case"
	DefaultConfirmTimeout      = 60 * time.Second
	DefaultRecoveryInterval    = 15 * time.Minute
	DefaultRecoveryLookback    = 7
	DefaultLeaderboardTTL      = 5 * time.Minute
	DefaultKafkaTopic          = "wagerbot.events"
	DefaultShutdownTimeout     = 10 * time.Second
	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)
