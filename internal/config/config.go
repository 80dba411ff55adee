package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // GAME_TIMEZONE must resolve in minimal containers

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string // session log files are written here too when set
	ServiceName string
	Version     string
	Environment string
	APIKey      string // API key for authentication

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	Discord DiscordConfig
	Game    GameConfig

	RegionsFile       string `validate:"required"`
	RegionsSchemaFile string
	HelpDir           string

	// Optional integrations, disabled when empty
	RedisAddr    string
	KafkaBrokers []string
	KafkaTopic   string

	// Retry policy for forwarding events to Kafka
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// BackgroundJobs runs recovery and the day close in this process.
	// Only one process of a deployment should run them.
	BackgroundJobs       bool
	RecoveryInterval     time.Duration `validate:"gt=0"`
	RecoveryLookbackDays int           `validate:"gte=1"`
	LeaderboardCacheTTL  time.Duration `validate:"gte=0"`
	ShutdownTimeout      time.Duration
}

// DiscordConfig holds the Discord bot settings
type DiscordConfig struct {
	Token             string
	AppID             string
	ModeratorIDs      []string
	AllowedChannelIDs []string
	AnnounceChannelID string // results and betting-closed posts; disabled when empty
	ForceCommandSync  bool
	InternalPort      int `validate:"gt=0"` // health and admin announce endpoints
}

// GameConfig holds the rules of the prediction game
type GameConfig struct {
	Timezone       string         `validate:"required"`
	Location       *time.Location `validate:"required"`
	Points         []int          `validate:"required,min=1,dive,gte=0"`
	MaxAmount      int            `validate:"gt=0"`
	BetNoun        string         `validate:"required"`
	ConfirmTimeout time.Duration  `validate:"gt=0"`
}

// Load loads the HTTP API configuration from environment variables
func Load() (*Config, error) {
	cfg, err := LoadBase()
	if err != nil {
		return nil, err
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	return cfg, nil
}

// LoadBot loads the Discord bot configuration. The bot runs the game services
// in-process, so it needs Discord credentials instead of an API key.
func LoadBot() (*Config, error) {
	cfg, err := LoadBase()
	if err != nil {
		return nil, err
	}
	if cfg.Discord.Token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}
	if cfg.Discord.AppID == "" {
		return nil, fmt.Errorf("DISCORD_APP_ID is required")
	}
	return cfg, nil
}

// LoadBase loads and validates the settings shared by every binary without
// requiring API or Discord credentials
func LoadBase() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", ""),
		ServiceName: getEnv("SERVICE_NAME", "wagerbot"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		APIKey:      getEnv("API_KEY", ""),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "wagerbot"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		Discord: DiscordConfig{
			Token:             getEnv("DISCORD_TOKEN", ""),
			AppID:             getEnv("DISCORD_APP_ID", ""),
			ModeratorIDs:      getEnvAsList("DISCORD_MODERATOR_IDS"),
			AllowedChannelIDs: getEnvAsList("DISCORD_ALLOWED_CHANNEL_IDS"),
			AnnounceChannelID: getEnv("DISCORD_ANNOUNCE_CHANNEL_ID", ""),
			ForceCommandSync:  getEnv("DISCORD_FORCE_COMMAND_UPDATE", "") == "true",
			InternalPort:      getEnvAsInt("DISCORD_WEBHOOK_PORT", DefaultDiscordInternalPort),
		},

		RegionsFile:       getEnv("REGIONS_FILE", ConfigPathRegions),
		RegionsSchemaFile: getEnv("REGIONS_SCHEMA_FILE", ConfigPathRegionsSchema),
		HelpDir:           getEnv("HELP_DIR", ConfigPathHelp),

		RedisAddr:    getEnv("REDIS_ADDR", ""),
		KafkaBrokers: getEnvAsList("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", DefaultKafkaTopic),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),

		BackgroundJobs:       getEnv("BACKGROUND_JOBS", "true") != "false",
		RecoveryInterval:     getEnvAsDuration("RECOVERY_INTERVAL", DefaultRecoveryInterval),
		RecoveryLookbackDays: getEnvAsInt("RECOVERY_LOOKBACK_DAYS", DefaultRecoveryLookback),
		LeaderboardCacheTTL:  getEnvAsDuration("LEADERBOARD_CACHE_TTL", DefaultLeaderboardTTL),
		ShutdownTimeout:      getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	game, err := loadGame()
	if err != nil {
		return nil, err
	}
	cfg.Game = game

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadGame() (GameConfig, error) {
	game := GameConfig{
		Timezone:       getEnv("GAME_TIMEZONE", DefaultGameTimezone),
		MaxAmount:      getEnvAsInt("GAME_MAX_AMOUNT", DefaultGameMaxAmount),
		BetNoun:        getEnv("GAME_BET_NOUN", DefaultGameBetNoun),
		ConfirmTimeout: getEnvAsDuration("GAME_CONFIRM_TIMEOUT", DefaultConfirmTimeout),
	}

	loc, err := time.LoadLocation(game.Timezone)
	if err != nil {
		return GameConfig{}, fmt.Errorf("invalid GAME_TIMEZONE value: %w", err)
	}
	game.Location = loc

	points, err := ParsePoints(getEnv("GAME_POINTS", DefaultGamePoints))
	if err != nil {
		return GameConfig{}, fmt.Errorf("invalid GAME_POINTS value: %w", err)
	}
	game.Points = points

	return game, nil
}

// ParsePoints parses a comma separated list of non-negative point awards, best place first
func ParsePoints(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	points := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if p < 0 {
			return nil, fmt.Errorf("negative award %d", p)
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no awards configured")
	}
	return points, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back on parse failure
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration retrieves a duration environment variable, falling back on parse failure
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated environment variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
