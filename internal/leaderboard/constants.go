package leaderboard

import "time"

// TopN is how many standings each leaderboard list keeps
const TopN = 5

// Cache settings
const (
	CacheKeyPrefix   = "wagerbot:leaderboard:v1:"
	DefaultCacheTTL  = 5 * time.Minute
	CacheOpTimeout   = 500 * time.Millisecond
	RedisPingTimeout = 5 * time.Second
)

// Error messages
const (
	ErrMsgFindScoresFailed  = "failed to load scores"
	ErrMsgFindResultsFailed = "failed to load results"
	ErrMsgMissingUser       = "user id is required"
	ErrMsgCacheMarshal      = "failed to encode leaderboard"
	ErrMsgCacheUnmarshal    = "failed to decode cached leaderboard"
	ErrMsgRedisGet          = "redis get"
	ErrMsgRedisSet          = "redis set"
	ErrMsgRedisDel          = "redis del"
	ErrMsgRedisPing         = "redis ping"
)

// Log messages
const (
	LogMsgCacheReadFailed    = "Leaderboard cache read failed"
	LogMsgCacheWriteFailed   = "Leaderboard cache write failed"
	LogMsgCacheInvalidated   = "Leaderboard cache invalidated"
	LogMsgCacheInvalidFailed = "Leaderboard cache invalidation failed"
	LogMsgCacheRaced         = "Scores changed while computing leaderboard, dropping cached copy"
)
