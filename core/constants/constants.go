package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// User roles
const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// Database settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "token:blacklist:"
	RedisKeyLoginAttempt   = "login:attempt:"
	RedisKeyTrainingDetail = "training:detail:"
)

// Timeouts and durations
const (
	DefaultTimeout   = 10 * time.Second
	BlockDuration    = 15 * time.Minute
	AccessTokenTTL   = 1 * time.Hour
	RefreshTokenTTL  = 30 * 24 * time.Hour
	TrainingCacheTTL = 5 * time.Minute
)

// Login attempt blocking
const (
	MaxLoginAttempts = 5
)

// Pagination defaults
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

// Worker queue names
const (
	QueueDefault       = "default"
	QueueNotifications = "notifications"
)
