package hero

import "time"

// Cache configuration
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 5 * time.Minute
)

// Validation limits
const (
	MaxHeroNameLength = 50
)

// Error message constants for hero operations
const (
	ErrMsgHeroNameRequired = "hero name is required"
	ErrMsgHeroNameTooLong  = "hero name exceeds maximum length"
	ErrMsgHeroNameTaken    = "hero name is already taken"
)

// Log message constants
const (
	logMsgHeroCreated   = "Hero created"
	logMsgHeroDeleted   = "Hero deleted"
	logMsgHeroRespawned = "Hero respawned"
	logMsgCacheHit      = "Hero cache hit"
)
