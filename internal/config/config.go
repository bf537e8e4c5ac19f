package config

// Storage backends understood by the server.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Events   EventsConfig   `mapstructure:"events"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of the HTTP server.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// StorageConfig selects where the plan lives.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory postgres"`
}

// DatabaseConfig contains all database-related configuration settings.
// URL is only required with the postgres backend.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains the bearer token settings. Leaving JWTSecret empty
// disables authentication for the API.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// AuthEnabled reports whether API requests must carry a bearer token.
func (c AuthConfig) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// EventsConfig controls where plan events go besides the audit log.
type EventsConfig struct {
	// RedisURL enables publishing to Redis pub/sub when set,
	// e.g. redis://localhost:6379/0.
	RedisURL      string `mapstructure:"redis_url" validate:"omitempty,url"`
	ChannelPrefix string `mapstructure:"channel_prefix"`
}
