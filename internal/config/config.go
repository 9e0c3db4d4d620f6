package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Store    StoreConfig    `mapstructure:"store" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// StoreConfig selects the persistence backend behind the repository ports.
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres mongo memory"`
}

// DatabaseConfig contains PostgreSQL settings. Required when the store
// driver is "postgres".
type DatabaseConfig struct {
	URL          string `mapstructure:"url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// MongoConfig contains MongoDB settings. Required when the store driver is
// "mongo".
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database" validate:"required"`
}

// AuthConfig contains bearer token validation and scope settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	Issuer               string `mapstructure:"issuer"`
	Audience             string `mapstructure:"audience"`
	ReadScope            string `mapstructure:"read_scope" validate:"required"`
	WriteScope           string `mapstructure:"write_scope" validate:"required"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}
