package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix shared by every environment variable the service
// reads, e.g. TASKS_SERVER_PORT or TASKS_AUTH_JWT_SECRET.
const EnvPrefix = "TASKS"

var validate = validator.New()

// Load configuration from an optional .env file, an optional config file
// (config.yaml in . or ./config) and environment variables. Environment
// variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// Existing environment variables win over .env entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return loadFrom(v)
}

// loadFrom applies defaults and environment bindings to v, then unmarshals
// and validates the result.
func loadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("store.driver", DriverPostgres)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "tasks")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "")
	v.SetDefault("auth.read_scope", "message:read")
	v.SetDefault("auth.write_scope", "message:write")
	v.SetDefault("auth.token_lifetime_minutes", 60)
}

// Validate checks struct constraints and the driver-specific requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch c.Store.Driver {
	case DriverPostgres:
		if err := validate.Var(c.Database.URL, "required,url"); err != nil {
			return fmt.Errorf("config validation failed: database.url is required for the postgres driver: %w", err)
		}
	case DriverMongo:
		if err := validate.Var(c.Mongo.URI, "required,url"); err != nil {
			return fmt.Errorf("config validation failed: mongo.uri is required for the mongo driver: %w", err)
		}
	}

	return nil
}
