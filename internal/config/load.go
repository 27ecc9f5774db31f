package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration environment variable.
const EnvPrefix = "TASKAPI"

// ConfigFileKey is the viper key holding an optional configuration file path.
const ConfigFileKey = "config"

// ErrMissingDatabaseURI is returned when no connection URI is configured
// outside serverless mode.
var ErrMissingDatabaseURI = errors.New("database.uri is required unless server.serverless is true")

// aliases binds the variable names used by existing deployments. The prefixed
// name always wins when both are set.
var aliases = map[string]string{
	"server.port":        "PORT",
	"server.environment": "APP_ENV",
	"server.cors_origin": "CORS_ORIGIN",
	"database.uri":       "MONGODB_URI",
	"auth.api_key":       "API_KEY",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom loads configuration into v, which may already carry bound command
// line flags. Flags take precedence over the environment.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, alias := range aliases {
		envName := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envName, alias); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path := v.GetString(ConfigFileKey); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	normalize(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags and the cross-field rules.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if !cfg.Server.Serverless && cfg.Database.URI == "" {
		return fmt.Errorf("config validation failed: %w", ErrMissingDatabaseURI)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.environment", EnvironmentProduction)
	v.SetDefault("server.serverless", false)
	v.SetDefault("server.cors_origin", "")
	v.SetDefault("database.uri", "")
	v.SetDefault("database.name", "taskapi")
	v.SetDefault("database.connect_timeout", 10*time.Second)
	v.SetDefault("auth.api_key", "")
}

func normalize(cfg *Config) {
	cfg.Server.LogLevel = strings.ToLower(strings.TrimSpace(cfg.Server.LogLevel))
	cfg.Server.Environment = strings.ToLower(strings.TrimSpace(cfg.Server.Environment))
	cfg.Server.CORSOrigin = strings.TrimSpace(cfg.Server.CORSOrigin)
	cfg.Database.URI = strings.TrimSpace(cfg.Database.URI)
}
