package config

import "time"

// Environment names accepted by server.environment.
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Environment string `mapstructure:"environment" validate:"required,oneof=development production"`

	// Serverless tolerates a missing database URI and connects lazily on the
	// first request that needs the database.
	Serverless bool `mapstructure:"serverless"`

	// CORSOrigin is the allowed cross-origin. Empty disables CORS handling.
	CORSOrigin string `mapstructure:"cors_origin"`
}

// IsDevelopment reports whether the server runs in the development environment.
func (c ServerConfig) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URI            string        `mapstructure:"uri" validate:"omitempty,startswith=mongodb"`
	Name           string        `mapstructure:"name" validate:"required"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// APIKey is the shared key expected in the x-api-key header on mutating
	// routes. Empty disables the check.
	APIKey string `mapstructure:"api_key"`
}
