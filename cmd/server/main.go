// Package main implements the entry point for the task API server, a REST
// service for tasks and their assignees backed by MongoDB.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the taskapi command. Flags are bound into v so they
// override environment variables and the config file.
func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "taskapi",
		Short:        "Task tracking REST API backed by MongoDB",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := initializeApp(v)
			if err != nil {
				return err
			}

			app, err := newApplication(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			return app.Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "path to a configuration file (yaml, json or toml)")
	flags.Int("port", 0, "port to listen on")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	bindFlag(v, config.ConfigFileKey, cmd, "config")
	bindFlag(v, "server.port", cmd, "port")
	bindFlag(v, "server.log_level", cmd, "log-level")

	return cmd
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
		// ALLOW-PANIC: flag names are fixed at compile time
		panic(fmt.Sprintf("failed to bind flag %s: %v", name, err))
	}
}

// initializeApp loads configuration and sets up logging.
// Returns the loaded config, the logger and any initialization error.
func initializeApp(v *viper.Viper) (*config.Config, *slog.Logger, error) {
	// Load configuration
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	// Log configuration details using structured logging
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"environment", cfg.Server.Environment,
		"serverless", cfg.Server.Serverless)

	log.Debug("Database configuration",
		"uri_present", cfg.Database.URI != "",
		"database", cfg.Database.Name,
		"connect_timeout", cfg.Database.ConnectTimeout)

	return cfg, log, nil
}
