package main

import (
	"testing"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("TASKAPI_DATABASE_URI", "mongodb://localhost:27017")
	t.Setenv("TASKAPI_SERVER_PORT", "8081")

	v := viper.New()
	cmd := newRootCmd(v)
	require.NoError(t, cmd.ParseFlags([]string{"--port", "9090", "--log-level", "debug"}))

	cfg, log, err := initializeApp(v)

	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
}

func TestRootCommandEnvironmentWithoutFlags(t *testing.T) {
	t.Setenv("TASKAPI_DATABASE_URI", "mongodb://localhost:27017")
	t.Setenv("TASKAPI_SERVER_PORT", "8081")

	v := viper.New()
	newRootCmd(v)

	cfg, _, err := initializeApp(v)

	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}

func TestInitializeAppRequiresURIOutsideServerless(t *testing.T) {
	t.Setenv("TASKAPI_DATABASE_URI", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("TASKAPI_SERVER_SERVERLESS", "false")

	v := viper.New()
	newRootCmd(v)

	_, _, err := initializeApp(v)

	assert.ErrorIs(t, err, config.ErrMissingDatabaseURI)
}
