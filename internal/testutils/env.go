package testutils

import (
	"os"
	"testing"
)

// TestDatabaseEnv names the variable holding a connection URI for integration tests.
const TestDatabaseEnv = "TASKAPI_TEST_DATABASE_URI"

// IsIntegrationTestEnvironment returns true if the environment is configured
// for running integration tests with a database connection.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv(TestDatabaseEnv) != ""
}

// RequireTestDatabaseURI returns the integration database URI, skipping the
// test when none is configured.
func RequireTestDatabaseURI(t *testing.T) string {
	t.Helper()

	uri := os.Getenv(TestDatabaseEnv)
	if uri == "" {
		t.Skipf("%s not set; skipping integration test", TestDatabaseEnv)
	}
	return uri
}
