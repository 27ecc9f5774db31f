// Package testutils provides testing utilities for the task API.
//
// This package contains helpers for:
//   - Creating test domain entities with functional options
//   - Executing requests against an http.Handler and decoding the envelope
//   - Locating an optional MongoDB instance for integration tests
//
// # Test Domain Entities
//
//	// Create a pending task with default values:
//	task := testutils.MustCreateTaskForTest(t)
//
//	// Create a task with specific options:
//	task := testutils.MustCreateTaskForTest(t,
//	    testutils.WithTaskTitle("Write report"),
//	    testutils.WithTaskStatus(domain.TaskStatusInProgress),
//	    testutils.WithTaskAssignee(user),
//	)
//
// # API Requests
//
//	rr, env := testutils.ServeRequest(t, router, http.MethodGet, "/api/v1/tasks", "")
//	testutils.AssertErrorResponse(t, rr, env, http.StatusNotFound, "Task not found")
//
// # Integration Tests
//
// Tests that need a real database call RequireTestDatabaseURI, which skips
// the test unless TASKAPI_TEST_DATABASE_URI is set.
package testutils
