// Package mocks holds hand-written test doubles for the store and service
// interfaces.
//
// Most mocks expose one function field per method. A nil field falls back to
// the mock's default values (Task, Tasks, User, DefaultError):
//
//	svc := &mocks.MockTaskService{
//	    GetTaskFn: func(ctx context.Context, id string) (*domain.Task, error) {
//	        return nil, store.ErrTaskNotFound
//	    },
//	}
//
// TestifyMockUserStore is built on testify/mock for tests that assert on
// call arguments.
package mocks
