package mocks

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	CreateUserFn func(ctx context.Context, name, email string) (*domain.User, error)
	GetUserFn    func(ctx context.Context, userID string) (*domain.User, error)

	// Default return values
	User         *domain.User
	DefaultError error
}

var _ service.UserService = (*MockUserService)(nil)

// CreateUser implements the UserService.CreateUser method
func (m *MockUserService) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, name, email)
	}
	return m.User, m.DefaultError
}

// GetUser implements the UserService.GetUser method
func (m *MockUserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return m.User, m.DefaultError
}
