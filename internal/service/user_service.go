package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// UserService provides user-related operations
type UserService interface {
	// CreateUser creates a new user with the given name and email.
	// Returns store.ErrEmailExists if the email is already registered.
	CreateUser(ctx context.Context, name, email string) (*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, logger *slog.Logger) (UserService, error) {
	if userStore == nil {
		return nil, errors.New("invalid user service dependencies: userStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore: userStore,
		logger:    logger.With("component", "user_service"),
	}, nil
}

// CreateUser implements UserService.CreateUser
func (s *UserServiceImpl) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email)
	if err != nil {
		log.Debug("invalid user data", "error", redact.Error(err))
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("email already registered")
		} else if !store.IsUnavailableError(err) {
			log.Error("failed to create user", "error", redact.Error(err))
		}
		return nil, newUserError("create", err)
	}

	log.Info("user created successfully", "user_id", user.ID)
	return user, nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if err := domain.ValidateID("user", userID); err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !store.IsNotFoundError(err) && !store.IsUnavailableError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
				"error", redact.Error(err),
				"user_id", userID)
		}
		return nil, newUserError("get", err)
	}

	return user, nil
}
