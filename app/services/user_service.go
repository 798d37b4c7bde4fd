package services

import (
	"context"
	"errors"
	"fmt"

	"inkwell/app/metrics"
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// UserService handles registration and authentication
type UserService struct {
	userRepo   repositories.UserRepository
	bcryptCost int
}

// NewUserService creates a new UserService hashing passwords at the given bcrypt cost
func NewUserService(userRepo repositories.UserRepository, bcryptCost int) *UserService {
	return &UserService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new account. A taken username yields ErrDuplicateUser.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, invalid(errors.New("username and password are required"))
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		metrics.Registration(metrics.ResultDuplicate)
		return nil, ErrDuplicateUser
	} else if !errors.Is(err, repositories.ErrNotFound) {
		metrics.Registration(metrics.ResultError)
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	user := &models.User{Username: username}
	if err := user.SetPassword(password, s.bcryptCost); err != nil {
		if errors.Is(err, models.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %w", ErrPasswordTooLong, invalid(err))
		}
		metrics.Registration(metrics.ResultError)
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	if err := user.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repositories.ErrDuplicate) {
			metrics.Registration(metrics.ResultDuplicate)
			return nil, ErrDuplicateUser
		}
		metrics.Registration(metrics.ResultError)
		return nil, writeErr("create user", err)
	}

	metrics.Registration(metrics.ResultSuccess)
	return user, nil
}

// Authenticate returns the user matching the credentials. Unknown users and
// wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.Login(metrics.ResultFailure)
			return nil, ErrInvalidCredentials
		}
		metrics.Login(metrics.ResultError)
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !user.CheckPassword(password) {
		metrics.Login(metrics.ResultFailure)
		return nil, ErrInvalidCredentials
	}

	metrics.Login(metrics.ResultSuccess)
	return user, nil
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, readErr("user", err)
	}
	return user, nil
}
