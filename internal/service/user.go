package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/beginnergain/server/internal/auth"
	"github.com/beginnergain/server/internal/logger"
	"github.com/beginnergain/server/internal/model"
)

type User struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewUser(
	userStore model.UserStore,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *User {
	return &User{
		userStore:    userStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

func (s *User) Create(ctx context.Context, params model.CreateUserParams) (model.User, error) {
	s.logger.Debug("User service: registering user",
		"email", params.Email)

	existingUser, err := s.userStore.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("User service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if existingUser.ID != uuid.Nil {
		s.logger.Info("User service: user already exists",
			"email", params.Email)
		return model.User{}, model.ErrEmailTaken
	}

	passwordHash, err := auth.HashPassword(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        params.Email,
		Name:         params.Name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	savedUser, err := s.userStore.Create(ctx, user)
	if err != nil {
		s.logger.Error("User service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user registered",
		"email", params.Email,
		"user_id", savedUser.ID)

	return savedUser, nil
}

func (s *User) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the user together with a signed
// access token. Unknown email surfaces model.ErrNotFound, a wrong password
// model.ErrInvalidCredentials; exactly one terminal outcome per attempt.
func (s *User) Login(ctx context.Context, email, password string) (model.User, string, error) {
	s.logger.Debug("User service: login attempt",
		"email", email)

	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("User service: login for unknown email",
			"email", email)
		return model.User{}, "", model.ErrNotFound
	}
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		s.logger.Info("User service: password mismatch",
			"email", email)
		return model.User{}, "", model.ErrInvalidCredentials
	}

	accessToken, err := s.tokenManager.GenerateAccessToken(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue access token: %w", err)
	}

	s.logger.Info("User service: login succeeded",
		"email", email,
		"user_id", user.ID)

	return user, accessToken, nil
}
