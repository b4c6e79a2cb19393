// Package services contains the gateway's domain logic: authentication,
// wallet provisioning and naming, and transaction summarization. Handlers
// stay thin; everything with behavior lives here.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hobbleabbas/bapu-gateway/internal/auth"
	"github.com/hobbleabbas/bapu-gateway/internal/common"
	"github.com/hobbleabbas/bapu-gateway/internal/logging"
	"github.com/hobbleabbas/bapu-gateway/internal/models"
	"github.com/hobbleabbas/bapu-gateway/internal/repositories/users"
)

// UserService registers and authenticates accounts.
type UserService struct {
	repo          users.Repository
	jwtSecret     []byte
	tokenValidity time.Duration
	logger        logging.Logger
}

func NewUserService(repo users.Repository, secretKey string, tokenValidity time.Duration, logger logging.Logger) *UserService {
	return &UserService{
		repo:          repo,
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
		logger:        logger.With("module", "users"),
	}
}

// Register creates a new account. The user id is generated here so the
// wallet namespace prefix has a fixed width regardless of store defaults.
// A duplicate username reports common.ErrConflict; the existing record is
// untouched.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {

	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Salt:         salt,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Authenticate validates a username/password pair and returns the matched
// record. An unknown username reports common.ErrUserNotFound explicitly; a
// bad password reports common.ErrWrongCredentials. Handlers present both as
// the same message to avoid leaking which half was wrong.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: get user by username: %v", common.ErrInternal, err)
	}

	if !auth.VerifyPassword(password, user.Salt, user.PasswordHash) {
		return nil, common.ErrWrongCredentials
	}

	return user, nil
}

// Login authenticates and issues a short-lived access token that can stand
// in for the credentials on subsequent requests.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {

	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// AuthenticateToken resolves an access token back to its user record.
func (s *UserService) AuthenticateToken(ctx context.Context, token string) (*models.User, error) {

	userID, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("%w: get user by id: %v", common.ErrInternal, err)
	}

	return user, nil
}
