package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docvault/docvault/internal/common"
	"github.com/docvault/docvault/internal/server/auth"
	"github.com/docvault/docvault/internal/server/config"
)

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register hashes the plaintext password and persists a new active user.
// Duplicate username or email surfaces as common.ErrorAlreadyExists.
// The returned record is safe to confirm to the caller by username; the
// stored hash must never leave the service layer.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login validates the credentials and issues an access token carrying the
// username as subject. An unknown username and a wrong password both map to
// common.ErrorUnauthorized so callers cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !user.IsActive {
		return "", common.ErrorUnauthorized
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return "", common.ErrorInternal
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Username, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// GetByUsername resolves a user record, e.g. when mapping a verified token
// subject back to the current user.
func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}
