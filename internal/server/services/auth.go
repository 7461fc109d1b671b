// Package services contains server-side business logic. This file implements
// AuthService, which handles signup, login and access token refresh.
package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/apperror"
	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/dmitrijs2005/gophprofile/internal/server/auth"
	"github.com/dmitrijs2005/gophprofile/internal/server/models"
	"github.com/dmitrijs2005/gophprofile/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophprofile/internal/server/validation"
)

const (
	msgUserExists         = "User with this email already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgUserNotFound       = "User not found"
)

// PasswordHasher is implemented by auth.PasswordHasher.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, encoded, password string) (bool, error)
}

// TokenIssuer is implemented by auth.TokenManager.
type TokenIssuer interface {
	Issue(userID int64) (string, time.Time, error)
}

// AuthPayload is returned by every successful authentication operation.
type AuthPayload struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *models.Profile
}

// AuthService provides authentication operations:
// - Signup: validate input, create the user and mint a token
// - Login: verify credentials and mint a token
// - RefreshToken: mint a new token for an already authenticated caller
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	logger      logging.Logger

	dummyMu   sync.Mutex
	dummyHash string
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher, t TokenIssuer, l logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      h,
		tokens:      t,
		logger:      l.With("module", "auth"),
	}
}

// Signup registers a new account. Duplicate emails are a Conflict; the
// password is not hashed in that case.
func (s *AuthService) Signup(ctx context.Context, email, password string, name *string) (*AuthPayload, error) {
	if err := validation.Signup(email, password, name); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperror.Conflict(msgUserExists, nil)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, apperror.Internal("error searching user", err)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, apperror.Internal("error hashing password", err)
	}

	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash, Name: name})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, apperror.Conflict(msgUserExists, err)
		}
		return nil, apperror.Internal("error creating user", err)
	}

	s.logger.Info(ctx, "user signed up", "user_id", user.ID)
	return s.payload(user)
}

// Login authenticates by email and password. An unknown email and a wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	if err := validation.Login(email, password); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Same hashing cost as the wrong-password path.
			s.verifyDummy(ctx, password)
			return nil, apperror.Auth(msgInvalidCredentials)
		}
		return nil, apperror.Internal("error searching user", err)
	}

	ok, err := s.hasher.Verify(ctx, user.PasswordHash, password)
	if err != nil {
		return nil, apperror.Internal("error verifying password", err)
	}
	if !ok {
		s.logger.Debug(ctx, "login rejected", "user_id", user.ID)
		return nil, apperror.Auth(msgInvalidCredentials)
	}

	return s.payload(user)
}

// RefreshToken issues a new token for the caller identified by ctx. No
// credentials are re-checked.
func (s *AuthService) RefreshToken(ctx context.Context) (*AuthPayload, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, apperror.Internal("error loading user", err)
	}

	return s.payload(user)
}

func (s *AuthService) payload(user *models.User) (*AuthPayload, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperror.Internal("error issuing token", err)
	}
	return &AuthPayload{AccessToken: token, ExpiresAt: expiresAt, User: user.Profile()}, nil
}

// dummy returns a hash of a random password, computing it on first use.
// A failed attempt is retried by the next caller.
func (s *AuthService) dummy(ctx context.Context) (string, error) {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyHash == "" {
		h, err := s.hasher.Hash(context.WithoutCancel(ctx), string(common.GenerateRandByteArray(16)))
		if err != nil {
			return "", err
		}
		s.dummyHash = h
	}
	return s.dummyHash, nil
}

func (s *AuthService) verifyDummy(ctx context.Context, password string) {
	hash, err := s.dummy(ctx)
	if err != nil {
		s.logger.Warn(ctx, "dummy hash unavailable", "error", err)
		return
	}
	if _, err := s.hasher.Verify(ctx, hash, password); err != nil {
		s.logger.Debug(ctx, "dummy verify failed", "error", err)
	}
}
