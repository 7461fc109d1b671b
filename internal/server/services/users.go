package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/gophprofile/internal/apperror"
	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/dmitrijs2005/gophprofile/internal/server/auth"
	"github.com/dmitrijs2005/gophprofile/internal/server/models"
	"github.com/dmitrijs2005/gophprofile/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophprofile/internal/server/validation"
)

// UpdateProfileInput carries the fields to change; nil means "keep".
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// UserService reads and modifies user profiles on behalf of the caller.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *UserService {
	return &UserService{db: db, repomanager: m, logger: l.With("module", "users")}
}

// GetProfile returns the profile of id, or nil when there is no such user.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, apperror.Internal("error loading user", err)
	}
	return user.Profile(), nil
}

// Me returns the caller's profile.
func (s *UserService) Me(ctx context.Context) (*models.Profile, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// GetUser returns any user's profile to any authenticated caller.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.Profile, error) {
	if _, err := auth.RequireUser(ctx); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, id)
}

// ListUsers is reserved for a future directory listing and currently
// always returns an empty list.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.Profile, error) {
	if _, err := auth.RequireUser(ctx); err != nil {
		return nil, err
	}
	return []*models.Profile{}, nil
}

// UpdateProfile changes the caller's name and/or email.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validation.ProfileUpdate(in.Name, in.Email); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).Update(ctx, userID, in.Name, in.Email)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil, apperror.NotFound(msgUserNotFound)
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, apperror.Conflict(msgUserExists, err)
		default:
			return nil, apperror.Internal("error updating user", err)
		}
	}

	s.logger.Info(ctx, "profile updated", "user_id", userID)
	return user.Profile(), nil
}

// DeleteAccount removes the caller's account. It reports false when the
// account no longer exists.
func (s *UserService) DeleteAccount(ctx context.Context) (bool, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return false, err
	}

	deleted, err := s.repomanager.Users(s.db).Delete(ctx, userID)
	if err != nil {
		return false, apperror.Internal("error deleting user", err)
	}

	if deleted {
		s.logger.Info(ctx, "account deleted", "user_id", userID)
	}
	return deleted, nil
}
