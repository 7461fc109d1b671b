package users

import (
	"context"

	"github.com/dmitrijs2005/gophprofile/internal/server/models"
)

// Repository persists user accounts.
//
// Lookups that match nothing return common.ErrorNotFound; inserts and
// updates that hit the email uniqueness constraint return
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// Update sets the non-nil fields and bumps updated_at.
	Update(ctx context.Context, id int64, name, email *string) (*models.User, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
