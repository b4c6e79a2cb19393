// Package users is the credential store adapter.
package users

import (
	"context"

	"github.com/hobbleabbas/bapu-gateway/internal/models"
)

type Repository interface {
	// Create inserts a new user. A duplicate username reports
	// common.ErrConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user record for a username, or
	// common.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns the user record for an id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
