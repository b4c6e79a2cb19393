// Package wallets is the wallet metadata store adapter. One row is written
// per successful remote provisioning; rows are never mutated or deleted.
package wallets

import (
	"context"

	"github.com/hobbleabbas/bapu-gateway/internal/models"
)

type Repository interface {
	// Create persists wallet metadata. It does not enforce (user, name)
	// uniqueness; that conflict belongs to the remote node.
	Create(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error)

	// ListByUser enumerates the wallet rows owned by a user.
	ListByUser(ctx context.Context, userID string) ([]*models.Wallet, error)
}
