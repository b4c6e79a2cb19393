package wallets

import (
	"context"
	"fmt"

	"github.com/hobbleabbas/bapu-gateway/internal/dbx"
	"github.com/hobbleabbas/bapu-gateway/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error) {

	query :=
		`INSERT INTO wallets (remote_id, user_id, username, mnemonic)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		wallet.RemoteID, wallet.UserID, wallet.Username, wallet.Mnemonic).
		Scan(&wallet.ID, &wallet.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return wallet, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Wallet, error) {
	query :=
		`SELECT id, remote_id, user_id, username, mnemonic, created_at FROM wallets
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Wallet
	for rows.Next() {
		w := &models.Wallet{}
		if err := rows.Scan(&w.ID, &w.RemoteID, &w.UserID, &w.Username, &w.Mnemonic, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
