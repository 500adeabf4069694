package vaults

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/safetrace/internal/common"
	"github.com/dmitrijs2005/safetrace/internal/dbx"
	"github.com/dmitrijs2005/safetrace/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID string) (*models.Vault, error) {
	query :=
		`SELECT owner_id, blob, revision, updated_at FROM vaults
		 WHERE owner_id = $1
		 `

	v := &models.Vault{}
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&v.OwnerID, &v.Blob, &v.Revision, &v.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return v, nil
}

// Put replaces the owner's blob. The whole collection is written at once,
// so the last writer wins.
func (r *PostgresRepository) Put(ctx context.Context, v *models.Vault) error {
	query :=
		`INSERT INTO vaults (owner_id, blob, revision, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (owner_id) DO UPDATE
		 SET blob = EXCLUDED.blob, revision = EXCLUDED.revision, updated_at = EXCLUDED.updated_at
		 `

	res, err := r.db.ExecContext(ctx, query, v.OwnerID, v.Blob, v.Revision, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("db error: vault for %s was not written", v.OwnerID)
	}

	return nil
}
