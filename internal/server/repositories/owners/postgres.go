package owners

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/safetrace/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) NextRevision(ctx context.Context, ownerID string) (int64, error) {
	query :=
		`INSERT INTO owners (id, revision)
		 VALUES ($1, 1)
		 ON CONFLICT (id) DO UPDATE SET revision = owners.revision + 1
		 RETURNING revision
		 `

	var revision int64
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&revision)

	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return revision, nil
}
