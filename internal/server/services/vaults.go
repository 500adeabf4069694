// Package services holds the server's use cases. They own transactions and
// hand repositories a DBTX bound to them.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/safetrace/internal/common"
	"github.com/dmitrijs2005/safetrace/internal/dbx"
	"github.com/dmitrijs2005/safetrace/internal/server/models"
	"github.com/dmitrijs2005/safetrace/internal/server/repositories/repomanager"
)

type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewVaultService(db *sql.DB, m repomanager.RepositoryManager) *VaultService {
	return &VaultService{
		db:          db,
		repomanager: m,
		now:         time.Now,
	}
}

// Get returns the owner's blob, or common.ErrorNotFound if nothing was
// ever stored.
func (s *VaultService) Get(ctx context.Context, ownerID string) ([]byte, error) {
	v, err := s.repomanager.Vaults(s.db).Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error reading vault: %w", err)
	}
	return v.Blob, nil
}

// Put replaces the owner's blob in one transaction and returns the new
// revision.
func (s *VaultService) Put(ctx context.Context, ownerID string, blob []byte) (int64, error) {
	var revision int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rev, err := s.repomanager.Owners(tx).NextRevision(ctx, ownerID)
		if err != nil {
			return err
		}

		err = s.repomanager.Vaults(tx).Put(ctx, &models.Vault{
			OwnerID:   ownerID,
			Blob:      blob,
			Revision:  rev,
			UpdatedAt: s.now().UTC(),
		})
		if err != nil {
			return err
		}

		revision = rev
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("error writing vault: %w", err)
	}

	return revision, nil
}
