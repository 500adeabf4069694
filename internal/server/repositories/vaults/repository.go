package vaults

import (
	"context"

	"github.com/dmitrijs2005/safetrace/internal/server/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound when the owner has never written.
	Get(ctx context.Context, ownerID string) (*models.Vault, error)
	Put(ctx context.Context, v *models.Vault) error
}
