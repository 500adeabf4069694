package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/safetrace/internal/client/models"
	"github.com/dmitrijs2005/safetrace/internal/common"
	"github.com/dmitrijs2005/safetrace/internal/logging"
)

// VaultStore loads and saves whole collections through a Backend.
type VaultStore struct {
	backend Backend
	log     logging.Logger
}

func New(backend Backend, log logging.Logger) *VaultStore {
	if log == nil {
		log = logging.Nop{}
	}
	return &VaultStore{backend: backend, log: log}
}

// Load returns the owner's records in stored order. A missing collection is
// an empty one.
func (s *VaultStore) Load(ctx context.Context, ownerID string) ([]models.VaultRecord, error) {
	blob, err := s.backend.Get(ctx, ownerID)
	if errors.Is(err, common.ErrorNotFound) {
		return []models.VaultRecord{}, nil
	}
	if err != nil {
		s.log.Warn(ctx, "vault load failed", "owner", ownerID, "err", err)
		return nil, storeError(err)
	}

	records, err := decode(blob, ownerID)
	if err != nil {
		s.log.Error(ctx, "stored vault rejected", "owner", ownerID, "err", err)
		return nil, err
	}

	s.log.Debug(ctx, "vault loaded", "owner", ownerID, "records", len(records))
	return records, nil
}

// SaveAll replaces the owner's stored collection with records.
func (s *VaultStore) SaveAll(ctx context.Context, ownerID string, records []models.VaultRecord) error {
	for _, r := range records {
		if r.OwnerID != ownerID {
			return fmt.Errorf("record %s belongs to another owner: %w", r.ID, common.ErrorUnauthorized)
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %s: %w", r.ID, err)
		}
	}

	if records == nil {
		records = []models.VaultRecord{}
	}
	blob, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode vault: %w", err)
	}

	if err := s.backend.Put(ctx, ownerID, blob); err != nil {
		s.log.Warn(ctx, "vault save failed", "owner", ownerID, "err", err)
		return storeError(err)
	}

	s.log.Debug(ctx, "vault saved", "owner", ownerID, "records", len(records))
	return nil
}

func decode(blob []byte, ownerID string) ([]models.VaultRecord, error) {
	var records []models.VaultRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptStore, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: not an array", common.ErrCorruptStore)
	}

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrCorruptStore, err)
		}
		if r.OwnerID != ownerID {
			return nil, fmt.Errorf("%w: record %s owned by another user", common.ErrCorruptStore, r.ID)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", common.ErrCorruptStore, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return records, nil
}

// storeError keeps authorization failures recognisable and folds everything
// else into ErrStoreUnavailable.
func storeError(err error) error {
	if errors.Is(err, common.ErrStoreUnavailable) {
		return err
	}
	if errors.Is(err, common.ErrorUnauthorized) {
		return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
}
