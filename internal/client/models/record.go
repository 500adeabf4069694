// Package models defines the vault record, its per-kind field schemas and
// the identity handed over by the sign-in collaborator.
package models

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/dmitrijs2005/safetrace/internal/common"
	"github.com/google/uuid"
)

// Fields maps a schema field name to its value. Inside a persisted record
// every non-empty value is ciphertext.
type Fields map[string]string

// Clone returns an independent copy. A nil map clones to an empty one.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	maps.Copy(out, f)
	return out
}

// BlankFields returns every schema field of k set to "".
func BlankFields(k Kind) Fields {
	schema := k.Schema()
	out := make(Fields, len(schema))
	for _, name := range schema {
		out[name] = ""
	}
	return out
}

// VaultRecord is one stored secret. The JSON shape is the persisted form.
type VaultRecord struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Encrypted   bool      `json:"encrypted"`
	Fields      Fields    `json:"fields"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Identity is what the sign-in collaborator knows about the current user.
type Identity struct {
	UserID      string
	DisplayName string
	Email       string
}

// NewRecord validates the input and builds a record with a fresh id.
// fields must already hold the values to persist (ciphertext in the normal flow).
func NewRecord(owner string, kind Kind, title, description string, fields Fields, now time.Time) (VaultRecord, error) {
	if !kind.Valid() {
		return VaultRecord{}, fmt.Errorf("%q: %w", kind, common.ErrUnknownKind)
	}
	if err := validateContent(kind, title, fields); err != nil {
		return VaultRecord{}, err
	}

	ts := now.UTC()
	return VaultRecord{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		Kind:        kind,
		Title:       title,
		Description: description,
		Encrypted:   true,
		Fields:      fields.Clone(),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}, nil
}

// Apply replaces the mutable parts of r. ID, OwnerID, Kind and CreatedAt
// are kept. On error r is left untouched.
func (r *VaultRecord) Apply(title, description string, fields Fields, now time.Time) error {
	if err := validateContent(r.Kind, title, fields); err != nil {
		return err
	}
	r.Title = title
	r.Description = description
	r.Fields = fields.Clone()
	r.Encrypted = true
	r.UpdatedAt = now.UTC()
	return nil
}

// Validate checks a record read back from storage.
func (r VaultRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record without id: %w", common.ErrCorruptStore)
	}
	if r.OwnerID == "" {
		return fmt.Errorf("record %s without owner: %w", r.ID, common.ErrCorruptStore)
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("record %s kind %q: %w", r.ID, r.Kind, common.ErrUnknownKind)
	}
	return validateContent(r.Kind, r.Title, r.Fields)
}

// Clone returns a deep copy of r.
func (r VaultRecord) Clone() VaultRecord {
	out := r
	out.Fields = r.Fields.Clone()
	return out
}

func validateContent(kind Kind, title string, fields Fields) error {
	if strings.TrimSpace(title) == "" {
		return common.ErrMissingTitle
	}
	for name := range fields {
		if !kind.Allows(name) {
			return fmt.Errorf("%s on %s: %w", name, kind, common.ErrUnknownField)
		}
	}
	return nil
}
