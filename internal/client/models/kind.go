package models

import (
	"fmt"
	"slices"

	"github.com/dmitrijs2005/safetrace/internal/common"
)

// Kind classifies a vault record. It is fixed when the record is created.
type Kind string

const (
	KindPassword Kind = "password"
	KindCard     Kind = "card"
	KindNote     Kind = "note"
)

// Field names used by the per-kind schemas.
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldURL      = "url"
	FieldNotes    = "notes"

	FieldCardholderName = "cardholderName"
	FieldCardNumber     = "cardNumber"
	FieldExpiryMonth    = "expiryMonth"
	FieldExpiryYear     = "expiryYear"
	FieldCVV            = "cvv"

	FieldContent = "content"
)

var (
	passwordSchema = []string{FieldUsername, FieldPassword, FieldURL, FieldNotes}
	cardSchema     = []string{FieldCardholderName, FieldCardNumber, FieldExpiryMonth, FieldExpiryYear, FieldCVV, FieldNotes}
	noteSchema     = []string{FieldContent}
)

// Kinds lists every supported kind in display order.
func Kinds() []Kind {
	return []Kind{KindPassword, KindCard, KindNote}
}

// ParseKind maps user input to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%q: %w", s, common.ErrUnknownKind)
	}
	return k, nil
}

func (k Kind) Valid() bool {
	switch k {
	case KindPassword, KindCard, KindNote:
		return true
	default:
		return false
	}
}

// Schema returns the ordered field names a record of this kind may carry.
// The returned slice is a copy.
func (k Kind) Schema() []string {
	switch k {
	case KindPassword:
		return slices.Clone(passwordSchema)
	case KindCard:
		return slices.Clone(cardSchema)
	case KindNote:
		return slices.Clone(noteSchema)
	default:
		return nil
	}
}

func (k Kind) Allows(name string) bool {
	return slices.Contains(k.Schema(), name)
}

// Sensitive reports whether the field is masked by default when shown.
func (k Kind) Sensitive(name string) bool {
	switch k {
	case KindPassword:
		return name == FieldPassword
	case KindCard:
		return name == FieldCardNumber || name == FieldCVV
	case KindNote:
		return name == FieldContent
	default:
		return false
	}
}

func (k Kind) String() string { return string(k) }
