package models

import (
	"fmt"

	"github.com/dmitrijs2005/safetrace/internal/common"
)

// PasswordFields is the typed view of a password record.
type PasswordFields struct {
	Username string
	Password string
	URL      string
	Notes    string
}

func (p PasswordFields) Fields() Fields {
	return Fields{
		FieldUsername: p.Username,
		FieldPassword: p.Password,
		FieldURL:      p.URL,
		FieldNotes:    p.Notes,
	}
}

// CardFields is the typed view of a payment card record.
type CardFields struct {
	CardholderName string
	CardNumber     string
	ExpiryMonth    string
	ExpiryYear     string
	CVV            string
	Notes          string
}

func (c CardFields) Fields() Fields {
	return Fields{
		FieldCardholderName: c.CardholderName,
		FieldCardNumber:     c.CardNumber,
		FieldExpiryMonth:    c.ExpiryMonth,
		FieldExpiryYear:     c.ExpiryYear,
		FieldCVV:            c.CVV,
		FieldNotes:          c.Notes,
	}
}

// NoteFields is the typed view of a secure note.
type NoteFields struct {
	Content string
}

func (n NoteFields) Fields() Fields {
	return Fields{FieldContent: n.Content}
}

// TypedFields is implemented by PasswordFields, CardFields and NoteFields.
type TypedFields interface {
	Fields() Fields
}

// Typed converts a generic field map into the view matching kind.
func Typed(kind Kind, f Fields) (TypedFields, error) {
	switch kind {
	case KindPassword:
		return PasswordFields{
			Username: f[FieldUsername],
			Password: f[FieldPassword],
			URL:      f[FieldURL],
			Notes:    f[FieldNotes],
		}, nil
	case KindCard:
		return CardFields{
			CardholderName: f[FieldCardholderName],
			CardNumber:     f[FieldCardNumber],
			ExpiryMonth:    f[FieldExpiryMonth],
			ExpiryYear:     f[FieldExpiryYear],
			CVV:            f[FieldCVV],
			Notes:          f[FieldNotes],
		}, nil
	case KindNote:
		return NoteFields{Content: f[FieldContent]}, nil
	default:
		return nil, fmt.Errorf("%q: %w", kind, common.ErrUnknownKind)
	}
}
