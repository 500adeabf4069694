package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/safetrace/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("wifi")
	require.ErrorIs(t, err, common.ErrUnknownKind)
}

func TestKind_Schema(t *testing.T) {
	tests := []struct {
		kind Kind
		want []string
	}{
		{KindPassword, []string{"username", "password", "url", "notes"}},
		{KindCard, []string{"cardholderName", "cardNumber", "expiryMonth", "expiryYear", "cvv", "notes"}},
		{KindNote, []string{"content"}},
		{Kind("bogus"), nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.kind.Schema()); diff != "" {
				t.Fatalf("schema mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKind_SchemaIsCopy(t *testing.T) {
	s := KindNote.Schema()
	s[0] = "changed"
	assert.Equal(t, []string{"content"}, KindNote.Schema())
}

func TestKind_AllowsAndSensitive(t *testing.T) {
	assert.True(t, KindCard.Allows(FieldCVV))
	assert.False(t, KindCard.Allows(FieldContent))
	assert.False(t, KindNote.Allows(FieldCardNumber))

	assert.True(t, KindPassword.Sensitive(FieldPassword))
	assert.False(t, KindPassword.Sensitive(FieldUsername))
	assert.True(t, KindCard.Sensitive(FieldCardNumber))
	assert.True(t, KindCard.Sensitive(FieldCVV))
	assert.False(t, KindCard.Sensitive(FieldCardholderName))
	assert.True(t, KindNote.Sensitive(FieldContent))
}

func TestBlankFields(t *testing.T) {
	f := BlankFields(KindCard)
	require.Len(t, f, 6)
	for _, name := range KindCard.Schema() {
		v, ok := f[name]
		assert.True(t, ok, name)
		assert.Empty(t, v)
	}
	assert.Empty(t, BlankFields(Kind("x")))
}

func TestNewRecord(t *testing.T) {
	in := Fields{FieldUsername: "enc-a", FieldPassword: "enc-b"}
	r, err := NewRecord("u-1", KindPassword, "Email", "work", in, fixedNow.In(time.FixedZone("X", 3600)))
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "u-1", r.OwnerID)
	assert.Equal(t, KindPassword, r.Kind)
	assert.True(t, r.Encrypted)
	assert.Equal(t, fixedNow, r.CreatedAt)
	assert.Equal(t, time.UTC, r.CreatedAt.Location())
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
	assert.Equal(t, in, r.Fields)

	in[FieldUsername] = "mutated"
	assert.Equal(t, "enc-a", r.Fields[FieldUsername], "record must own its fields")

	other, err := NewRecord("u-1", KindPassword, "Email", "", nil, fixedNow)
	require.NoError(t, err)
	assert.NotEqual(t, r.ID, other.ID)
}

func TestNewRecord_Errors(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		title  string
		fields Fields
		want   error
	}{
		{"unknown kind", Kind("wifi"), "t", nil, common.ErrUnknownKind},
		{"empty title", KindNote, "", nil, common.ErrMissingTitle},
		{"blank title", KindNote, "   ", nil, common.ErrMissingTitle},
		{"card field on note", KindNote, "t", Fields{FieldCardNumber: "x"}, common.ErrUnknownField},
		{"content on card", KindCard, "t", Fields{FieldContent: "x"}, common.ErrUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecord("u-1", tt.kind, tt.title, "", tt.fields, fixedNow)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestApply(t *testing.T) {
	r, err := NewRecord("u-1", KindNote, "Diary", "", Fields{FieldContent: "c1"}, fixedNow)
	require.NoError(t, err)
	orig := r.Clone()

	later := fixedNow.Add(time.Hour)
	require.NoError(t, r.Apply("Journal", "d", Fields{FieldContent: "c2"}, later))

	assert.Equal(t, orig.ID, r.ID)
	assert.Equal(t, orig.OwnerID, r.OwnerID)
	assert.Equal(t, orig.Kind, r.Kind)
	assert.Equal(t, orig.CreatedAt, r.CreatedAt)
	assert.Equal(t, later, r.UpdatedAt)
	assert.Equal(t, "Journal", r.Title)
	assert.Equal(t, "c2", r.Fields[FieldContent])
}

func TestApply_InvalidLeavesRecordUntouched(t *testing.T) {
	r, err := NewRecord("u-1", KindNote, "Diary", "", Fields{FieldContent: "c1"}, fixedNow)
	require.NoError(t, err)
	before := r.Clone()

	err = r.Apply("", "", Fields{FieldContent: "c2"}, fixedNow.Add(time.Minute))
	require.ErrorIs(t, err, common.ErrMissingTitle)

	err = r.Apply("Diary", "", Fields{FieldCVV: "1"}, fixedNow.Add(time.Minute))
	require.ErrorIs(t, err, common.ErrUnknownField)

	assert.Equal(t, before, r)
}

func TestValidate(t *testing.T) {
	good, err := NewRecord("u-1", KindCard, "Visa", "", Fields{FieldCardNumber: "x"}, fixedNow)
	require.NoError(t, err)
	require.NoError(t, good.Validate())

	noID := good.Clone()
	noID.ID = ""
	require.ErrorIs(t, noID.Validate(), common.ErrCorruptStore)

	noOwner := good.Clone()
	noOwner.OwnerID = ""
	require.ErrorIs(t, noOwner.Validate(), common.ErrCorruptStore)

	badKind := good.Clone()
	badKind.Kind = "wifi"
	require.ErrorIs(t, badKind.Validate(), common.ErrUnknownKind)

	offSchema := good.Clone()
	offSchema.Fields[FieldContent] = "x"
	require.ErrorIs(t, offSchema.Validate(), common.ErrUnknownField)
}

func TestVaultRecord_JSONShape(t *testing.T) {
	r := VaultRecord{
		ID:        "id-1",
		OwnerID:   "u-1",
		Kind:      KindNote,
		Title:     "T",
		Encrypted: true,
		Fields:    Fields{FieldContent: "ct"},
		CreatedAt: fixedNow,
		UpdatedAt: fixedNow,
	}
	b, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, key := range []string{"id", "ownerId", "kind", "title", "encrypted", "fields", "createdAt", "updatedAt"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "2024-05-01T12:00:00Z", raw["createdAt"])
}

func TestTyped(t *testing.T) {
	card := CardFields{CardholderName: "J", CardNumber: "4111", ExpiryMonth: "12", ExpiryYear: "2030", CVV: "123", Notes: "n"}
	got, err := Typed(KindCard, card.Fields())
	require.NoError(t, err)
	assert.Equal(t, card, got)

	pw := PasswordFields{Username: "a@b.com", Password: "p"}
	got, err = Typed(KindPassword, pw.Fields())
	require.NoError(t, err)
	assert.Equal(t, pw, got)

	got, err = Typed(KindNote, Fields{FieldContent: "hi"})
	require.NoError(t, err)
	assert.Equal(t, NoteFields{Content: "hi"}, got)

	_, err = Typed(Kind("x"), nil)
	require.ErrorIs(t, err, common.ErrUnknownKind)
}
