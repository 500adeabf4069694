// Package controller coordinates the vault: it gates every operation on the
// session's master secret, encrypts and decrypts field values and persists
// the owner's collection through the store.
//
// The view layer talks to the Controller only. One intent runs at a time.
package controller

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/safetrace/internal/client/models"
	"github.com/dmitrijs2005/safetrace/internal/common"
	"github.com/dmitrijs2005/safetrace/internal/cryptox"
	"github.com/dmitrijs2005/safetrace/internal/logging"
)

// Store loads and saves the whole collection of one owner.
type Store interface {
	Load(ctx context.Context, ownerID string) ([]models.VaultRecord, error)
	SaveAll(ctx context.Context, ownerID string, records []models.VaultRecord) error
}

// KeyHolder is the session's master secret holder.
type KeyHolder interface {
	OwnerID() string
	SetMasterSecret(secret []byte) error
	IsUnlocked() bool
	Secret() ([]byte, error)
	Clear()
}

// State of the single add/edit form.
type State int

const (
	StateIdle State = iota
	StateEditingNew
	StateEditingExisting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditingNew:
		return "editing (new)"
	case StateEditingExisting:
		return "editing"
	default:
		return "unknown"
	}
}

// Form holds plaintext values while a record is being added or edited.
// RecordID is empty for a new record.
type Form struct {
	RecordID    string
	Kind        models.Kind
	Title       string
	Description string
	Fields      models.Fields
}

func (f Form) clone() Form {
	f.Fields = f.Fields.Clone()
	return f
}

// RecordView is a decrypted record ready for display. Fields that could not
// be decrypted hold cryptox.DecryptionFailedSentinel and are listed in Failed.
type RecordView struct {
	ID          string
	Kind        models.Kind
	Title       string
	Description string
	Fields      models.Fields
	Failed      []string
	Revealed    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Controller struct {
	mu sync.Mutex

	keys  KeyHolder
	store Store
	clip  Clipboard
	log   logging.Logger
	now   func() time.Time

	records  []models.VaultRecord
	form     *Form
	state    State
	revealed map[string]bool

	// undecrypted names the fields of the open form that were shown as the
	// sentinel. Their stored ciphertext is kept unless the user replaces them.
	undecrypted map[string]bool
}

type Option func(*Controller)

func WithClipboard(c Clipboard) Option {
	return func(ctl *Controller) { ctl.clip = c }
}

func WithLogger(l logging.Logger) Option {
	return func(ctl *Controller) { ctl.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(ctl *Controller) { ctl.now = now }
}

func New(keys KeyHolder, store Store, opts ...Option) *Controller {
	c := &Controller{
		keys:     keys,
		store:    store,
		clip:     SystemClipboard{},
		log:      logging.Nop{},
		now:      time.Now,
		records:  []models.VaultRecord{},
		revealed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) OwnerID() string {
	return c.keys.OwnerID()
}

// Open loads the owner's collection. A corrupt stored collection is replaced
// by an empty one in memory and ErrCorruptStore is still returned so the
// caller can warn.
func (c *Controller) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.store.Load(ctx, c.keys.OwnerID())
	if errors.Is(err, common.ErrCorruptStore) {
		c.log.Warn(ctx, "stored vault is corrupt, starting empty", "owner", c.keys.OwnerID())
		c.records = []models.VaultRecord{}
		return err
	}
	if err != nil {
		return err
	}

	c.records = records
	c.log.Info(ctx, "vault opened", "owner", c.keys.OwnerID(), "records", len(records))
	return nil
}

func (c *Controller) SetMasterSecret(secret []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keys.SetMasterSecret(secret)
}

func (c *Controller) IsUnlocked() bool {
	return c.keys.IsUnlocked()
}

// Add opens a blank form for a new record of kind.
func (c *Controller) Add(kind models.Kind) (Form, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.keys.IsUnlocked() {
		return Form{}, common.ErrVaultLocked
	}
	if !kind.Valid() {
		return Form{}, fmt.Errorf("%q: %w", kind, common.ErrUnknownKind)
	}

	c.form = &Form{Kind: kind, Fields: models.BlankFields(kind)}
	c.undecrypted = nil
	c.state = StateEditingNew
	return c.form.clone(), nil
}

// Edit opens a form pre-filled with the decrypted values of record id.
// A field that fails to decrypt is shown as the sentinel; the form still opens.
func (c *Controller) Edit(id string) (Form, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	secret, err := c.keys.Secret()
	if err != nil {
		return Form{}, err
	}
	defer common.WipeByteArray(secret)

	idx := c.indexOf(id)
	if idx < 0 {
		return Form{}, fmt.Errorf("record %s: %w", id, common.ErrorNotFound)
	}
	rec := c.records[idx]

	plain, failed := decryptFields(rec, secret)
	c.undecrypted = make(map[string]bool, len(failed))
	for _, name := range failed {
		c.undecrypted[name] = true
	}
	c.form = &Form{
		RecordID:    rec.ID,
		Kind:        rec.Kind,
		Title:       rec.Title,
		Description: rec.Description,
		Fields:      plain,
	}
	c.state = StateEditingExisting
	return c.form.clone(), nil
}

// CurrentForm returns the open form, if any.
func (c *Controller) CurrentForm() (Form, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form == nil {
		return Form{}, false
	}
	return c.form.clone(), true
}

// Submit validates f, encrypts its values and persists the collection.
//
// On a validation or persistence error the form stays open with f's values
// and the in-memory collection is unchanged.
func (c *Controller) Submit(ctx context.Context, f Form) (models.VaultRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	secret, err := c.keys.Secret()
	if err != nil {
		return models.VaultRecord{}, err
	}
	defer common.WipeByteArray(secret)

	if c.form == nil {
		return models.VaultRecord{}, common.ErrNotEditing
	}
	if f.RecordID != c.form.RecordID {
		return models.VaultRecord{}, fmt.Errorf("form is for %q: %w", c.form.RecordID, common.ErrNotEditing)
	}
	if f.RecordID != "" && f.Kind != c.form.Kind {
		return models.VaultRecord{}, common.ErrKindChange
	}
	if !f.Kind.Valid() {
		return models.VaultRecord{}, fmt.Errorf("%q: %w", f.Kind, common.ErrUnknownKind)
	}

	kept := f.clone()
	c.form = &kept

	if strings.TrimSpace(f.Title) == "" {
		return models.VaultRecord{}, common.ErrMissingTitle
	}
	for name := range f.Fields {
		if !f.Kind.Allows(name) {
			return models.VaultRecord{}, fmt.Errorf("%s on %s: %w", name, f.Kind, common.ErrUnknownField)
		}
	}

	enc := make(models.Fields, len(f.Fields))
	for name, value := range f.Fields {
		if ct, ok := c.storedCiphertext(f.RecordID, name, value); ok {
			enc[name] = ct
			continue
		}
		ct, err := cryptox.Encrypt(value, secret)
		if err != nil {
			return models.VaultRecord{}, fmt.Errorf("field %s: %w", name, err)
		}
		enc[name] = ct
	}

	owner := c.keys.OwnerID()
	var (
		rec  models.VaultRecord
		next []models.VaultRecord
	)
	if f.RecordID == "" {
		rec, err = models.NewRecord(owner, f.Kind, f.Title, f.Description, enc, c.now())
		if err != nil {
			return models.VaultRecord{}, err
		}
		next = append(c.snapshot(), rec)
	} else {
		idx := c.indexOf(f.RecordID)
		if idx < 0 {
			return models.VaultRecord{}, fmt.Errorf("record %s: %w", f.RecordID, common.ErrorNotFound)
		}
		rec = c.records[idx].Clone()
		if err := rec.Apply(f.Title, f.Description, enc, c.now()); err != nil {
			return models.VaultRecord{}, err
		}
		next = c.snapshot()
		next[idx] = rec
	}

	if err := c.store.SaveAll(ctx, owner, next); err != nil {
		c.log.Warn(ctx, "record not saved", "owner", owner, "record", rec.ID, "err", err)
		return models.VaultRecord{}, err
	}

	c.records = next
	c.form = nil
	c.undecrypted = nil
	c.state = StateIdle
	c.log.Info(ctx, "record saved", "owner", owner, "record", rec.ID, "kind", rec.Kind)
	return rec.Clone(), nil
}

// Cancel discards the open form.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = nil
	c.undecrypted = nil
	c.state = StateIdle
}

// Delete removes record id and persists the collection. Deleting an unknown
// id does nothing and writes nothing.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return nil
	}

	next := slices.Delete(c.snapshot(), idx, idx+1)
	owner := c.keys.OwnerID()
	if err := c.store.SaveAll(ctx, owner, next); err != nil {
		c.log.Warn(ctx, "record not deleted", "owner", owner, "record", id, "err", err)
		return err
	}

	c.records = next
	delete(c.revealed, id)
	if c.form != nil && c.form.RecordID == id {
		c.form = nil
		c.undecrypted = nil
		c.state = StateIdle
	}
	c.log.Info(ctx, "record deleted", "owner", owner, "record", id)
	return nil
}

// Reveal marks the sensitive fields of record id as visible.
func (c *Controller) Reveal(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(id) < 0 {
		return fmt.Errorf("record %s: %w", id, common.ErrorNotFound)
	}
	c.revealed[id] = true
	return nil
}

func (c *Controller) Hide(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.revealed, id)
}

func (c *Controller) Revealed(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revealed[id]
}

// View decrypts record id for display.
func (c *Controller) View(id string) (RecordView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	secret, err := c.keys.Secret()
	if err != nil {
		return RecordView{}, err
	}
	defer common.WipeByteArray(secret)

	idx := c.indexOf(id)
	if idx < 0 {
		return RecordView{}, fmt.Errorf("record %s: %w", id, common.ErrorNotFound)
	}
	rec := c.records[idx]

	plain, failed := decryptFields(rec, secret)
	return RecordView{
		ID:          rec.ID,
		Kind:        rec.Kind,
		Title:       rec.Title,
		Description: rec.Description,
		Fields:      plain,
		Failed:      failed,
		Revealed:    c.revealed[rec.ID],
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}, nil
}

// List returns a copy of the collection in insertion order. Field values
// are ciphertext.
func (c *Controller) List() []models.VaultRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// GeneratePassword returns a fresh random password. When a password form is
// open the value is also placed into its password field.
func (c *Controller) GeneratePassword(length int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pw, err := cryptox.GenerateSecurePassword(length)
	if err != nil {
		return "", err
	}
	if c.form != nil && c.form.Kind == models.KindPassword {
		c.form.Fields[models.FieldPassword] = pw
	}
	return pw, nil
}

// Strength scores a candidate password.
func (c *Controller) Strength(password string) cryptox.Strength {
	return cryptox.ScorePasswordStrength(password)
}

// SignOut forgets everything tied to the session: the master secret, the
// open form, the reveal flags and the cached collection.
func (c *Controller) SignOut() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.keys.Clear()
	c.records = []models.VaultRecord{}
	c.form = nil
	c.undecrypted = nil
	c.state = StateIdle
	clear(c.revealed)
}

// storedCiphertext returns the saved ciphertext of field name when the open
// form still carries the sentinel for a value that failed to decrypt.
func (c *Controller) storedCiphertext(id, name, value string) (string, bool) {
	if id == "" || value != cryptox.DecryptionFailedSentinel || !c.undecrypted[name] {
		return "", false
	}
	idx := c.indexOf(id)
	if idx < 0 {
		return "", false
	}
	ct, ok := c.records[idx].Fields[name]
	return ct, ok
}

func (c *Controller) indexOf(id string) int {
	return slices.IndexFunc(c.records, func(r models.VaultRecord) bool { return r.ID == id })
}

func (c *Controller) snapshot() []models.VaultRecord {
	out := make([]models.VaultRecord, len(c.records))
	for i, r := range c.records {
		out[i] = r.Clone()
	}
	return out
}

// decryptFields returns every schema field of rec in plaintext. Values that
// fail to decrypt become the sentinel and their names are returned sorted.
func decryptFields(rec models.VaultRecord, secret []byte) (models.Fields, []string) {
	out := models.BlankFields(rec.Kind)
	var failed []string
	for name, value := range rec.Fields {
		if !rec.Encrypted {
			out[name] = value
			continue
		}
		plain, err := cryptox.Decrypt(value, secret)
		if err != nil {
			out[name] = cryptox.DecryptionFailedSentinel
			failed = append(failed, name)
			continue
		}
		out[name] = plain
	}
	slices.Sort(failed)
	return out, failed
}
