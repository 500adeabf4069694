package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/safetrace/internal/client/controller"
	"github.com/dmitrijs2005/safetrace/internal/client/models"
	"github.com/dmitrijs2005/safetrace/internal/client/session"
	"github.com/dmitrijs2005/safetrace/internal/client/store"
	"github.com/dmitrijs2005/safetrace/internal/common"
	"github.com/dmitrijs2005/safetrace/internal/cryptox"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var fieldLabels = map[string]string{
	models.FieldUsername:       "Username",
	models.FieldPassword:       "Password",
	models.FieldURL:            "URL",
	models.FieldNotes:          "Notes",
	models.FieldCardholderName: "Cardholder name",
	models.FieldCardNumber:     "Card number",
	models.FieldExpiryMonth:    "Expiry month",
	models.FieldExpiryYear:     "Expiry year",
	models.FieldCVV:            "CVV",
	models.FieldContent:        "Content",
}

func fieldLabel(name string) string {
	if l, ok := fieldLabels[name]; ok {
		return l
	}
	return name
}

// SignIn opens the vault of the named user. It stands in for the external
// identity provider: args are user id, optional display name and email.
func (a *App) SignIn(ctx context.Context, args []string) error {
	if a.signedIn() {
		return fmt.Errorf("already signed in as %s, sign out first", a.identity.UserID)
	}

	id := models.Identity{}
	if len(args) > 0 {
		id.UserID = args[0]
	} else {
		userID, err := getSimpleText(a.reader, "User id", a.out)
		if err != nil {
			return err
		}
		id.UserID = userID
	}
	if id.UserID == "" {
		return errors.New("user id is required")
	}
	if len(args) > 1 {
		id.DisplayName = args[1]
	}
	if len(args) > 2 {
		id.Email = args[2]
	}

	opts := []controller.Option{controller.WithLogger(a.log.With("owner", id.UserID))}
	if a.clipboard != nil {
		opts = append(opts, controller.WithClipboard(a.clipboard))
	}
	ctl := controller.New(session.New(id.UserID), store.New(a.backend, a.log), opts...)

	if err := ctl.Open(ctx); err != nil {
		if !errors.Is(err, common.ErrCorruptStore) {
			return err
		}
		fmt.Fprintln(a.out, warnText.Sprint("Your stored vault could not be read and was reset to empty."))
	}

	a.ctl = ctl
	a.identity = &id

	name := id.UserID
	if id.DisplayName != "" {
		name = id.DisplayName
	}
	fmt.Fprintln(a.out, successText.Sprintf("Signed in as %s (%d records).", name, len(ctl.List())))
	fmt.Fprintln(a.out, "Set your master password with 'master' to read or add records.")
	return nil
}

// SignOut ends the session and forgets the master password.
func (a *App) SignOut(ctx context.Context) error {
	a.ctl.SignOut()
	a.log.Info(ctx, "signed out", "owner", a.identity.UserID)
	a.ctl = nil
	a.identity = nil
	fmt.Fprintln(a.out, successText.Sprint("Signed out."))
	return nil
}

// Master reads the master password without echo and unlocks the vault.
func (a *App) Master(ctx context.Context) error {
	secret, err := getPassword(a.out, "Master password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	if err := a.ctl.SetMasterSecret(secret); err != nil {
		return err
	}
	fmt.Fprintln(a.out, successText.Sprint("Vault unlocked."))
	return nil
}

// Add walks the user through a new record of the given kind.
func (a *App) Add(ctx context.Context, args []string) error {
	var kindName string
	if len(args) > 0 {
		kindName = args[0]
	} else {
		k, err := getSimpleText(a.reader, "Kind (password, card, note)", a.out)
		if err != nil {
			return err
		}
		kindName = k
	}
	kind, err := models.ParseKind(kindName)
	if err != nil {
		return err
	}

	form, err := a.ctl.Add(kind)
	if err != nil {
		return err
	}
	if err := a.fillForm(&form, false); err != nil {
		a.ctl.Cancel()
		return err
	}
	return a.submit(ctx, form)
}

// Edit re-opens an existing record with its decrypted values. Empty input
// keeps the current value.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "edit <id>")
	if err != nil {
		return err
	}
	form, err := a.ctl.Edit(id)
	if err != nil {
		return err
	}
	if err := a.fillForm(&form, true); err != nil {
		a.ctl.Cancel()
		return err
	}
	return a.submit(ctx, form)
}

func (a *App) fillForm(form *controller.Form, editing bool) error {
	prompt := func(label, current string, sensitive bool) string {
		if !editing || current == "" {
			return label
		}
		if sensitive {
			return fmt.Sprintf("%s [%s]", label, maskedValue)
		}
		return fmt.Sprintf("%s [%s]", label, current)
	}
	read := func(label, current string, sensitive bool) (string, error) {
		v, err := getSimpleText(a.reader, prompt(label, current, sensitive), a.out)
		if err != nil {
			return "", err
		}
		if editing && v == "" {
			return current, nil
		}
		return v, nil
	}

	var err error
	if form.Title, err = read("Title", form.Title, false); err != nil {
		return err
	}
	if form.Description, err = read("Description", form.Description, false); err != nil {
		return err
	}

	for _, name := range form.Kind.Schema() {
		current := form.Fields[name]
		sensitive := form.Kind.Sensitive(name)

		switch {
		case name == models.FieldContent:
			text, err := GetMultiline(a.reader, prompt(fieldLabel(name), current, sensitive), a.out)
			if err != nil {
				return err
			}
			if !editing || text != "" {
				form.Fields[name] = text
			}

		case form.Kind == models.KindPassword && name == models.FieldPassword:
			v, err := read(fieldLabel(name)+" (type 'gen' to generate)", current, sensitive)
			if err != nil {
				return err
			}
			if v == "gen" {
				if v, err = a.ctl.GeneratePassword(cryptox.DefaultPasswordLength); err != nil {
					return err
				}
				fmt.Fprintln(a.out, successText.Sprintf("Generated a %d-character password.", len(v)))
			}
			form.Fields[name] = v
			a.printStrength(cryptox.ScorePasswordStrength(v))

		default:
			v, err := read(fieldLabel(name), current, sensitive)
			if err != nil {
				return err
			}
			form.Fields[name] = v
		}
	}
	return nil
}

// submit saves the form. A missing title or an unreachable store keeps the
// form open and lets the user retry.
func (a *App) submit(ctx context.Context, form controller.Form) error {
	for {
		rec, err := a.ctl.Submit(ctx, form)
		switch {
		case err == nil:
			fmt.Fprintln(a.out, successText.Sprintf("Saved %q (%s).", rec.Title, shortID(rec.ID)))
			return nil

		case errors.Is(err, common.ErrMissingTitle):
			fmt.Fprintln(a.out, errorText.Sprint(err.Error()))
			title, rerr := getSimpleText(a.reader, "Title (empty to cancel)", a.out)
			if rerr != nil || title == "" {
				a.ctl.Cancel()
				return err
			}
			form.Title = title

		case errors.Is(err, common.ErrStoreUnavailable):
			fmt.Fprintln(a.out, errorText.Sprint(err.Error()))
			if !confirm(a.reader, "Retry saving?", a.out) {
				a.ctl.Cancel()
				return err
			}

		default:
			a.ctl.Cancel()
			return err
		}
	}
}

// Delete removes a record after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "delete <id>")
	if err != nil {
		return err
	}
	title := id
	for _, r := range a.ctl.List() {
		if r.ID == id {
			title = r.Title
		}
	}
	if !confirm(a.reader, fmt.Sprintf("Delete %q?", title), a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.ctl.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, successText.Sprintf("Deleted %q.", title))
	return nil
}

// List prints one line per record. Nothing is decrypted.
func (a *App) List(ctx context.Context) error {
	records := a.ctl.List()
	if len(records) == 0 {
		fmt.Fprintln(a.out, dimText.Sprint("No records yet. Add one with 'add password', 'add card' or 'add note'."))
		return nil
	}
	for i, r := range records {
		fmt.Fprintf(a.out, "%3d  %s  %-8s  %s  %s\n",
			i+1, shortID(r.ID), r.Kind, labelText.Sprint(r.Title),
			dimText.Sprint(r.UpdatedAt.Local().Format("2006-01-02 15:04")))
	}
	return nil
}

// Show prints a decrypted record; sensitive fields stay masked until revealed.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "show <id>")
	if err != nil {
		return err
	}
	view, err := a.ctl.View(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s  %s  %s\n", labelText.Sprint(view.Title), view.Kind, dimText.Sprint(view.ID))
	if view.Description != "" {
		fmt.Fprintln(a.out, view.Description)
	}
	for _, name := range view.Kind.Schema() {
		value := view.Fields[name]
		if value == "" {
			continue
		}
		switch {
		case value == cryptox.DecryptionFailedSentinel:
			value = warnText.Sprint(value)
		case view.Kind.Sensitive(name) && !view.Revealed:
			value = maskedValue
		}
		fmt.Fprintf(a.out, "  %-16s %s\n", fieldLabel(name)+":", value)
	}
	if len(view.Failed) > 0 {
		fmt.Fprintln(a.out, warnText.Sprint("Some fields could not be decrypted. Was a different master password used?"))
	}
	return nil
}

func (a *App) Reveal(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "reveal <id>")
	if err != nil {
		return err
	}
	if err := a.ctl.Reveal(id); err != nil {
		return err
	}
	return a.Show(ctx, []string{id})
}

func (a *App) Hide(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "hide <id>")
	if err != nil {
		return err
	}
	a.ctl.Hide(id)
	return a.Show(ctx, []string{id})
}

// Copy places one decrypted field on the clipboard.
func (a *App) Copy(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: copy <id> <field>")
	}
	id, err := a.resolveID(args[:1], "copy <id> <field>")
	if err != nil {
		return err
	}
	view, err := a.ctl.View(id)
	if err != nil {
		return err
	}
	field := args[1]
	if !view.Kind.Allows(field) {
		return fmt.Errorf("%s has no field %q (fields: %s)", view.Kind, field, strings.Join(view.Kind.Schema(), ", "))
	}
	value := view.Fields[field]
	if value == cryptox.DecryptionFailedSentinel {
		return common.ErrDecryptionFailed
	}
	if err := a.ctl.CopyField(value); err != nil {
		return err
	}
	fmt.Fprintln(a.out, successText.Sprintf("%s copied to clipboard.", fieldLabel(field)))
	return nil
}

// Generate prints a random password of the requested length.
func (a *App) Generate(ctx context.Context, args []string) error {
	length := cryptox.DefaultPasswordLength
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid length %q", args[0])
		}
		length = n
	}

	var (
		pw  string
		err error
	)
	if a.ctl != nil {
		pw, err = a.ctl.GeneratePassword(length)
	} else {
		pw, err = cryptox.GenerateSecurePassword(length)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, pw)
	return nil
}

// Strength scores a password typed without echo.
func (a *App) Strength(ctx context.Context) error {
	pw, err := getPassword(a.out, "Password to check")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	a.printStrength(cryptox.ScorePasswordStrength(string(pw)))
	return nil
}

func (a *App) printStrength(s cryptox.Strength) {
	f := warnText
	verdict := "weak"
	if s.IsStrong {
		f, verdict = successText, "strong"
	}
	fmt.Fprintln(a.out, f.Sprintf("Strength: %s (score %d/5)", verdict, s.Score))
	if !s.IsStrong {
		for _, r := range s.Reasons {
			fmt.Fprintln(a.out, "  - "+r)
		}
	}
}

// resolveID accepts a 1-based list position, a full id or a unique id prefix.
func (a *App) resolveID(args []string, usage string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: %s", usage)
	}
	ref := args[0]
	records := a.ctl.List()

	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(records) {
			return records[n-1].ID, nil
		}
		return "", fmt.Errorf("no record #%d: %w", n, common.ErrorNotFound)
	}

	var match string
	for _, r := range records {
		if r.ID == ref {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", ref)
			}
			match = r.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("record %s: %w", ref, common.ErrorNotFound)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
