package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/inmobix/internal/client/forms"
	"github.com/dmitrijs2005/inmobix/internal/client/workflow"
)

var errCancelled = errors.New("cancelled")

func (a *App) profile(ctx context.Context, _ []string) error {
	id, err := a.users.Profile(ctx)
	if err != nil {
		return err
	}
	renderIdentity(a.out, *id)
	return nil
}

// editProfile asks the backend for a confirmation token, collects the new
// profile values and submits them with the token.
func (a *App) editProfile(ctx context.Context, _ []string) error {
	if a.users.EditState() != workflow.StateTokenRequested {
		msg, err := a.users.RequestEdit(ctx)
		if err != nil {
			return err
		}
		a.success("Confirmation requested", msg, "Check your email for the confirmation token.")
	}

	if err := a.provideToken(ctx, a.users.ProvideEditToken); err != nil {
		if errors.Is(err, errCancelled) {
			return a.cancelEdit(ctx)
		}
		return err
	}

	current := forms.Profile{}
	if id := a.session.Identity(); id != nil {
		current = forms.ProfileFrom(*id)
	}

	fr := a.fields()
	f := forms.Profile{
		Name:      fr.text("Full name", current.Name),
		Username:  fr.text("Username", current.Username),
		Phone:     fr.text("Phone", current.Phone),
		BirthDate: fr.text("Birth date YYYY-MM-DD", current.BirthDate),
		Document:  fr.text("Document number", current.Document),
	}
	if err := fr.done(); err != nil {
		return err
	}

	ok, err := a.confirm("Apply these changes?", true)
	if err != nil {
		return err
	}
	if !ok {
		return a.cancelEdit(ctx)
	}

	id, err := a.users.ConfirmEdit(ctx, f)
	if err != nil {
		return err
	}
	a.success("Profile updated")
	renderIdentity(a.out, *id)
	return nil
}

func (a *App) cancelEdit(ctx context.Context) error {
	if err := a.users.CancelEdit(ctx); err != nil {
		return err
	}
	a.warn("Profile edit cancelled.")
	return nil
}

// deleteAccount deletes the account after an explicit confirmation and the
// emailed token. The session ends on success.
func (a *App) deleteAccount(ctx context.Context, _ []string) error {
	ok, err := a.confirm("This permanently deletes your account and cannot be undone. Continue?", false)
	if err != nil {
		return err
	}
	if !ok {
		a.warn("Account deletion cancelled.")
		return nil
	}

	if a.users.DeleteState() != workflow.StateTokenRequested {
		msg, err := a.users.RequestDelete(ctx)
		if err != nil {
			return err
		}
		a.success("Confirmation requested", msg, "Check your email for the confirmation token.")
	}

	if err := a.provideToken(ctx, a.users.ProvideDeleteToken); err != nil {
		if errors.Is(err, errCancelled) {
			if cerr := a.users.CancelDelete(ctx); cerr != nil {
				return cerr
			}
			a.warn("Account deletion cancelled.")
			return nil
		}
		return err
	}

	msg, err := a.users.ConfirmDelete(ctx)
	if err != nil {
		return err
	}
	a.success("Account deleted", msg, "You have been signed out.")
	return nil
}

// provideToken asks for the emailed token. Enter keeps a token already
// held; "cancel" aborts with errCancelled.
func (a *App) provideToken(ctx context.Context, provide func(context.Context, string) error) error {
	tok, err := a.ask("Confirmation token from the email (Enter to keep the current one, 'cancel' to stop)")
	if err != nil {
		return err
	}
	if tok == "cancel" {
		return errCancelled
	}
	return provide(ctx, tok)
}
