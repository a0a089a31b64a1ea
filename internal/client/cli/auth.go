package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/inmobix/internal/client/forms"
	"github.com/dmitrijs2005/inmobix/internal/client/services"
)

// register prompts for the account fields and creates the account. The
// user is not signed in until the email is verified and login succeeds.
func (a *App) register(ctx context.Context, _ []string) error {
	var (
		f   forms.Register
		err error
	)
	if f.Name, err = a.ask("Full name"); err != nil {
		return err
	}
	if f.Username, err = a.ask("Username"); err != nil {
		return err
	}
	if f.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if f.Password, err = a.askPassword("Password (at least 6 characters)"); err != nil {
		return err
	}
	if f.ConfirmPassword, err = a.askPassword("Repeat password"); err != nil {
		return err
	}
	if f.Document, err = a.ask("Document number"); err != nil {
		return err
	}
	if f.Phone, err = a.ask("Phone (optional)"); err != nil {
		return err
	}
	if f.BirthDate, err = a.ask("Birth date YYYY-MM-DD (optional)"); err != nil {
		return err
	}

	id, err := a.auth.Register(ctx, f)
	if err != nil {
		return err
	}

	a.success("Account created",
		id.Message,
		fmt.Sprintf("We sent a verification code to %s.", f.Email),
		"Run 'verify' to enter it, or 'resend' if it did not arrive.",
	)
	return nil
}

// login signs in. A rejection that mentions verification offers to send
// the verification email again.
func (a *App) login(ctx context.Context, _ []string) error {
	var (
		f   forms.Login
		err error
	)
	if f.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if f.Password, err = a.askPassword("Password"); err != nil {
		return err
	}

	id, err := a.auth.Login(ctx, f)
	if err != nil {
		if !services.NeedsVerification(err) {
			return err
		}
		reported := a.report(err)
		if ok, cerr := a.confirm("Your email is not verified yet. Send the verification email again?", true); cerr != nil || !ok {
			return reported
		}
		msg, rerr := a.auth.ResendVerification(ctx, f.Email)
		if rerr != nil {
			return rerr
		}
		a.success("Verification email sent", msg, "Run 'verify' with the code from the email.")
		return reported
	}

	name := id.Name
	if name == "" {
		name = id.Username
	}
	a.success(fmt.Sprintf("Welcome, %s", name), roleLine(id.Role))
	return nil
}

func roleLine(role string) string {
	if role == "" {
		return ""
	}
	return "Signed in as " + role
}

func (a *App) verify(ctx context.Context, args []string) error {
	var (
		f   forms.Verify
		err error
	)
	if email := a.session.PendingEmail(); email != "" {
		fmt.Fprintf(a.out, "Verifying %s\n", email)
	}
	if f.Token, err = a.ask("Verification token (press Enter to use the one on file)"); err != nil {
		return err
	}
	if f.Code, err = a.argOrAsk(args, 0, "6-digit code from the email"); err != nil {
		return err
	}

	msg, err := a.auth.VerifyEmail(ctx, f)
	if err != nil {
		return err
	}
	a.success("Email verified", msg, "You can now 'login'.")
	return nil
}

func (a *App) resend(ctx context.Context, args []string) error {
	email := ""
	if len(args) > 0 {
		email = args[0]
	}
	msg, err := a.auth.ResendVerification(ctx, email)
	if err != nil {
		return err
	}
	a.success("Verification email sent", msg)
	return nil
}

func (a *App) forgot(ctx context.Context, args []string) error {
	var (
		f   forms.ForgotPassword
		err error
	)
	if f.Email, err = a.argOrAsk(args, 0, "Email of the account"); err != nil {
		return err
	}

	msg, err := a.auth.ForgotPassword(ctx, f)
	if err != nil {
		return err
	}
	a.success("Password reset requested", msg, "Run 'reset' with the code from the email.")
	return nil
}

func (a *App) reset(ctx context.Context, _ []string) error {
	var (
		f   forms.ResetPassword
		err error
	)
	if f.Token, err = a.ask("Reset token (press Enter to use the one on file)"); err != nil {
		return err
	}
	if f.Code, err = a.ask("6-digit code from the email"); err != nil {
		return err
	}
	if f.Password, err = a.askPassword("New password (at least 8 characters)"); err != nil {
		return err
	}
	if f.ConfirmPassword, err = a.askPassword("Repeat new password"); err != nil {
		return err
	}

	msg, err := a.auth.ResetPassword(ctx, f)
	if err != nil {
		return err
	}
	a.success("Password changed", msg, "You can now 'login' with the new password.")
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.success("Signed out")
	return nil
}

func (a *App) whoami(_ context.Context, _ []string) error {
	id := a.session.Identity()
	if id == nil {
		return ErrLoginRequired
	}
	renderIdentity(a.out, *id)

	if exp, ok := a.session.TokenExpiry(); ok {
		left := time.Until(exp).Round(time.Minute)
		if left > 0 {
			fmt.Fprintf(a.out, "Session expires %s (in %s)\n", exp.Local().Format(time.DateTime), left)
		} else {
			fmt.Fprintf(a.out, "Session token expired %s\n", exp.Local().Format(time.DateTime))
		}
	}
	return nil
}
