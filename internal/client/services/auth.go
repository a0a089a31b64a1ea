package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/inmobix/internal/client/client"
	"github.com/dmitrijs2005/inmobix/internal/client/forms"
	"github.com/dmitrijs2005/inmobix/internal/client/models"
	"github.com/dmitrijs2005/inmobix/internal/client/workflow"
	"github.com/dmitrijs2005/inmobix/internal/logging"
)

var ErrEmailMissing = errors.New("no email address to send the verification to")

// AuthService defines the account operations of the CLI.
//
// Contract:
//   - Login: authenticate and store the session.
//   - Register: create an account; the address is remembered until it is
//     verified, together with any verification token echoed back.
//   - VerifyEmail / ResendVerification: confirm or reissue the
//     verification token.
//   - ForgotPassword / ResetPassword: the password reset flow.
//   - Logout: drop the session and every pending confirmation.
//   - Reset: forget pending tokens held in memory once the session has
//     ended some other way, e.g. after the account was deleted.
//
// Verification and reset tokens are persisted, so both flows survive a
// restart once Restore has run.
type AuthService interface {
	Restore(ctx context.Context) error
	Login(ctx context.Context, form forms.Login) (*models.Identity, error)
	Register(ctx context.Context, form forms.Register) (*models.Identity, error)
	VerifyEmail(ctx context.Context, form forms.Verify) (string, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	ForgotPassword(ctx context.Context, form forms.ForgotPassword) (string, error)
	ResetPassword(ctx context.Context, form forms.ResetPassword) (string, error)
	Logout(ctx context.Context) error
	Reset()
	VerificationState() workflow.State
	ResetState() workflow.State
}

type authService struct {
	api          client.AuthAPI
	session      Session
	log          logging.Logger
	verification *workflow.Workflow
	reset        *workflow.Workflow
}

func NewAuthService(api client.AuthAPI, session Session, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{
		api:          api,
		session:      session,
		log:          log.With("service", "auth"),
		verification: workflow.New(workflow.KindVerification, session),
		reset:        workflow.New(workflow.KindPasswordReset, session),
	}
}

// Restore picks up verification and reset tokens saved by an earlier run.
func (a *authService) Restore(ctx context.Context) error {
	if err := a.verification.Restore(ctx); err != nil {
		return err
	}
	return a.reset.Restore(ctx)
}

func (a *authService) Login(ctx context.Context, form forms.Login) (*models.Identity, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	id, err := a.api.Login(ctx, form.Request())
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := a.session.SetSession(ctx, *id); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "signed in", "user_id", id.ID, "role", id.Role)
	return id, nil
}

func (a *authService) Register(ctx context.Context, form forms.Register) (*models.Identity, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	req := form.Request()
	var created *models.Identity
	err := a.verification.Request(ctx, func(ctx context.Context) (string, error) {
		id, err := a.api.Register(ctx, req)
		if err != nil {
			return "", err
		}
		created = id
		return id.VerificationToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	if err := a.session.SetPendingEmail(ctx, req.Email); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "account registered", "email", req.Email, "inline_token", created.VerificationToken != "")
	return created, nil
}

func (a *authService) VerifyEmail(ctx context.Context, form forms.Verify) (string, error) {
	if err := forms.Validate(form); err != nil {
		return "", err
	}
	if err := a.verification.Provide(ctx, strings.TrimSpace(form.Token)); err != nil {
		return "", err
	}

	var msg string
	err := a.verification.Confirm(ctx, func(ctx context.Context, token string) error {
		var err error
		msg, err = a.api.VerifyEmail(ctx, models.VerifyRequest{VerificationToken: token, Code: strings.TrimSpace(form.Code)})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("verify email: %w", err)
	}

	if err := a.session.ClearPendingEmail(ctx); err != nil {
		a.log.Warn(ctx, "failed to clear pending email", "error", err)
	}
	return msg, nil
}

// ResendVerification reissues the verification token for email, falling
// back to the address remembered at registration.
func (a *authService) ResendVerification(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		email = a.session.PendingEmail()
	}
	if email == "" {
		return "", ErrEmailMissing
	}
	if err := forms.Validate(forms.ForgotPassword{Email: email}); err != nil {
		return "", err
	}

	var msg string
	err := a.verification.Request(ctx, func(ctx context.Context) (string, error) {
		id, err := a.api.ResendVerification(ctx, models.ResendVerificationRequest{Email: email})
		if err != nil {
			return "", err
		}
		msg = id.Message
		return id.VerificationToken, nil
	})
	if err != nil {
		return "", fmt.Errorf("resend verification: %w", err)
	}

	if err := a.session.SetPendingEmail(ctx, email); err != nil {
		return "", err
	}
	return msg, nil
}

func (a *authService) ForgotPassword(ctx context.Context, form forms.ForgotPassword) (string, error) {
	if err := forms.Validate(form); err != nil {
		return "", err
	}

	var msg string
	err := a.reset.Request(ctx, func(ctx context.Context) (string, error) {
		ack, err := a.api.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: strings.TrimSpace(form.Email)})
		if err != nil {
			return "", err
		}
		msg = ack.Message
		return ack.Token, nil
	})
	if err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}
	return msg, nil
}

func (a *authService) ResetPassword(ctx context.Context, form forms.ResetPassword) (string, error) {
	if err := forms.Validate(form); err != nil {
		return "", err
	}
	if err := a.reset.Provide(ctx, strings.TrimSpace(form.Token)); err != nil {
		return "", err
	}

	var msg string
	err := a.reset.Confirm(ctx, func(ctx context.Context, token string) error {
		var err error
		msg, err = a.api.ResetPassword(ctx, models.ResetPasswordRequest{
			ResetPasswordToken: token,
			Code:               strings.TrimSpace(form.Code),
			NewPassword:        form.Password,
		})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}
	return msg, nil
}

// Logout clears the session. Storage is wiped by the session store, so the
// workflows only need to forget their in-memory tokens.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.Reset()
	return nil
}

func (a *authService) Reset() {
	a.verification.Reset()
	a.reset.Reset()
}

func (a *authService) VerificationState() workflow.State {
	return a.verification.State()
}

func (a *authService) ResetState() workflow.State {
	return a.reset.State()
}

// NeedsVerification reports whether a login failure is the backend
// refusing an account whose email is not verified yet.
func NeedsVerification(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "verifica") || strings.Contains(msg, "verify") || strings.Contains(msg, "verified")
}
