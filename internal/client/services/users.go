package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/inmobix/internal/client/client"
	"github.com/dmitrijs2005/inmobix/internal/client/forms"
	"github.com/dmitrijs2005/inmobix/internal/client/models"
	"github.com/dmitrijs2005/inmobix/internal/client/workflow"
	"github.com/dmitrijs2005/inmobix/internal/logging"
)

// UserService covers the profile of the signed-in user, the admin console
// lookups and report downloads.
//
// Profile edits and account deletion are two-step: Request* asks the
// backend to email a token, Provide* records a token typed in by the user,
// Confirm* submits it. The tokens of these flows are kept in memory only.
type UserService interface {
	Get(ctx context.Context, id string) (*models.Identity, error)
	// Profile refreshes the signed-in user's identity from the backend.
	Profile(ctx context.Context) (*models.Identity, error)
	List(ctx context.Context) ([]models.Identity, error)
	FindByDocument(ctx context.Context, form forms.DocumentSearch) (*models.Identity, error)

	RequestEdit(ctx context.Context) (string, error)
	ProvideEditToken(ctx context.Context, token string) error
	ConfirmEdit(ctx context.Context, form forms.Profile) (*models.Identity, error)
	CancelEdit(ctx context.Context) error
	EditState() workflow.State

	RequestDelete(ctx context.Context) (string, error)
	ProvideDeleteToken(ctx context.Context, token string) error
	ConfirmDelete(ctx context.Context) (string, error)
	CancelDelete(ctx context.Context) error
	DeleteState() workflow.State

	DownloadReport(ctx context.Context, userID string, format models.ReportFormat) (*models.Report, string, error)

	// Reset forgets pending edit/delete tokens, e.g. after a logout.
	Reset()
}

type userService struct {
	api        client.UserAPI
	session    Session
	log        logging.Logger
	reportsDir string
	now        func() time.Time

	edit   *workflow.Workflow
	delete *workflow.Workflow
}

func NewUserService(api client.UserAPI, session Session, reportsDir string, log logging.Logger) UserService {
	if log == nil {
		log = logging.Nop()
	}
	return &userService{
		api:        api,
		session:    session,
		log:        log.With("service", "users"),
		reportsDir: reportsDir,
		now:        time.Now,
		edit:       workflow.New(workflow.KindEditProfile, nil),
		delete:     workflow.New(workflow.KindDeleteAccount, nil),
	}
}

func (u *userService) signedIn() (string, error) {
	id := u.session.UserID()
	if id == "" {
		return "", ErrNotSignedIn
	}
	return id, nil
}

func (u *userService) Get(ctx context.Context, id string) (*models.Identity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, forms.ValidationErrors{{Field: "id", Message: "is required"}}
	}
	user, err := u.api.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

func (u *userService) Profile(ctx context.Context) (*models.Identity, error) {
	id, err := u.signedIn()
	if err != nil {
		return nil, err
	}
	user, err := u.api.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if err := u.session.UpdateIdentity(ctx, *user); err != nil {
		return nil, err
	}
	return u.session.Identity(), nil
}

func (u *userService) List(ctx context.Context) ([]models.Identity, error) {
	users, err := u.api.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (u *userService) FindByDocument(ctx context.Context, form forms.DocumentSearch) (*models.Identity, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}
	user, err := u.api.FindUserByDocument(ctx, strings.TrimSpace(form.Document))
	if err != nil {
		return nil, fmt.Errorf("find user by document: %w", err)
	}
	return user, nil
}

func (u *userService) RequestEdit(ctx context.Context) (string, error) {
	id, err := u.signedIn()
	if err != nil {
		return "", err
	}

	var msg string
	err = u.edit.Request(ctx, func(ctx context.Context) (string, error) {
		ack, err := u.api.RequestEdit(ctx, id)
		if err != nil {
			return "", err
		}
		msg = ack.Message
		return ack.Token, nil
	})
	if err != nil {
		return "", fmt.Errorf("request edit token: %w", err)
	}
	return msg, nil
}

func (u *userService) ProvideEditToken(ctx context.Context, token string) error {
	return u.edit.Provide(ctx, strings.TrimSpace(token))
}

// ConfirmEdit submits the profile changes with the held edit token and
// refreshes the session identity from the response, or from the submitted
// changes when the response carries no profile.
func (u *userService) ConfirmEdit(ctx context.Context, form forms.Profile) (*models.Identity, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	req := form.Request()
	var updated *models.Identity
	err := u.edit.Confirm(ctx, func(ctx context.Context, token string) error {
		var err error
		updated, err = u.api.ConfirmEdit(ctx, token, req)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("confirm edit: %w", err)
	}

	change := req.Identity()
	if updated != nil && updated.ID != "" {
		change = *updated
	}
	if err := u.session.UpdateIdentity(ctx, change); err != nil {
		return nil, err
	}
	return u.session.Identity(), nil
}

func (u *userService) CancelEdit(ctx context.Context) error {
	return u.edit.Abandon(ctx)
}

func (u *userService) EditState() workflow.State {
	return u.edit.State()
}

func (u *userService) RequestDelete(ctx context.Context) (string, error) {
	id, err := u.signedIn()
	if err != nil {
		return "", err
	}

	var msg string
	err = u.delete.Request(ctx, func(ctx context.Context) (string, error) {
		ack, err := u.api.RequestDelete(ctx, id)
		if err != nil {
			return "", err
		}
		msg = ack.Message
		return ack.Token, nil
	})
	if err != nil {
		return "", fmt.Errorf("request delete token: %w", err)
	}
	return msg, nil
}

func (u *userService) ProvideDeleteToken(ctx context.Context, token string) error {
	return u.delete.Provide(ctx, strings.TrimSpace(token))
}

// ConfirmDelete deletes the account with the held delete token and signs
// out.
func (u *userService) ConfirmDelete(ctx context.Context) (string, error) {
	var msg string
	err := u.delete.Confirm(ctx, func(ctx context.Context, token string) error {
		var err error
		msg, err = u.api.ConfirmDelete(ctx, token)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("confirm delete: %w", err)
	}

	u.log.Info(ctx, "account deleted")
	if err := u.session.Logout(ctx); err != nil {
		return "", err
	}
	return msg, nil
}

func (u *userService) CancelDelete(ctx context.Context) error {
	return u.delete.Abandon(ctx)
}

func (u *userService) DeleteState() workflow.State {
	return u.delete.State()
}

func (u *userService) Reset() {
	u.edit.Reset()
	u.delete.Reset()
}
