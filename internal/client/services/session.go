package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/inmobix/internal/client/models"
	"github.com/dmitrijs2005/inmobix/internal/client/session"
	"github.com/dmitrijs2005/inmobix/internal/client/workflow"
)

var ErrNotSignedIn = errors.New("not signed in")

// Session is the part of the session store the services depend on.
type Session interface {
	workflow.TokenStore

	SetSession(ctx context.Context, identity models.Identity) error
	UpdateIdentity(ctx context.Context, identity models.Identity) error
	Logout(ctx context.Context) error
	Identity() *models.Identity
	UserID() string

	PendingEmail() string
	SetPendingEmail(ctx context.Context, email string) error
	ClearPendingEmail(ctx context.Context) error
}

// Resetter is implemented by the services that hold confirmation tokens
// in memory.
type Resetter interface {
	Reset()
}

// ResetOnSignOut resets every flow once the session ends, whether through
// Logout or because the account was deleted. Call cancel on shutdown.
func ResetOnSignOut(store *session.Store, flows ...Resetter) (cancel func()) {
	return store.Subscribe(func(id *models.Identity) {
		if id != nil {
			return
		}
		for _, f := range flows {
			f.Reset()
		}
	})
}
