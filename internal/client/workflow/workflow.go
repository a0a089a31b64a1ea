// Package workflow implements the two-step confirmation flow shared by
// email verification, password reset, profile edit and account deletion:
// ask the backend to issue a token, then submit the token with the action
// payload.
//
//	idle ──Request/Provide──▶ token_requested ──Confirm──▶ confirmed
//	                 │
//	                 └──Abandon──▶ abandoned
//
// A confirmation is never sent without a held token. The token is opaque;
// its validity and expiry are the backend's business.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type State string

const (
	StateIdle           State = "idle"
	StateTokenRequested State = "token_requested"
	StateConfirmed      State = "confirmed"
	StateAbandoned      State = "abandoned"
)

type Kind string

const (
	KindVerification  Kind = "verification"
	KindPasswordReset Kind = "password_reset"
	KindEditProfile   Kind = "edit_profile"
	KindDeleteAccount Kind = "delete_account"
)

var (
	ErrTokenMissing = errors.New("no confirmation token: request one first")
	ErrBusy         = errors.New("another request is in progress")
)

// TokenStore persists the held token so that a flow survives a restart.
// LoadToken returns "" when nothing is stored.
type TokenStore interface {
	LoadToken(ctx context.Context, kind Kind) (string, error)
	SaveToken(ctx context.Context, kind Kind, token string) error
	EraseToken(ctx context.Context, kind Kind) error
}

// RequestFunc asks the backend to issue a token. It returns the token when
// the backend echoes it inline, or "" when it is delivered out of band.
type RequestFunc func(ctx context.Context) (string, error)

// ConfirmFunc submits the held token together with the action payload.
type ConfirmFunc func(ctx context.Context, token string) error

type Workflow struct {
	kind  Kind
	store TokenStore

	mu    sync.Mutex
	state State
	token string
	busy  bool
}

// New returns an idle workflow. store may be nil, in which case the token
// lives in memory only.
func New(kind Kind, store TokenStore) *Workflow {
	return &Workflow{kind: kind, store: store, state: StateIdle}
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Restore picks up a token persisted by an earlier run.
func (w *Workflow) Restore(ctx context.Context) error {
	if w.store == nil {
		return nil
	}
	tok, err := w.store.LoadToken(ctx, w.kind)
	if err != nil {
		return fmt.Errorf("restore %s token: %w", w.kind, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if tok != "" {
		w.token = tok
		w.state = StateTokenRequested
	}
	return nil
}

func (w *Workflow) begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return ErrBusy
	}
	w.busy = true
	return nil
}

func (w *Workflow) end() {
	w.mu.Lock()
	w.busy = false
	w.mu.Unlock()
}

// Request runs fn. On success the workflow moves to token_requested and the
// previously held token is replaced by the inline one (or dropped when the
// token went out by email). On failure nothing changes.
func (w *Workflow) Request(ctx context.Context, fn RequestFunc) error {
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	tok, err := fn(ctx)
	if err != nil {
		return err
	}

	if err := w.persist(ctx, tok); err != nil {
		return err
	}

	w.mu.Lock()
	w.token = tok
	w.state = StateTokenRequested
	w.mu.Unlock()
	return nil
}

// Provide records a token the user received out of band. Blank input is
// ignored.
func (w *Workflow) Provide(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	if err := w.persist(ctx, token); err != nil {
		return err
	}

	w.mu.Lock()
	w.token = token
	w.state = StateTokenRequested
	w.mu.Unlock()
	return nil
}

// Confirm runs fn with the held token. Without a token it fails with
// ErrTokenMissing and fn is not called. On success the token is erased and
// the workflow is confirmed; on failure the token is kept for a retry.
func (w *Workflow) Confirm(ctx context.Context, fn ConfirmFunc) error {
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	w.mu.Lock()
	tok := w.token
	w.mu.Unlock()
	if tok == "" {
		return ErrTokenMissing
	}

	if err := fn(ctx, tok); err != nil {
		return err
	}

	w.mu.Lock()
	w.token = ""
	w.state = StateConfirmed
	w.mu.Unlock()

	if w.store != nil {
		if err := w.store.EraseToken(ctx, w.kind); err != nil {
			return fmt.Errorf("confirmed, but failed to erase %s token: %w", w.kind, err)
		}
	}
	return nil
}

// Abandon drops the held token.
func (w *Workflow) Abandon(ctx context.Context) error {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return ErrBusy
	}
	w.token = ""
	w.state = StateAbandoned
	w.mu.Unlock()

	if w.store != nil {
		if err := w.store.EraseToken(ctx, w.kind); err != nil {
			return fmt.Errorf("erase %s token: %w", w.kind, err)
		}
	}
	return nil
}

// Reset forgets the held token without touching the store, returning the
// workflow to idle. Used after a logout has already cleared storage.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.token = ""
	w.state = StateIdle
}

func (w *Workflow) persist(ctx context.Context, tok string) error {
	if w.store == nil {
		return nil
	}
	var err error
	if tok == "" {
		err = w.store.EraseToken(ctx, w.kind)
	} else {
		err = w.store.SaveToken(ctx, w.kind, tok)
	}
	if err != nil {
		return fmt.Errorf("store %s token: %w", w.kind, err)
	}
	return nil
}
