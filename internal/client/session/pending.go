package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/inmobix/internal/client/workflow"
)

func tokenKey(kind workflow.Kind) (string, error) {
	key, ok := tokenKeys[kind]
	if !ok {
		return "", fmt.Errorf("no durable slot for %s tokens", kind)
	}
	return key, nil
}

// LoadToken returns the persisted confirmation token of kind, or "".
func (s *Store) LoadToken(ctx context.Context, kind workflow.Kind) (string, error) {
	key, err := tokenKey(kind)
	if err != nil {
		return "", err
	}
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *Store) SaveToken(ctx context.Context, kind workflow.Kind, token string) error {
	key, err := tokenKey(kind)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, key, []byte(token))
}

func (s *Store) EraseToken(ctx context.Context, kind workflow.Kind) error {
	key, err := tokenKey(kind)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, key)
}

// PendingEmail is the address of an account awaiting email verification.
func (s *Store) PendingEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingEmail
}

func (s *Store) SetPendingEmail(ctx context.Context, email string) error {
	if err := s.repo.Set(ctx, keyPendingEmail, []byte(email)); err != nil {
		return fmt.Errorf("save pending email: %w", err)
	}
	s.mu.Lock()
	s.pendingEmail = email
	s.mu.Unlock()
	return nil
}

func (s *Store) ClearPendingEmail(ctx context.Context) error {
	if err := s.repo.Delete(ctx, keyPendingEmail); err != nil {
		return fmt.Errorf("clear pending email: %w", err)
	}
	s.mu.Lock()
	s.pendingEmail = ""
	s.mu.Unlock()
	return nil
}

var _ workflow.TokenStore = (*Store)(nil)
