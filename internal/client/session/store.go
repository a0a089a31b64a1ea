// Package session holds the signed-in identity and the pending confirmation
// state, mirrored into the local store so that a restart picks up where the
// previous run left off.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/inmobix/internal/client/models"
	"github.com/dmitrijs2005/inmobix/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/inmobix/internal/client/workflow"
	"github.com/dmitrijs2005/inmobix/internal/common"
	"github.com/dmitrijs2005/inmobix/internal/dbx"
	"github.com/dmitrijs2005/inmobix/internal/logging"
)

const (
	keyUser              = "user"
	keyUserID            = "user_id"
	keyUserRole          = "user_role"
	keyToken             = "token"
	keyVerificationToken = "verification_token"
	keyResetToken        = "reset_password_token"
	keyPendingEmail      = "email_to_verify"
)

// every key Logout wipes
var sessionKeys = []string{
	keyUser, keyUserID, keyUserRole, keyToken,
	keyVerificationToken, keyResetToken, keyPendingEmail,
}

var tokenKeys = map[workflow.Kind]string{
	workflow.KindVerification:  keyVerificationToken,
	workflow.KindPasswordReset: keyResetToken,
}

// Observer is told about every identity change; nil means signed out.
type Observer func(identity *models.Identity)

type Store struct {
	db   *sql.DB
	repo localstore.Repository
	log  logging.Logger

	mu           sync.RWMutex
	identity     *models.Identity
	userID       string
	role         string
	token        string
	pendingEmail string

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObs   int
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		db:        db,
		repo:      localstore.NewSQLiteRepository(db),
		log:       log,
		observers: make(map[int]Observer),
	}
}

// Load restores the session saved by a previous run. An unreadable identity
// blob is treated as no session.
func (s *Store) Load(ctx context.Context) error {
	values, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	var identity *models.Identity
	if blob := values[keyUser]; len(blob) > 0 {
		var id models.Identity
		if err := json.Unmarshal(blob, &id); err != nil {
			s.log.Warn(ctx, "discarding unreadable stored identity", "error", err)
		} else {
			identity = &id
		}
	}

	s.mu.Lock()
	s.identity = identity
	s.userID = string(values[keyUserID])
	s.role = string(values[keyUserRole])
	s.token = string(values[keyToken])
	s.pendingEmail = string(values[keyPendingEmail])
	if identity != nil {
		if s.userID == "" {
			s.userID = identity.ID
		}
		if s.role == "" {
			s.role = identity.Role
		}
		identity.Token = s.token
	}
	snapshot := s.identity.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
	return nil
}

// SetSession stores identity as the signed-in user, with its token when it
// carries one.
func (s *Store) SetSession(ctx context.Context, identity models.Identity) error {
	id := identity.Public()
	token := id.Token
	if token == "" {
		token = s.Token()
	}
	id.Token = token

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return saveIdentity(ctx, localstore.NewSQLiteRepository(tx), id, token)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.identity = &id
	s.userID = id.ID
	s.role = id.Role
	s.token = token
	snapshot := s.identity.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
	return nil
}

// UpdateIdentity merges a refreshed profile into the current identity,
// keeping id, role and token when the update leaves them out.
func (s *Store) UpdateIdentity(ctx context.Context, update models.Identity) error {
	s.mu.RLock()
	var merged models.Identity
	if s.identity != nil {
		merged = s.identity.Merge(update)
	} else {
		merged = update.Public()
	}
	s.mu.RUnlock()

	return s.SetSession(ctx, merged)
}

// Logout forgets the identity, the token and any pending confirmation
// state, in storage and in memory.
func (s *Store) Logout(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return localstore.NewSQLiteRepository(tx).Delete(ctx, sessionKeys...)
	})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.mu.Lock()
	s.identity = nil
	s.userID = ""
	s.role = ""
	s.token = ""
	s.pendingEmail = ""
	s.mu.Unlock()

	s.notify(nil)
	return nil
}

// Identity returns a copy of the signed-in identity, or nil.
func (s *Store) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.Clone()
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Store) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Store) IsAdmin() bool {
	return s.IsAuthenticated() && s.Role() == common.RoleAdmin
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.userID != ""
}

// Subscribe registers fn for identity changes and returns a function that
// unregisters it.
func (s *Store) Subscribe(fn Observer) (cancel func()) {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

func (s *Store) notify(identity *models.Identity) {
	s.obsMu.Lock()
	fns := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(identity.Clone())
	}
}

func saveIdentity(ctx context.Context, repo localstore.Repository, id models.Identity, token string) error {
	blob := id
	blob.Token = ""
	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	if err := repo.Set(ctx, keyUser, data); err != nil {
		return err
	}
	if err := repo.Set(ctx, keyUserID, []byte(id.ID)); err != nil {
		return err
	}
	if id.Role != "" {
		if err := repo.Set(ctx, keyUserRole, []byte(id.Role)); err != nil {
			return err
		}
	} else if err := repo.Delete(ctx, keyUserRole); err != nil {
		return err
	}
	if token != "" {
		return repo.Set(ctx, keyToken, []byte(token))
	}
	return nil
}
