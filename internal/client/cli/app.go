package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/inmobix/internal/client/client"
	"github.com/dmitrijs2005/inmobix/internal/client/config"
	"github.com/dmitrijs2005/inmobix/internal/client/models"
	"github.com/dmitrijs2005/inmobix/internal/client/services"
	"github.com/dmitrijs2005/inmobix/internal/client/session"
	"github.com/dmitrijs2005/inmobix/internal/filex"
	"github.com/dmitrijs2005/inmobix/internal/logging"
)

// SessionView is the read side of the session the CLI needs for guards,
// the prompt and whoami.
type SessionView interface {
	Identity() *models.Identity
	IsAuthenticated() bool
	IsAdmin() bool
	PendingEmail() string
	TokenExpiry() (time.Time, bool)
}

type App struct {
	session SessionView
	auth    services.AuthService
	users   services.UserService
	props   services.PropertyService
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer

	busy    atomic.Bool
	closers []func() error
}

// NewApp opens the local database, restores the previous session and
// wires the HTTP client and services around it.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log := logging.New(logging.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." && dir != "" {
		if _, err := filex.EnsureDir(dir); err != nil {
			return nil, err
		}
	}

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}

	store := session.NewStore(db, log)
	if err := store.Load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	api := client.NewHTTPClient(cfg.APIBaseURL, store,
		client.WithLogger(log),
		client.WithTimeout(cfg.RequestTimeout),
	)

	auth := services.NewAuthService(api, store, log)
	if err := auth.Restore(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	users := services.NewUserService(api, store, cfg.ReportsDir, log)
	props := services.NewPropertyService(api, store, log)

	unsubscribe := services.ResetOnSignOut(store, auth, users)

	a := newApp(store, auth, users, props, log, in, out)
	a.closers = []func() error{
		func() error { unsubscribe(); return nil },
		api.Close,
		db.Close,
	}
	return a, nil
}

func newApp(sess SessionView, auth services.AuthService, users services.UserService,
	props services.PropertyService, log logging.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		session: sess,
		auth:    auth,
		users:   users,
		props:   props,
		log:     log,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Close releases the HTTP client and the database.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Run starts the interactive loop and blocks until the user leaves.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to inmobix (type 'help' for commands)")
	runREPL(ctx, a, a.out, a.status, a.readLine)
	return nil
}

// readLine shares a.reader with the prompts so that typed-ahead input is
// never swallowed by a second buffer.
func (a *App) readLine() (string, bool) {
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return line, true
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status is the prompt decoration: user name and role when signed in.
func (a *App) status() string {
	id := a.session.Identity()
	if id == nil || !a.session.IsAuthenticated() {
		return ""
	}
	name := id.Username
	if name == "" {
		name = id.Email
	}
	if id.Role != "" {
		return fmt.Sprintf("(%s %s)", name, id.Role)
	}
	return fmt.Sprintf("(%s)", name)
}
