package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/inmobix/internal/client/workflow"
)

var (
	ErrLoginRequired  = errors.New("you need to log in first")
	ErrForbidden      = errors.New("this command is restricted to administrators")
	ErrUnknownCommand = errors.New("unknown command")
)

// Access is the minimum session a route requires.
type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessAdmin
)

func (a Access) String() string {
	switch a {
	case AccessAuthenticated:
		return "authenticated"
	case AccessAdmin:
		return "admin"
	default:
		return "public"
	}
}

// Route binds a command name to its handler and access level.
type Route struct {
	Name   string
	Args   string
	Short  string
	Access Access
	Run    func(a *App, ctx context.Context, args []string) error
}

var routes = []Route{
	{Name: "register", Short: "create an account", Run: (*App).register},
	{Name: "login", Short: "sign in", Run: (*App).login},
	{Name: "verify", Args: "[code]", Short: "confirm your email with the emailed code", Run: (*App).verify},
	{Name: "resend", Args: "[email]", Short: "send the verification email again", Run: (*App).resend},
	{Name: "forgot", Args: "[email]", Short: "request a password reset", Run: (*App).forgot},
	{Name: "reset", Short: "set a new password with the emailed code", Run: (*App).reset},

	{Name: "whoami", Short: "show the signed-in user", Access: AccessAuthenticated, Run: (*App).whoami},
	{Name: "logout", Short: "sign out and forget pending confirmations", Access: AccessAuthenticated, Run: (*App).logout},
	{Name: "properties", Short: "list all properties", Access: AccessAuthenticated, Run: (*App).listProperties},
	{Name: "available", Short: "list available properties", Access: AccessAuthenticated, Run: (*App).listAvailable},
	{Name: "show", Args: "<id>", Short: "show a property", Access: AccessAuthenticated, Run: (*App).showProperty},
	{Name: "mine", Short: "list your properties", Access: AccessAuthenticated, Run: (*App).listMine},
	{Name: "create", Short: "publish a property", Access: AccessAuthenticated, Run: (*App).createProperty},
	{Name: "edit", Args: "<id>", Short: "edit a property", Access: AccessAuthenticated, Run: (*App).editProperty},
	{Name: "delete", Args: "<id>", Short: "delete a property", Access: AccessAuthenticated, Run: (*App).deleteProperty},
	{Name: "search", Args: "[city|type|transaction|price] [value...]", Short: "search properties", Access: AccessAuthenticated, Run: (*App).search},
	{Name: "profile", Short: "show your profile", Access: AccessAuthenticated, Run: (*App).profile},
	{Name: "edit-profile", Short: "change your profile (emailed confirmation)", Access: AccessAuthenticated, Run: (*App).editProfile},
	{Name: "delete-account", Short: "delete your account (emailed confirmation)", Access: AccessAuthenticated, Run: (*App).deleteAccount},
	{Name: "user", Args: "<id>", Short: "show a user and their properties", Access: AccessAuthenticated, Run: (*App).showUser},

	{Name: "users", Short: "list all users", Access: AccessAdmin, Run: (*App).listUsers},
	{Name: "find", Args: "<document>", Short: "find a user by document number", Access: AccessAdmin, Run: (*App).findUser},
	{Name: "report", Args: "[pdf|excel] [user-id]", Short: "download a users report", Access: AccessAdmin, Run: (*App).downloadReport},
}

var routeIndex = func() map[string]Route {
	m := make(map[string]Route, len(routes))
	for _, r := range routes {
		m[r.Name] = r
	}
	return m
}()

// Routes returns the command table sorted by access, then name.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Access != out[j].Access {
			return out[i].Access < out[j].Access
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func lookupRoute(name string) (Route, bool) {
	r, ok := routeIndex[name]
	return r, ok
}

// guard refuses r when the session does not meet its access level.
func (a *App) guard(r Route) error {
	switch r.Access {
	case AccessAuthenticated:
		if !a.session.IsAuthenticated() {
			return ErrLoginRequired
		}
	case AccessAdmin:
		if !a.session.IsAuthenticated() {
			return ErrLoginRequired
		}
		if !a.session.IsAdmin() {
			return ErrForbidden
		}
	}
	return nil
}

// Dispatch runs the named route. Only one command runs at a time; an
// overlapping call fails with workflow.ErrBusy.
func (a *App) Dispatch(ctx context.Context, name string, args []string) error {
	r, ok := lookupRoute(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	if !a.busy.CompareAndSwap(false, true) {
		return workflow.ErrBusy
	}
	defer a.busy.Store(false)

	if err := a.guard(r); err != nil {
		return err
	}
	return r.Run(a, ctx, args)
}

// Execute dispatches and prints the failure, if any, as a feedback block.
// The error is still returned so one-shot commands can exit non-zero.
func (a *App) Execute(ctx context.Context, name string, args []string) error {
	err := a.Dispatch(ctx, name, args)
	if err != nil {
		a.fail(err)
	}
	return err
}

// available reports the routes the current session may run.
func (a *App) available() []Route {
	out := make([]Route, 0, len(routes))
	for _, r := range Routes() {
		if a.guard(r) == nil {
			out = append(out, r)
		}
	}
	return out
}
