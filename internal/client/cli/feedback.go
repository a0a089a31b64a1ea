package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/inmobix/internal/client/client"
	"github.com/dmitrijs2005/inmobix/internal/client/forms"
	"github.com/dmitrijs2005/inmobix/internal/client/services"
	"github.com/dmitrijs2005/inmobix/internal/client/workflow"
)

// reportedError marks a failure the handler already showed to the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Reported tells whether err was already shown to the user.
func Reported(err error) bool {
	var done reportedError
	return errors.As(err, &done)
}

// success prints a success block.
func (a *App) success(title string, lines ...string) {
	fmt.Fprintf(a.out, "\n[ok] %s\n", title)
	for _, l := range lines {
		if l != "" {
			fmt.Fprintf(a.out, "     %s\n", l)
		}
	}
	fmt.Fprintln(a.out)
}

// warn prints a non-fatal notice.
func (a *App) warn(msg string) {
	fmt.Fprintf(a.out, "[!] %s\n", msg)
}

// fail prints err as an error block unless it was reported already.
func (a *App) fail(err error) {
	if err == nil {
		return
	}
	if Reported(err) {
		return
	}

	title, lines := describe(err)
	fmt.Fprintf(a.out, "\n[error] %s\n", title)
	for _, l := range lines {
		fmt.Fprintf(a.out, "        %s\n", l)
	}
	fmt.Fprintln(a.out)
}

// report prints err now and returns it marked as reported.
func (a *App) report(err error) error {
	a.fail(err)
	return reportedError{err}
}

// describe maps an error to a title and detail lines by origin: input
// validation, transport, backend message, or local state.
func describe(err error) (string, []string) {
	var ve forms.ValidationErrors
	if errors.As(err, &ve) {
		lines := make([]string, 0, len(ve))
		for _, fe := range ve {
			lines = append(lines, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
		}
		return "Please correct the following fields", lines
	}

	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "Cannot reach the server. Check your connection and try again.", nil
	case errors.As(err, &apiErr):
		msg := strings.TrimSpace(apiErr.Message)
		if msg == "" {
			msg = fmt.Sprintf("request failed (status %d)", apiErr.StatusCode)
		}
		return msg, nil
	case errors.Is(err, workflow.ErrTokenMissing):
		return "No confirmation token yet", []string{"Request one first, or type the token from the email when asked."}
	case errors.Is(err, workflow.ErrBusy):
		return "Please wait for the current request to finish", nil
	case errors.Is(err, ErrLoginRequired):
		return "You need to log in first", nil
	case errors.Is(err, ErrForbidden):
		return "Only administrators can do that", nil
	case errors.Is(err, services.ErrNotSignedIn):
		return "You need to log in first", nil
	case errors.Is(err, services.ErrEmailMissing):
		return "Which email should the verification go to?", []string{"Pass it as an argument: resend <email>"}
	case errors.Is(err, services.ErrNotImage):
		return "The selected file is not an image", []string{err.Error()}
	case errors.Is(err, ErrUnknownCommand):
		return err.Error(), []string{"Type 'help' to see the available commands."}
	default:
		return err.Error(), nil
	}
}
