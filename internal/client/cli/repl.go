package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	available() []Route
	Execute(ctx context.Context, name string, args []string) error
}

// runREPL starts a simple read–eval–print loop.
//
// Each line is split into fields; the first one names the command and the
// rest are its arguments. The loop exits when next reports end of input or
// the user types "exit" or "quit". Besides the routes it understands:
//
//	help           list the commands available to the current session
//	exit | quit    leave the program
//
// Command errors are reported by Execute and never stop the loop.
func runREPL(ctx context.Context, a execIface, w io.Writer, statusFn func() string, next func() (string, bool)) {
	for {
		if status := statusFn(); status != "" {
			fmt.Fprintf(w, "inmobix %s> ", status)
		} else {
			fmt.Fprint(w, "inmobix> ")
		}

		line, ok := next()
		if !ok {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "?":
			printHelp(w, a)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			err := a.Execute(ctx, cmd, args)
			if errors.Is(err, ErrLoginRequired) && !a.isLoggedIn() {
				fmt.Fprintln(w, "Type 'login' to sign in or 'register' to create an account.")
			}
		}
	}
}

func printHelp(w io.Writer, a execIface) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Available commands:")
	for _, r := range a.available() {
		fmt.Fprintf(tw, "  %s %s\t%s\n", r.Name, r.Args, r.Short)
	}
	fmt.Fprintln(tw, "  help\tshow this list")
	fmt.Fprintln(tw, "  exit\tleave the program")
	_ = tw.Flush()

	if !a.isLoggedIn() {
		fmt.Fprintln(w, "Log in to see property and account commands.")
	}
}
