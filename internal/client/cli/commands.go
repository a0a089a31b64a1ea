package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/inmobix/internal/buildinfo"
)

// Opener builds the App for one invocation; the caller's command closes it.
type Opener func(ctx context.Context) (*App, error)

// NewRootCommand builds the cobra tree. Without a subcommand the
// interactive shell starts; every route is also a one-shot subcommand.
//
// The persistent flags are declared so cobra accepts them; their values
// are read by the config package straight from os.Args.
func NewRootCommand(open Opener, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "inmobix",
		Short:         "Terminal client for the inmobix real-estate platform",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), open, func(a *App) error {
				return a.Run(cmd.Context())
			})
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "path to a JSON config file")
	pf.StringP("api", "a", "", "backend base URL")
	pf.StringP("db", "d", "", "local database file")
	pf.StringP("reports", "r", "", "directory for downloaded reports")
	pf.StringP("log-level", "l", "", "log level: debug, info, warn, error")

	for _, r := range Routes() {
		root.AddCommand(routeCommand(r, open))
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	})

	return root
}

func routeCommand(r Route, open Opener) *cobra.Command {
	use := r.Name
	if r.Args != "" {
		use += " " + r.Args
	}
	short := r.Short
	if r.Access != AccessPublic {
		short += " (" + r.Access.String() + ")"
	}

	return &cobra.Command{
		Use:         use,
		Short:       short,
		Args:        cobra.ArbitraryArgs,
		Annotations: map[string]string{"access": r.Access.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), open, func(a *App) error {
				if err := a.Execute(cmd.Context(), r.Name, args); err != nil {
					return reportedError{err}
				}
				return nil
			})
		},
	}
}

func withApp(ctx context.Context, open Opener, fn func(*App) error) error {
	a, err := open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
