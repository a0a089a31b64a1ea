// Package cli provides the inmobix terminal client.
//
// App wires configuration, the local session database, the HTTP client and
// the domain services. Commands are described by a route table: each route
// has a name, an access level (public, authenticated, admin) and a handler.
// The guard refuses authenticated routes without a session and admin
// routes for other roles, and only one command runs at a time.
//
// Two front ends share the table:
//   - the interactive shell (App.Run), a read–eval–print loop that keeps
//     going after any error;
//   - the cobra command tree (NewRootCommand), one subcommand per route.
//
// Handlers own their prompts, call a service and print a success or error
// block. Errors are shown by origin: per-field validation messages, a
// generic "cannot reach the server" for transport failures, and the
// backend's own message otherwise.
package cli
