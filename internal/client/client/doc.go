// Package client contains the client-side building blocks for talking to
// the inmobix backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface, split
//     into AuthAPI, UserAPI and PropertyAPI) covering registration, login,
//     verification and password reset, user lookup and the two-step profile
//     edit/delete calls, reports, property CRUD and search, and image
//     upload/removal.
//  2. A concrete REST implementation (see HTTPClient). Every request carries
//     the bearer token and the X-User-Id / X-User-Role headers taken from a
//     Credentials source, plus a fresh X-Request-Id. Responses are accepted
//     both wrapped in the {success, message, data} envelope and bare.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying the embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Backend failures are *APIError
// values carrying the status and the backend's message; 401 and 403 also
// match ErrUnauthorized with errors.Is.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation; WithTimeout adds a per-request
// deadline.
package client
