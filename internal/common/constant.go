// Package common contains constants and helpers shared by the client packages.
package common

// Headers attached to every outbound API request.
const (
	AuthorizationHeaderName = "Authorization"
	UserIDHeaderName        = "X-User-Id"
	UserRoleHeaderName      = "X-User-Role"
	RequestIDHeaderName     = "X-Request-Id"
)

// Roles as reported by the backend.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)
