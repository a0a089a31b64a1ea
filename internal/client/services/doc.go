// Package services contains the application services of the inmobix
// client. Each service validates its form input, drives the matching
// confirmation workflow where one applies, calls the backend through the
// client package and keeps the session store in step with the outcome.
//
// Services:
//   - AuthService: login, registration and email verification, password
//     reset, logout.
//   - UserService: profile and admin lookups, the two-step profile edit and
//     account deletion flows, report downloads.
//   - PropertyService: listing CRUD and search, image upload and removal.
package services
