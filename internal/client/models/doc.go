// Package models defines the data records exchanged with the inmobix
// backend. They mirror the backend JSON shapes and have no lifecycle of
// their own on the client.
package models
