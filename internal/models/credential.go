// Package models defines the record types stored by the CLI.
package models

// Credential stores a username/password pair with optional context. It is
// the record type the CLI's store instance is parameterized over; library
// callers are free to define their own serializable records instead.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}
