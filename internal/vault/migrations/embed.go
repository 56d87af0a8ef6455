// Package migrations embeds the goose migrations for the Postgres vault
// backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
