// Package pgmigrations embeds the goose migrations for the PostgreSQL
// key-value backend.
package pgmigrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
