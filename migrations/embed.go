// Package migrations holds the goose SQL migrations for the game database.
package migrations

import "embed"

// FS contains every migration file
//
//go:embed *.sql
var FS embed.FS
