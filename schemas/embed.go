// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the golang-migrate up/down files of the quiz_sentences schema,
// applied by database.Migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS
