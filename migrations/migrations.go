// Package migrations embeds the versioned PostgreSQL schema.
package migrations

import "embed"

// FS holds the golang-migrate files under postgres/.
//
//go:embed postgres/*.sql
var FS embed.FS

// Dir is the directory inside FS that holds the migration files.
const Dir = "postgres"
