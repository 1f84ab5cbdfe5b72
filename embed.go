// Package reporter holds assets embedded into the binary.
package reporter

import "embed"

// Migrations contains the SQL migration files applied by the migrate
// subcommand.
//
//go:embed migrations/*.sql
var Migrations embed.FS
