// Package db embeds the SQL migrations of the shared schema.
package db

import "embed"

// MigrationsDir is the directory of Migrations holding goose files.
const MigrationsDir = "migrations"

//go:embed migrations/*.sql
var Migrations embed.FS
