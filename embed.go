// Package coachtip holds assets embedded into the coachtip binaries.
package coachtip

import "embed"

// MigrationsFS contains the PostgreSQL schema migrations.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
