// Package migrations embeds the goose schema migrations for every
// supported database.
package migrations

import (
	"embed"

	"github.com/dmitrijs2005/studyplanner/internal/dbx"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Dir returns the migrations directory for d inside Migrations.
func Dir(d dbx.Dialect) string {
	if d == dbx.DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// GooseDialect returns the goose dialect name for d.
func GooseDialect(d dbx.Dialect) string {
	if d == dbx.DialectPostgres {
		return "postgres"
	}
	return "sqlite3"
}
