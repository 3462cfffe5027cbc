// Package migrations embeds the schema files into the binary.
//
// Files live in one directory per dialect (sqlite/, mysql/) and are
// applied forward-only by database.DB.Migrate.
package migrations

import (
	"embed"

	"github.com/nerrad567/pulselink-core/internal/infrastructure/database"
)

//go:embed sqlite/*.sql mysql/*.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
