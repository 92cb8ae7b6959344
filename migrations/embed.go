// Package migrations embeds SQL migration files into the binary, so
// bookmarkd can migrate its schema without SQL files on the filesystem.
package migrations

import (
	"embed"

	"github.com/mlodden/bookmarkd/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	// Register embedded migrations with the database package.
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // Files are at root of embedded FS
}
