// Package dbtest opens throwaway SQLite databases with the pulselink
// schema applied, for use in tests of other packages.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nerrad567/pulselink-core/internal/infrastructure/database"
	_ "github.com/nerrad567/pulselink-core/migrations" // registers the embedded schema
)

// Open returns a migrated SQLite database in a temp directory.
// It is closed when the test completes.
func Open(t testing.TB) *database.DB {
	t.Helper()

	db, err := database.Open(database.Config{
		Driver:      string(database.SQLite),
		Path:        filepath.Join(t.TempDir(), "pulselink-test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}
