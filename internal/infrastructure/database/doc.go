// Package database provides the SQL connection pool for pulselink.
//
// This package manages:
//   - Opening the pool for the configured dialect (SQLite or MySQL),
//     instrumented with OpenTelemetry through otelsql
//   - Forward-only schema bootstrap from embedded SQL files
//   - Dialect helpers for the few statements that differ per engine
//   - Normalising driver errors into the domain error taxonomy
//   - Best-effort table reset for development and tests
//
// Security Considerations:
//   - All queries use parameterised statements
//   - SQLite database files are created with 0600 permissions
//
// Usage:
//
//	db, err := database.Open(database.Config{Driver: "sqlite", Path: "data/pulselink.db"})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
