package database

import (
	"context"
	"fmt"
)

// Tables lists the entity tables in dependency order, dependents first.
var Tables = []string{
	"user_device_assignments",
	"users",
	"devices",
	"subscribers",
	"roles",
}

// ResetTables deletes every row of Tables and then tries to reset each
// table's auto-increment counter.
//
// A failed delete is returned. A failed counter reset is logged and
// skipped: the engine may not track a counter for the table.
func (db *DB) ResetTables(ctx context.Context) error {
	for _, table := range Tables {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return NormalizeError("resetting "+table, err)
		}
	}

	for _, table := range Tables {
		if err := db.resetCounter(ctx, table); err != nil {
			db.logger.Warn("auto-increment reset failed", "table", table, "error", err)
		}
	}
	return nil
}

func (db *DB) resetCounter(ctx context.Context, table string) error {
	var err error
	switch db.dialect {
	case MySQL:
		_, err = db.ExecContext(ctx, "ALTER TABLE "+table+" AUTO_INCREMENT = 1")
	default:
		_, err = db.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", table)
	}
	if err != nil {
		return fmt.Errorf("resetting counter for %s: %w", table, err)
	}
	return nil
}
