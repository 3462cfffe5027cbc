package database

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"

	"github.com/nerrad567/pulselink-core/internal/domain"
)

// ErrUnsupportedDriver is returned for an unknown database driver name.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// NormalizeError maps a driver error onto the domain taxonomy.
// Unique and primary key violations wrap domain.ErrDuplicate; every
// other failure, foreign key violations included, wraps domain.ErrStorage.
// A nil err returns nil.
func NormalizeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrDuplicate, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

// IsUniqueViolation reports whether err is a unique or primary key
// violation from either supported driver.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return false
}
