package database

import "fmt"

// Dialect names a supported SQL engine.
type Dialect string

// Supported dialects.
const (
	SQLite Dialect = "sqlite"
	MySQL  Dialect = "mysql"
)

// ParseDialect returns the Dialect for name.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(name) {
	case SQLite, MySQL:
		return Dialect(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, name)
	}
}

// DriverName returns the database/sql driver registered for d.
func (d Dialect) DriverName() string {
	if d == MySQL {
		return "mysql"
	}
	return "sqlite3"
}

// PointParam returns the placeholder that stores a WKT point literal.
func (d Dialect) PointParam() string {
	if d == MySQL {
		return "ST_GeomFromText(?)"
	}
	return "?"
}

// PointColumn returns an expression that reads col back as WKT text.
func (d Dialect) PointColumn(col string) string {
	if d == MySQL {
		return "ST_AsText(" + col + ")"
	}
	return col
}

func (d Dialect) String() string {
	return string(d)
}
