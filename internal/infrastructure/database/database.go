package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.opentelemetry.io/otel/attribute"
)

// Database configuration constants.
const (
	// dirPermissions is the permission mode for the database directory.
	dirPermissions = 0750

	// filePermissions is the permission mode for the database file.
	filePermissions = 0600

	// msPerSecond converts seconds to milliseconds.
	msPerSecond = 1000

	// connectionTimeout is the timeout for verifying database connectivity.
	connectionTimeout = 5 * time.Second

	// connMaxIdleTime is how long idle connections are kept open.
	connMaxIdleTime = 30 * time.Minute

	// defaultMaxOpenConns applies to MySQL when the config leaves it unset.
	defaultMaxOpenConns = 10
)

// Logger is the logging surface the database package needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}

// DB wraps the connection pool with its dialect.
type DB struct {
	*sql.DB
	dialect Dialect
	path    string
	logger  Logger
}

// Config contains database configuration options.
// These map to the database section of config.yaml.
type Config struct {
	// Driver selects the engine: "sqlite" or "mysql".
	Driver string

	// Path is the SQLite database file. The directory is created if missing.
	Path string

	// DSN is the MySQL data source name, e.g. user:pass@tcp(host:3306)/pulselink.
	DSN string

	// WALMode enables SQLite Write-Ahead Logging.
	WALMode bool

	// BusyTimeout is the SQLite lock wait in seconds.
	BusyTimeout int

	// MaxOpenConns caps the MySQL pool. SQLite always uses a single connection.
	MaxOpenConns int
}

// Open creates the connection pool for cfg.Driver and verifies it with a ping.
//
// The pool is opened through otelsql so every statement is traced with
// the db.system attribute set to the dialect.
func Open(cfg Config) (*DB, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	var dsn string
	switch dialect {
	case SQLite:
		dsn, err = sqliteDSN(cfg)
	case MySQL:
		dsn, err = mysqlDSN(cfg)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := otelsql.Open(dialect.DriverName(), dsn,
		otelsql.WithAttributes(attribute.String("db.system", dialect.String())),
		otelsql.WithSpanOptions(otelsql.SpanOptions{
			OmitConnResetSession: true,
			OmitConnPrepare:      true,
			OmitRows:             true,
			OmitConnectorConnect: true,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	configurePool(sqlDB, dialect, cfg.MaxOpenConns)

	db := &DB{
		DB:      sqlDB,
		dialect: dialect,
		path:    cfg.Path,
		logger:  nopLogger{},
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		sqlDB.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	if dialect == SQLite {
		_ = os.Chmod(cfg.Path, filePermissions) //nolint:errcheck // File may not exist until first write
	}

	return db, nil
}

func sqliteDSN(cfg Config) (string, error) {
	if cfg.Path == "" {
		return "", fmt.Errorf("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), dirPermissions); err != nil {
		return "", fmt.Errorf("creating database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on",
		cfg.Path,
		cfg.BusyTimeout*msPerSecond,
	)
	if cfg.WALMode {
		dsn += "&_journal_mode=WAL&_synchronous=NORMAL"
	}
	return dsn, nil
}

// mysqlDSN forces the options the repositories rely on: matched rather
// than changed rows, so an update that rewrites identical values still
// reports one affected row.
func mysqlDSN(cfg Config) (string, error) {
	if cfg.DSN == "" {
		return "", fmt.Errorf("mysql dsn is required")
	}
	mc, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return "", fmt.Errorf("parsing mysql dsn: %w", err)
	}
	mc.ClientFoundRows = true
	mc.ParseTime = true
	mc.Loc = time.UTC
	return mc.FormatDSN(), nil
}

func configurePool(sqlDB *sql.DB, dialect Dialect, maxOpen int) {
	if dialect == SQLite {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		if maxOpen <= 0 {
			maxOpen = defaultMaxOpenConns
		}
		sqlDB.SetMaxOpenConns(maxOpen)
		sqlDB.SetMaxIdleConns(maxOpen)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

// SetLogger sets the logger used for migration and maintenance messages.
func (db *DB) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	db.logger = l
}

// Dialect returns the engine the pool talks to.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Path returns the SQLite file path, empty for MySQL.
func (db *DB) Path() string {
	return db.path
}

// Close closes the pool. It is safe to call on a DB whose pool is nil.
func (db *DB) Close() error {
	if db.DB == nil {
		return nil
	}
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// HealthCheck verifies the database is accessible and functioning.
func (db *DB) HealthCheck(ctx context.Context) error {
	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}
