package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nerrad567/pulselink-core/internal/domain"
)

// Affected converts the rows-affected count of res into a domain.Result.
func Affected(res sql.Result) (domain.Result, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Result{}, NormalizeError("reading affected rows", err)
	}
	return domain.Result{Affected: n}, nil
}

// RowExists reports whether query, which selects at most one row,
// matched anything.
func RowExists(ctx context.Context, db *sql.DB, query string, args ...any) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, NormalizeError("checking existence", err)
	}
	return true, nil
}
