package database

import "strings"

// UpdateBuilder collects the column assignments of a partial UPDATE.
type UpdateBuilder struct {
	sets []string
	args []any
}

// Set assigns value to col.
func (b *UpdateBuilder) Set(col string, value any) {
	b.SetExpr(col, "?", value)
}

// SetExpr assigns col using a placeholder expression such as
// ST_GeomFromText(?).
func (b *UpdateBuilder) SetExpr(col, expr string, value any) {
	b.sets = append(b.sets, col+" = "+expr)
	b.args = append(b.args, value)
}

// Build returns the statement and its arguments. where is appended
// verbatim after WHERE and whereArgs follow the SET arguments.
func (b *UpdateBuilder) Build(table, where string, whereArgs ...any) (string, []any) {
	query := "UPDATE " + table + " SET " + strings.Join(b.sets, ", ") + " WHERE " + where
	args := make([]any, 0, len(b.args)+len(whereArgs))
	args = append(args, b.args...)
	args = append(args, whereArgs...)
	return query, args
}
