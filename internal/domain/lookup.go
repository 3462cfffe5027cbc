package domain

import "context"

// Lookup reports whether a row with the given id exists.
//
// Repositories that hold foreign keys receive the Lookup of each
// referenced entity instead of the concrete repository, which keeps
// the dependency graph acyclic.
type Lookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, id int64) (bool, error)

// Exists calls f(ctx, id).
func (f LookupFunc) Exists(ctx context.Context, id int64) (bool, error) {
	return f(ctx, id)
}

// Result reports how many rows a write touched. Zero means the target
// row was not found.
type Result struct {
	Affected int64 `json:"affected"`
}

// Found reports whether the write matched a row.
func (r Result) Found() bool {
	return r.Affected > 0
}
