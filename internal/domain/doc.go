// Package domain holds the pieces shared by every entity repository:
// the error taxonomy, pagination and the existence-lookup capability
// repositories use to check references without depending on each other.
//
// Callers classify failures with errors.Is:
//
//	errors.Is(err, domain.ErrValidation)       // bad input, nothing written
//	errors.Is(err, domain.ErrReferenceMissing) // a referenced row does not exist
//	errors.Is(err, domain.ErrDuplicate)        // unique key already taken
//	errors.Is(err, domain.ErrStorage)          // anything else from the store
//
// Not found is never an error: lookups return (nil, nil) and writes
// report Result{Affected: 0}.
package domain
