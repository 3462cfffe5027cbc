package geo

import "errors"

// ErrIncomplete is returned when a JSON point lacks a latitude or longitude.
var ErrIncomplete = errors.New("geo: incomplete coordinate pair")
