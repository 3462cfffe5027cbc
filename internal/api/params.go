package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/pulselink-core/internal/domain"
)

var (
	// errInvalidID is returned for a path id that is not a positive integer.
	errInvalidID = errors.New("invalid id")

	// errInvalidEscape is returned for a path value with a malformed %-escape.
	errInvalidEscape = errors.New("invalid path encoding")
)

// pathID parses the named URL parameter as a positive integer.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// pathValue returns the named URL parameter decoded. chi matches on
// RawPath when the request has one, which leaves the value escaped.
func pathValue(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v, nil
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", errInvalidEscape
	}
	return decoded, nil
}

// pageFrom reads ?limit= and ?offset=. Missing or unparseable values
// fall back to the defaults.
func pageFrom(r *http.Request) domain.Page {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))   //nolint:errcheck // zero selects the default
	offset, _ := strconv.Atoi(q.Get("offset")) //nolint:errcheck // zero is the default
	return domain.NewPage(limit, offset)
}

// decodeBody decodes the JSON request body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return false
	}
	return true
}

// emptyIfNil keeps list responses a JSON array when nothing matched.
func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

type successResponse struct {
	Success bool `json:"success"`
}
