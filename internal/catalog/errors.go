package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested entity doesn't exist in the index.
var ErrNotFound = errors.New("not found")

// DecodeError indicates an index document was missing required fields or
// otherwise malformed.
type DecodeError struct {
	Doc   string // document kind: "film", "genre", "person"
	Field string // missing field, empty when Err is set
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s document: %v", e.Doc, e.Err)
	}
	return fmt.Sprintf("malformed %s document: missing field %q", e.Doc, e.Field)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ResolutionError indicates a genre name embedded in a film record could
// not be resolved to a genre document during enrichment.
type ResolutionError struct {
	Genre string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving genre %q: %v", e.Genre, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
