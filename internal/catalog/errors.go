package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDuplicateIdentity indicates two documents resolve to the same maker/model.
var ErrDuplicateIdentity = errors.New("duplicate controller identity")

// ErrNotFound indicates no entry exists for the requested identity.
var ErrNotFound = errors.New("controller not found")

// InvalidFieldError reports the first frontmatter field that failed validation.
// Field is a dotted path for nested values (dimensionsMm.width) and uses an
// index suffix for list members (switchType[1]).
type InvalidFieldError struct {
	Field    string
	Expected string
	Actual   any
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %q: expected %s, got %s", e.Field, e.Expected, renderValue(e.Actual))
}

func invalidField(field, expected string, actual any) *InvalidFieldError {
	return &InvalidFieldError{Field: field, Expected: expected, Actual: actual}
}

func renderValue(v any) string {
	if v == nil {
		return "nothing"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
