package toolchain

import (
	"errors"
	"fmt"

	"github.com/albertocavalcante/go-bzlconfig/label"
)

// ErrMalformedTypeKey indicates a textual toolchain type that is not a valid
// absolute label.
var ErrMalformedTypeKey = errors.New("malformed toolchain type")

// KeyError reports a toolchain type key that could not be parsed.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("Unable to parse toolchain %s: %v", e.Key, e.Err)
}

// Is matches ErrMalformedTypeKey.
func (e *KeyError) Is(target error) bool {
	return target == ErrMalformedTypeKey
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// ParseTypeKey converts a textual toolchain type into its canonical label
// form. Lookups always go through this single parsing step.
func ParseTypeKey(s string) (label.Label, error) {
	l, err := label.Parse(s)
	if err != nil {
		return label.Label{}, &KeyError{Key: s, Err: err}
	}
	return l, nil
}
