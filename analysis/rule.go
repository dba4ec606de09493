package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/albertocavalcante/go-bzlconfig/label"
)

// LabelError reports a label that did not resolve to a target of the
// expected kind. It matches ErrUnresolvedLabelKind.
type LabelError struct {
	// Description names the setting that referenced the label, e.g.
	// "xcode_version_config".
	Description string
	Label       label.Label
	// Kind is the expected rule kind.
	Kind string
	// Actual is the kind found, or "" if the target does not exist.
	Actual string
	Err    error
}

func (e *LabelError) Error() string {
	msg := fmt.Sprintf("Expected value of %s (%s) to resolve to a target of type %s",
		e.Description, e.Label, e.Kind)
	// Missing targets keep the plain message.
	if e.Err != nil && !errors.Is(e.Err, ErrNoSuchTarget) {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches ErrUnresolvedLabelKind.
func (e *LabelError) Is(target error) bool {
	return target == ErrUnresolvedLabelKind
}

func (e *LabelError) Unwrap() error {
	return e.Err
}

// RuleForLabel resolves l through env and checks that it is a rule of the
// given kind. description names the referencing setting in diagnostics.
//
// Cancellation is returned as an ErrInterrupted error, never as a LabelError.
func RuleForLabel(ctx context.Context, env Environment, l label.Label, kind, description string) (*Target, error) {
	if err := CheckInterrupt(ctx); err != nil {
		return nil, err
	}
	if l.IsEmpty() {
		return nil, &LabelError{Description: description, Label: l, Kind: kind, Err: ErrNoSuchTarget}
	}

	t, err := env.Target(ctx, l)
	if err != nil {
		if IsInterrupted(err) {
			if errors.Is(err, ErrInterrupted) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", ErrInterrupted, err)
		}
		return nil, &LabelError{Description: description, Label: l, Kind: kind, Err: err}
	}
	if t.Kind != kind {
		return nil, &LabelError{Description: description, Label: l, Kind: kind, Actual: t.Kind}
	}
	return t, nil
}
