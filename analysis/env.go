// Package analysis defines the collaborators that configuration and toolchain
// resolution consume from the surrounding build system: target lookup, the
// post-graph prerequisite lookup, and the per-target error reporter.
//
// Nothing in this package knows how targets are loaded; see package workspace
// for an implementation backed by BUILD files and [StaticEnvironment] for an
// in-memory one.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/albertocavalcante/go-bzlconfig/label"
)

// Sentinel errors for collaborator failures.
var (
	// ErrNoSuchTarget indicates the label does not name a declared target.
	ErrNoSuchTarget = errors.New("no such target")

	// ErrUnresolvedLabelKind indicates a label did not resolve to a target of
	// the expected rule kind.
	ErrUnresolvedLabelKind = errors.New("label does not resolve to expected kind")

	// ErrInterrupted indicates a blocking call observed cancellation.
	ErrInterrupted = errors.New("interrupted")
)

// Environment resolves labels to declared targets.
//
// Implementations may block on I/O and must return promptly with an error
// wrapping ErrInterrupted (or the context error) once ctx is done.
type Environment interface {
	Target(ctx context.Context, l label.Label) (*Target, error)
}

// Target is a declared rule instance.
type Target struct {
	Label label.Label
	Kind  string
	Attrs Attributes
}

// Attributes holds literal attribute values keyed by name. Values are one of
// string, []string, bool or int.
type Attributes map[string]any

// AttrString returns a string attribute, or "" if absent or not a string.
func (t *Target) AttrString(name string) string {
	s, _ := t.Attrs[name].(string)
	return s
}

// AttrStrings returns a string list attribute, or nil if absent or not a list.
func (t *Target) AttrStrings(name string) []string {
	switch v := t.Attrs[name].(type) {
	case []string:
		return v
	case string:
		if v != "" {
			return []string{v}
		}
	}
	return nil
}

// AttrBool returns a boolean attribute, or false if absent or not a bool.
func (t *Target) AttrBool(name string) bool {
	b, _ := t.Attrs[name].(bool)
	return b
}

// AttrInt returns an integer attribute, or 0 if absent or not an int.
func (t *Target) AttrInt(name string) int {
	n, _ := t.Attrs[name].(int)
	return n
}

// AttrLabel returns a label attribute resolved relative to the target's package.
// The boolean is false if the attribute is absent or empty.
func (t *Target) AttrLabel(name string) (label.Label, bool, error) {
	s := t.AttrString(name)
	if s == "" {
		return label.Label{}, false, nil
	}
	l, err := label.ParseRelative(s, t.Label)
	if err != nil {
		return label.Label{}, false, fmt.Errorf("%s: attribute %q: %w", t.Label, name, err)
	}
	return l, true, nil
}

// AttrLabels returns a label list attribute resolved relative to the target's
// package, in declaration order.
func (t *Target) AttrLabels(name string) ([]label.Label, error) {
	raw := t.AttrStrings(name)
	out := make([]label.Label, 0, len(raw))
	for _, s := range raw {
		l, err := label.ParseRelative(s, t.Label)
		if err != nil {
			return nil, fmt.Errorf("%s: attribute %q: %w", t.Label, name, err)
		}
		out = append(out, l)
	}
	return out, nil
}

// IsInterrupted reports whether err stems from cancellation rather than a
// configuration problem. Interrupted errors are never reported to users.
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Interrupted wraps the context's error with ErrInterrupted.
func Interrupted(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
}

// CheckInterrupt returns an interrupted error if ctx is done.
func CheckInterrupt(ctx context.Context) error {
	if ctx.Err() != nil {
		return Interrupted(ctx)
	}
	return nil
}
