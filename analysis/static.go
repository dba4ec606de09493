package analysis

import (
	"context"
	"fmt"

	"github.com/albertocavalcante/go-bzlconfig/label"
)

// Compile-time interface compliance check
var _ Environment = StaticEnvironment{}

// StaticEnvironment is an in-memory Environment keyed by label. It is useful
// for tests and for embedding declarations that do not live in BUILD files.
type StaticEnvironment map[label.Label]*Target

// NewStaticEnvironment indexes targets by their labels.
func NewStaticEnvironment(targets ...*Target) StaticEnvironment {
	env := make(StaticEnvironment, len(targets))
	for _, t := range targets {
		env[t.Label] = t
	}
	return env
}

// Target returns the target registered under l.
func (e StaticEnvironment) Target(ctx context.Context, l label.Label) (*Target, error) {
	if err := CheckInterrupt(ctx); err != nil {
		return nil, err
	}
	t, ok := e[l]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchTarget, l)
	}
	return t, nil
}
