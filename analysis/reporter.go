package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/albertocavalcante/go-bzlconfig/label"
)

// TargetError is a fatal configuration error attributed to one target.
type TargetError struct {
	Target label.Label
	Err    error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%s: %v", e.Target, e.Err)
}

func (e *TargetError) Unwrap() error {
	return e.Err
}

// Reporter collects fatal errors per target. A failure marks only the
// offending target as failed; unrelated targets are unaffected.
//
// Reporter is safe for concurrent use.
type Reporter struct {
	mu     sync.Mutex
	errors []*TargetError
	failed map[label.Label]bool
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{failed: make(map[label.Label]bool)}
}

// Report records err against target. Interrupted errors are not user-visible
// and are dropped; Report returns false for them and for nil errors.
func (r *Reporter) Report(target label.Label, err error) bool {
	if err == nil || IsInterrupted(err) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, &TargetError{Target: target, Err: err})
	r.failed[target] = true
	return true
}

// Failed reports whether any error was recorded for target.
func (r *Reporter) Failed(target label.Label) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed[target]
}

// HasErrors returns true if any error was recorded.
func (r *Reporter) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors) > 0
}

// Errors returns the recorded errors sorted by target label. Errors for the
// same target keep their reporting order.
func (r *Reporter) Errors() []*TargetError {
	r.mu.Lock()
	out := slices.Clone(r.errors)
	r.mu.Unlock()

	slices.SortStableFunc(out, func(a, b *TargetError) int {
		return cmp.Compare(a.Target.String(), b.Target.String())
	})
	return out
}
