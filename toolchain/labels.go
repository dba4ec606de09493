// Package toolchain tracks which concrete toolchain satisfies each toolchain
// type required by a target.
//
// Resolution happens in two phases. Before the dependency graph is evaluated,
// a [ResolvedLabels] table maps every required toolchain type to the label of
// the chosen toolchain (see [ResolveLabels]); the framework uses
// [Context.RequiredTypeLabels] to know which dependency edges to evaluate.
// After the graph is evaluated, [Context.Bind] maps the evaluated edges back
// to toolchain types and records their providers.
package toolchain

import (
	"errors"
	"fmt"
	"slices"

	"github.com/albertocavalcante/go-bzlconfig/label"
)

// ErrConflictingBinding indicates a toolchain type bound to two labels, or a
// toolchain label bound to two types.
var ErrConflictingBinding = errors.New("conflicting toolchain binding")

// Binding pairs a toolchain type with the label of its resolved toolchain.
type Binding struct {
	Type      label.Label
	Toolchain label.Label
}

// ResolvedLabels is a bijective mapping between toolchain types and resolved
// toolchain labels. It is immutable once built.
type ResolvedLabels struct {
	bindings    []Binding
	byType      map[label.Label]label.Label
	byToolchain map[label.Label]label.Label
}

// NewResolvedLabels builds the table from bindings, preserving their order.
// Repeating an identical binding is allowed; any other reuse of a type or a
// toolchain label fails with ErrConflictingBinding.
func NewResolvedLabels(bindings ...Binding) (*ResolvedLabels, error) {
	r := &ResolvedLabels{
		byType:      make(map[label.Label]label.Label, len(bindings)),
		byToolchain: make(map[label.Label]label.Label, len(bindings)),
	}
	for _, b := range bindings {
		if b.Type.IsEmpty() || b.Toolchain.IsEmpty() {
			return nil, fmt.Errorf("%w: empty label in binding %s -> %s", ErrConflictingBinding, b.Type, b.Toolchain)
		}
		existing, typeBound := r.byType[b.Type]
		owner, toolchainBound := r.byToolchain[b.Toolchain]
		if typeBound && existing == b.Toolchain {
			continue
		}
		if typeBound {
			return nil, fmt.Errorf("%w: toolchain type %s resolved to both %s and %s",
				ErrConflictingBinding, b.Type, existing, b.Toolchain)
		}
		if toolchainBound {
			return nil, fmt.Errorf("%w: toolchain %s resolved for both %s and %s",
				ErrConflictingBinding, b.Toolchain, owner, b.Type)
		}
		r.byType[b.Type] = b.Toolchain
		r.byToolchain[b.Toolchain] = b.Type
		r.bindings = append(r.bindings, b)
	}
	return r, nil
}

// Toolchain returns the toolchain label resolved for a type.
func (r *ResolvedLabels) Toolchain(typ label.Label) (label.Label, bool) {
	l, ok := r.byType[typ]
	return l, ok
}

// Type returns the toolchain type a resolved toolchain label serves.
func (r *ResolvedLabels) Type(toolchain label.Label) (label.Label, bool) {
	l, ok := r.byToolchain[toolchain]
	return l, ok
}

// ToolchainLabels returns every resolved toolchain label in binding order.
func (r *ResolvedLabels) ToolchainLabels() []label.Label {
	out := make([]label.Label, len(r.bindings))
	for i, b := range r.bindings {
		out[i] = b.Toolchain
	}
	return out
}

// Bindings returns the bindings in order.
func (r *ResolvedLabels) Bindings() []Binding {
	return slices.Clone(r.bindings)
}

// Len returns the number of bindings.
func (r *ResolvedLabels) Len() int {
	return len(r.bindings)
}
