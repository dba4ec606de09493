package analysis

import (
	"context"

	"github.com/albertocavalcante/go-bzlconfig/label"
)

// ToolchainsAttr is the implicit attribute whose prerequisites carry the
// resolved toolchains of a target.
const ToolchainsAttr = "$toolchains"

// Provider is opaque data produced by evaluating a dependency.
type Provider any

// Prerequisite is one evaluated dependency edge: the dependency's label and
// the provider it produced.
type Prerequisite struct {
	Label    label.Label
	Provider Provider
}

// PrerequisiteSource exposes the dependency edges evaluated by the build graph
// for the target under analysis.
type PrerequisiteSource interface {
	// Prerequisites returns the evaluated edges of attr in evaluation order.
	Prerequisites(ctx context.Context, attr string) ([]Prerequisite, error)
}

// PrerequisiteMap is a PrerequisiteSource over already-evaluated edges.
type PrerequisiteMap map[string][]Prerequisite

// Prerequisites returns the edges recorded for attr.
func (m PrerequisiteMap) Prerequisites(ctx context.Context, attr string) ([]Prerequisite, error) {
	if err := CheckInterrupt(ctx); err != nil {
		return nil, err
	}
	return m[attr], nil
}
