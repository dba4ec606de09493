package toolchain

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-bzlconfig/analysis"
	"github.com/albertocavalcante/go-bzlconfig/label"
)

// State is the binding state of a Context.
type State int

const (
	// Unbound means no providers have been recorded yet.
	Unbound State = iota
	// Bound means Bind completed; the provider table is final.
	Bound
)

func (s State) String() string {
	if s == Bound {
		return "bound"
	}
	return "unbound"
}

// providers is the Bound payload.
type providers map[label.Label]analysis.Provider

// Context stores the toolchains available to one target.
//
// A Context is owned by the analysis that created it. Bind must be called at
// most once; once bound, the Context is immutable and safe for concurrent
// reads.
type Context struct {
	required []label.Label
	resolved *ResolvedLabels

	// bound is nil while Unbound.
	bound providers
}

// Create returns an Unbound context for the required toolchain types.
func Create(required []label.Label, resolved *ResolvedLabels) *Context {
	if resolved == nil {
		resolved = &ResolvedLabels{}
	}
	return &Context{
		required: slices.Clone(required),
		resolved: resolved,
	}
}

// Bind records the provider of every prerequisite whose label is a resolved
// toolchain. Prerequisites for other labels are ignored.
//
// Bind panics if called twice.
func (c *Context) Bind(prereqs []analysis.Prerequisite) {
	if c.bound != nil {
		panic("toolchain: Bind called on an already bound context")
	}
	table := make(providers, len(c.required))
	for _, p := range prereqs {
		typ, ok := c.resolved.Type(p.Label)
		if !ok {
			continue
		}
		table[typ] = p.Provider
	}
	c.bound = table
}

// BindFrom fetches the toolchain prerequisites from src and binds them. If
// fetching fails or is cancelled, the context stays Unbound and the error is
// returned.
func (c *Context) BindFrom(ctx context.Context, src analysis.PrerequisiteSource) error {
	if c.bound != nil {
		panic("toolchain: BindFrom called on an already bound context")
	}
	prereqs, err := src.Prerequisites(ctx, analysis.ToolchainsAttr)
	if err != nil {
		return fmt.Errorf("load resolved toolchains: %w", err)
	}
	if err := analysis.CheckInterrupt(ctx); err != nil {
		return err
	}
	c.Bind(prereqs)
	return nil
}

// State reports whether Bind has completed.
func (c *Context) State() State {
	if c.bound != nil {
		return Bound
	}
	return Unbound
}

// IsBound is shorthand for State() == Bound.
func (c *Context) IsBound() bool {
	return c.bound != nil
}

// Get returns the provider bound to a toolchain type. It returns false while
// Unbound, or when no prerequisite matched the type.
func (c *Context) Get(typ label.Label) (analysis.Provider, bool) {
	p, ok := c.bound[typ]
	return p, ok
}

// Has reports whether a provider is bound to the toolchain type.
func (c *Context) Has(typ label.Label) bool {
	_, ok := c.bound[typ]
	return ok
}

// Lookup parses key as a toolchain type and returns its provider. A malformed
// key fails with ErrMalformedTypeKey; a well-formed key without a provider is
// not an error.
func (c *Context) Lookup(key string) (analysis.Provider, bool, error) {
	typ, err := ParseTypeKey(key)
	if err != nil {
		return nil, false, err
	}
	p, ok := c.Get(typ)
	return p, ok, nil
}

// RequiredTypes returns the required toolchain types in declaration order.
func (c *Context) RequiredTypes() []label.Label {
	return slices.Clone(c.required)
}

// RequiredTypeLabels returns the labels of the resolved toolchains, i.e. the
// dependency edges the framework must evaluate before Bind.
func (c *Context) RequiredTypeLabels() []label.Label {
	return c.resolved.ToolchainLabels()
}

// ResolvedLabels returns the type to toolchain label table.
func (c *Context) ResolvedLabels() *ResolvedLabels {
	return c.resolved
}

// String lists the toolchain types that have a bound provider.
func (c *Context) String() string {
	keys := make([]label.Label, 0, len(c.bound))
	for k := range c.bound {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, label.Label.Compare)

	var b strings.Builder
	b.WriteString("<toolchain_context.resolved_labels: ")
	b.WriteString(label.Join(keys))
	b.WriteString(">")
	return b.String()
}
