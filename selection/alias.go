package selection

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/go-bzlconfig/label"
)

const defaultKind = "xcode_config"

// AliasMap maps every registered key to the candidate that owns it.
// Keys are kept in registration order.
type AliasMap[P any] struct {
	keys    []string
	entries map[string]*Candidate[P]
}

// Lookup returns the candidate registered under key.
func (m *AliasMap[P]) Lookup(key string) (*Candidate[P], bool) {
	c, ok := m.entries[key]
	return c, ok
}

// Keys returns all registered keys in registration order.
func (m *AliasMap[P]) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of registered keys.
func (m *AliasMap[P]) Len() int {
	return len(m.keys)
}

// BuildAliasMap registers the aliases and identity of every candidate.
// Duplicate registrations are reported against an xcode_config rule.
func BuildAliasMap[P any](candidates []Candidate[P]) (*AliasMap[P], error) {
	return BuildAliasMapFor(defaultKind, candidates)
}

// BuildAliasMapFor is BuildAliasMap with the declaring rule kind used in
// duplicate-alias messages.
//
// The returned map points into candidates; the slice must not be modified
// afterwards.
func BuildAliasMapFor[P any](kind string, candidates []Candidate[P]) (*AliasMap[P], error) {
	if kind == "" {
		kind = defaultKind
	}
	m := &AliasMap[P]{
		entries: make(map[string]*Candidate[P], len(candidates)),
	}

	register := func(key string, owner *Candidate[P]) error {
		if existing, ok := m.entries[key]; ok {
			// An alias listed twice by the same candidate is not a collision.
			if existing == owner {
				return nil
			}
			return duplicateAliasError(kind, key, candidates)
		}
		m.entries[key] = owner
		m.keys = append(m.keys, key)
		return nil
	}

	for i := range candidates {
		c := &candidates[i]
		for _, alias := range c.Aliases {
			if err := register(alias, c); err != nil {
				return nil, err
			}
		}
		// A version aliased to itself is registered once.
		if !c.HasAlias(c.Identity) {
			if err := register(c.Identity, c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func duplicateAliasError[P any](kind, key string, candidates []Candidate[P]) error {
	var (
		implicated []label.Label
		identities []string
		names      []string
	)
	for i := range candidates {
		c := &candidates[i]
		if !c.claims(key) {
			continue
		}
		implicated = append(implicated, c.Label)
		identities = append(identities, c.Identity)
		// Candidates built outside a BUILD file may have no label.
		if c.Label.IsEmpty() {
			names = append(names, c.Identity)
		} else {
			names = append(names, c.Label.String())
		}
	}
	return &SelectionError{
		Code: CodeDuplicateAlias,
		Message: fmt.Sprintf("'%s' is registered to multiple labels (%s) in a single %s rule",
			key, strings.Join(names, ", "), kind),
		Key:        key,
		Labels:     implicated,
		Identities: identities,
	}
}
