package selection

import (
	"errors"
	"slices"

	"github.com/albertocavalcante/go-bzlconfig/label"
)

// Candidate is a declared, selectable entity: an Xcode version, a toolchain
// implementation, or anything else that is picked by alias.
//
// Candidates are immutable once loaded; the Properties bundle is opaque to
// this package.
type Candidate[P any] struct {
	// Label is the declaration the candidate was loaded from. It is used in
	// diagnostics only.
	Label label.Label

	// Identity is the candidate's own key, e.g. "8.0". It is registered as an
	// implicit alias.
	Identity string

	// Aliases are alternate keys through which the candidate may be selected.
	Aliases []string

	Properties P
}

// HasAlias reports whether key is one of the candidate's declared aliases.
func (c *Candidate[P]) HasAlias(key string) bool {
	return slices.Contains(c.Aliases, key)
}

// claims reports whether the candidate registers key, either as an alias or
// as its identity.
func (c *Candidate[P]) claims(key string) bool {
	return c.Identity == key || c.HasAlias(key)
}

// Request describes one selection.
type Request[P any] struct {
	// RequireDefined fails selection when neither an override match nor a
	// default is available.
	RequireDefined bool

	// Override is the requested key. Empty means no override.
	Override string

	// Candidates are the declared candidates, in declaration order.
	Candidates []Candidate[P]

	// Default is selected when no override is given. May be nil.
	Default *Candidate[P]

	// Kind names the declaring rule in error messages. Defaults to
	// "xcode_config".
	Kind string
}

// Source records which precedence rule produced a Result.
type Source int

const (
	// SourceUnknown means nothing was pinned; consumers fall back to
	// environment defaults.
	SourceUnknown Source = iota
	// SourceOverride means the override matched a registered alias.
	SourceOverride
	// SourceDefault means the declared default was used.
	SourceDefault
	// SourceLiteral means the override did not match and is used verbatim.
	SourceLiteral
)

// String returns a short human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceOverride:
		return "override"
	case SourceDefault:
		return "default"
	case SourceLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Result is the output of Select.
type Result[P any] struct {
	Source Source

	// Candidate is the selected candidate for SourceOverride and
	// SourceDefault; nil otherwise.
	Candidate *Candidate[P]

	// Literal holds the unmatched override for SourceLiteral.
	Literal string
}

// Selected reports whether a registered candidate was selected.
func (r Result[P]) Selected() bool {
	return r.Candidate != nil
}

// Error codes reported in SelectionError.Code.
const (
	CodeDuplicateAlias         = "DUPLICATE_ALIAS"
	CodeMissingRequiredVersion = "MISSING_REQUIRED_VERSION"
)

// Sentinel errors matched by SelectionError.Is.
var (
	// ErrDuplicateAlias indicates two candidates registered the same key.
	ErrDuplicateAlias = errors.New("duplicate alias")

	// ErrMissingRequiredVersion indicates an explicitly defined version was
	// required but none was available.
	ErrMissingRequiredVersion = errors.New("missing required version")
)

// SelectionError represents a configuration error found during selection.
type SelectionError struct {
	Code    string
	Message string

	// Key is the colliding alias for CodeDuplicateAlias.
	Key string

	// Labels lists, in input order, every candidate implicated in the error.
	Labels []label.Label

	// Identities holds the identity of each candidate in Labels.
	Identities []string
}

func (e *SelectionError) Error() string {
	return e.Message
}

// Is matches the sentinel corresponding to the error code.
func (e *SelectionError) Is(target error) bool {
	switch e.Code {
	case CodeDuplicateAlias:
		return target == ErrDuplicateAlias
	case CodeMissingRequiredVersion:
		return target == ErrMissingRequiredVersion
	}
	return false
}
