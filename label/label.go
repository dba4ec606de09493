// Package label provides strongly-typed, validated label and version values
// used throughout configuration and toolchain resolution.
//
// All types in this package are immutable and validate their values at
// construction time. Zero values are the "empty" value of each type; use the
// constructor functions (Parse, ParseRelative, ParseDottedVersion) to create
// valid instances.
//
// # Types
//
//   - [Label]: an absolute Bazel label (e.g., "//tools/xcode:config", "@apple//:ios")
//   - [DottedVersion]: a period-separated version (e.g., "8.0", "10.3.1", "9.0beta2")
//
// # Validation Patterns
//
// Repository names must match: [A-Za-z0-9._+~-]*
// Package paths are slash-separated words without empty segments.
// Target names must not be empty and must not start or end with a slash.
package label

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bazelbuild/buildtools/labels"
)

// Label represents a validated absolute Bazel label.
//
// Label is comparable and is intended to be used as a map key. Two labels are
// equal when their repository, package and target name are equal, regardless
// of the textual form they were parsed from ("//foo" and "//foo:foo" are the
// same label).
type Label struct {
	repo string
	pkg  string
	name string
}

var (
	repoRegex = regexp.MustCompile(`^[A-Za-z0-9._+~-]*$`)
	pkgRegex  = regexp.MustCompile(`^([A-Za-z0-9_.+=,@~ -]+(/[A-Za-z0-9_.+=,@~ -]+)*)?$`)
	nameRegex = regexp.MustCompile(`^[A-Za-z0-9_.+=,@~ !%^#$&()*'-]+(/[A-Za-z0-9_.+=,@~ !%^#$&()*'-]+)*$`)
)

// Parse parses an absolute label such as "//pkg:name", "//pkg" or
// "@repo//pkg:name". Canonical repository names ("@@repo//...") are accepted
// and normalized to their single-@ form.
func Parse(s string) (Label, error) {
	if s == "" {
		return Label{}, fmt.Errorf("label cannot be empty")
	}
	raw := s
	if strings.HasPrefix(s, "@@") {
		s = s[1:]
	}
	// "@//pkg" names the main repository.
	if strings.HasPrefix(s, "@//") {
		s = s[1:]
	}
	if !strings.HasPrefix(s, "//") && !strings.HasPrefix(s, "@") {
		return Label{}, fmt.Errorf("invalid label %q: must be absolute (start with // or @)", raw)
	}
	if !strings.Contains(s, "//") {
		return Label{}, fmt.Errorf("invalid label %q: missing //", raw)
	}
	if strings.Count(s, ":") > 1 {
		return Label{}, fmt.Errorf("invalid label %q: multiple colons", raw)
	}
	if strings.HasSuffix(s, ":") {
		return Label{}, fmt.Errorf("invalid label %q: empty target name", raw)
	}

	parsed := labels.Parse(s)
	return newLabel(raw, parsed.Repository, parsed.Package, parsed.Target)
}

// ParseRelative parses a label that may be relative to pkg (":name" or
// "name"). Absolute inputs are parsed as with Parse; relative inputs inherit
// the repository and package of base.
func ParseRelative(s string, base Label) (Label, error) {
	if s == "" {
		return Label{}, fmt.Errorf("label cannot be empty")
	}
	if strings.HasPrefix(s, "//") || strings.HasPrefix(s, "@") {
		return Parse(s)
	}
	if strings.Contains(s, "//") || strings.Count(s, ":") > 1 {
		return Label{}, fmt.Errorf("invalid relative label %q", s)
	}
	parsed := labels.ParseRelative(s, base.pkg)
	return newLabel(s, base.repo, base.pkg, parsed.Target)
}

func newLabel(raw, repo, pkg, name string) (Label, error) {
	if !repoRegex.MatchString(repo) {
		return Label{}, fmt.Errorf("invalid label %q: invalid repository name %q", raw, repo)
	}
	if !pkgRegex.MatchString(pkg) {
		return Label{}, fmt.Errorf("invalid label %q: invalid package path %q", raw, pkg)
	}
	if name == "" || name == "." || name == ".." {
		return Label{}, fmt.Errorf("invalid label %q: empty target name", raw)
	}
	if !nameRegex.MatchString(name) {
		return Label{}, fmt.Errorf("invalid label %q: invalid target name %q", raw, name)
	}
	return Label{repo: repo, pkg: pkg, name: name}, nil
}

// MustParse parses a Label or panics. Use only for constants/tests.
func MustParse(s string) Label {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

// String returns the canonical form of the label: "//pkg:name" or
// "@repo//pkg:name". The empty label renders as "".
func (l Label) String() string {
	if l.IsEmpty() {
		return ""
	}
	var b strings.Builder
	if l.repo != "" {
		b.WriteString("@")
		b.WriteString(l.repo)
	}
	b.WriteString("//")
	b.WriteString(l.pkg)
	b.WriteString(":")
	b.WriteString(l.name)
	return b.String()
}

// Repo returns the repository name, or "" for the main repository.
func (l Label) Repo() string {
	return l.repo
}

// Package returns the package path.
func (l Label) Package() string {
	return l.pkg
}

// Name returns the target name.
func (l Label) Name() string {
	return l.name
}

// IsEmpty returns true if this is a zero-value Label.
func (l Label) IsEmpty() bool {
	return l.name == ""
}

// Compare orders labels by repository, package and name.
func (l Label) Compare(other Label) int {
	if c := strings.Compare(l.repo, other.repo); c != 0 {
		return c
	}
	if c := strings.Compare(l.pkg, other.pkg); c != 0 {
		return c
	}
	return strings.Compare(l.name, other.name)
}

// Join renders labels as a comma-separated list in the given order.
func Join(ls []Label) string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}
