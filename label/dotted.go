package label

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DottedVersion represents a version made of period-separated components,
// such as Xcode and Apple SDK versions ("8.0", "10.3.1", "9.0beta2").
//
// Each component has the form NUMBER[ALPHA[NUMBER]]. Versions compare
// component-wise; missing trailing components compare as zero, so "8" and
// "8.0.0" are equal. Within a component, a component without an alphabetic
// part compares higher than one with it ("9.0" > "9.0beta2").
type DottedVersion struct {
	raw        string
	components []component
}

type component struct {
	first  int
	alpha  string
	second int
}

var componentRegex = regexp.MustCompile(`^(\d+)(?:([a-z]+)(\d+)?)?$`)

// ParseDottedVersion creates a validated DottedVersion from a string.
func ParseDottedVersion(s string) (DottedVersion, error) {
	if s == "" {
		return DottedVersion{}, fmt.Errorf("dotted version cannot be empty")
	}
	parts := strings.Split(s, ".")
	comps := make([]component, 0, len(parts))
	for _, part := range parts {
		m := componentRegex.FindStringSubmatch(part)
		if m == nil {
			return DottedVersion{}, fmt.Errorf(
				"invalid dotted version %q: components must be of the form NUMBER[ALPHA[NUMBER]], got %q", s, part)
		}
		first, err := strconv.Atoi(m[1])
		if err != nil {
			return DottedVersion{}, fmt.Errorf("invalid dotted version %q: %w", s, err)
		}
		c := component{first: first, alpha: m[2]}
		if m[3] != "" {
			c.second, err = strconv.Atoi(m[3])
			if err != nil {
				return DottedVersion{}, fmt.Errorf("invalid dotted version %q: %w", s, err)
			}
		}
		comps = append(comps, c)
	}
	return DottedVersion{raw: s, components: comps}, nil
}

// MustDottedVersion creates a DottedVersion or panics. Use only for constants/tests.
func MustDottedVersion(s string) DottedVersion {
	v, err := ParseDottedVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version exactly as it was written.
func (v DottedVersion) String() string {
	return v.raw
}

// IsEmpty returns true if this is a zero-value DottedVersion.
func (v DottedVersion) IsEmpty() bool {
	return v.raw == ""
}

// Components returns the number of components in the version.
func (v DottedVersion) Components() int {
	return len(v.components)
}

// Compare compares two versions component-wise.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
func (v DottedVersion) Compare(other DottedVersion) int {
	n := max(len(v.components), len(other.components))
	for i := range n {
		if c := compareComponent(v.at(i), other.at(i)); c != 0 {
			return c
		}
	}
	return 0
}

// Equal reports whether two versions compare equal ("8.0" equals "8").
func (v DottedVersion) Equal(other DottedVersion) bool {
	return v.Compare(other) == 0
}

// Less returns true if v < other.
func (v DottedVersion) Less(other DottedVersion) bool {
	return v.Compare(other) < 0
}

func (v DottedVersion) at(i int) component {
	if i < len(v.components) {
		return v.components[i]
	}
	return component{}
}

func compareComponent(a, b component) int {
	if a.first != b.first {
		return intCompare(a.first, b.first)
	}
	if a.alpha != b.alpha {
		// No alphabetic part means a release, which sorts after any
		// pre-release qualifier of the same number.
		if a.alpha == "" {
			return 1
		}
		if b.alpha == "" {
			return -1
		}
		return strings.Compare(a.alpha, b.alpha)
	}
	return intCompare(a.second, b.second)
}

func intCompare(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
