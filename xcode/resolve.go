package xcode

import (
	"fmt"

	"github.com/albertocavalcante/go-bzlconfig/label"
	"github.com/albertocavalcante/go-bzlconfig/selection"
)

// Resolution is the outcome of version selection.
type Resolution struct {
	Properties VersionProperties

	// Source records which precedence rule applied.
	Source selection.Source

	// Selected is the label of the chosen xcode_version, empty for literal
	// and unknown resolutions.
	Selected label.Label
}

// Resolve determines the effective version properties from the
// --xcode_version override (which may be a version or an alias), the declared
// versions, and the declared default.
//
// An override that matches no declared version is used as a literal version,
// unless requireDefined is set, in which case resolution fails with
// selection.ErrMissingRequiredVersion.
func Resolve(requireDefined bool, override string, versions []Version, defaultVersion *Version) (Resolution, error) {
	res, err := selection.Select(selection.Request[VersionProperties]{
		RequireDefined: requireDefined,
		Override:       override,
		Candidates:     versions,
		Default:        defaultVersion,
		Kind:           ConfigKind,
	})
	if err != nil {
		return Resolution{}, err
	}

	switch res.Source {
	case selection.SourceOverride, selection.SourceDefault:
		return Resolution{
			Properties: res.Candidate.Properties,
			Source:     res.Source,
			Selected:   res.Candidate.Label,
		}, nil
	case selection.SourceLiteral:
		v, err := label.ParseDottedVersion(res.Literal)
		if err != nil {
			return Resolution{}, fmt.Errorf("xcode version override: %w", err)
		}
		return Resolution{Properties: LiteralProperties(v), Source: res.Source}, nil
	default:
		return Resolution{Properties: UnknownProperties(), Source: res.Source}, nil
	}
}
