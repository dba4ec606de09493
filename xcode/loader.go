package xcode

import (
	"context"
	"fmt"

	"github.com/albertocavalcante/go-bzlconfig/analysis"
	"github.com/albertocavalcante/go-bzlconfig/label"
)

// Rule kinds and attributes read by LoadDeclaration.
const (
	ConfigKind  = "xcode_config"
	VersionKind = "xcode_version"

	versionsAttr       = "versions"
	defaultAttr        = "default"
	requireDefinedAttr = "require_defined_versions"
	versionAttr        = "version"
	aliasesAttr        = "aliases"
)

// Declaration is a loaded xcode_config rule.
type Declaration struct {
	Label                  label.Label
	Versions               []Version
	Default                *Version
	RequireDefinedVersions bool
}

// LoadDeclaration resolves the xcode_config rule at configLabel and every
// xcode_version it references.
//
// Nothing is returned unless the whole declaration loaded; a cancelled load
// returns an error matching analysis.ErrInterrupted.
func LoadDeclaration(ctx context.Context, env analysis.Environment, configLabel label.Label) (*Declaration, error) {
	rule, err := analysis.RuleForLabel(ctx, env, configLabel, ConfigKind, "xcode_version_config")
	if err != nil {
		return nil, err
	}

	versionLabels, err := rule.AttrLabels(versionsAttr)
	if err != nil {
		return nil, err
	}
	versions := make([]Version, 0, len(versionLabels))
	for _, l := range versionLabels {
		v, err := loadVersion(ctx, env, l, VersionKind)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}

	var def *Version
	defLabel, ok, err := rule.AttrLabel(defaultAttr)
	if err != nil {
		return nil, err
	}
	if ok {
		v, err := loadVersion(ctx, env, defLabel, "default xcode version")
		if err != nil {
			return nil, err
		}
		def = &v
	}

	return &Declaration{
		Label:                  rule.Label,
		Versions:               versions,
		Default:                def,
		RequireDefinedVersions: rule.AttrBool(requireDefinedAttr),
	}, nil
}

func loadVersion(ctx context.Context, env analysis.Environment, l label.Label, description string) (Version, error) {
	rule, err := analysis.RuleForLabel(ctx, env, l, VersionKind, description)
	if err != nil {
		return Version{}, err
	}

	raw := rule.AttrString(versionAttr)
	version, err := label.ParseDottedVersion(raw)
	if err != nil {
		return Version{}, fmt.Errorf("%s: %w", l, err)
	}

	sdkDefaults := make(map[PlatformType]label.DottedVersion)
	for _, p := range PlatformTypes() {
		s := rule.AttrString(p.sdkAttr())
		if s == "" {
			continue
		}
		v, err := label.ParseDottedVersion(s)
		if err != nil {
			return Version{}, fmt.Errorf("%s: %s: %w", l, p.sdkAttr(), err)
		}
		sdkDefaults[p] = v
	}

	return Version{
		Label:      l,
		Identity:   version.String(),
		Aliases:    rule.AttrStrings(aliasesAttr),
		Properties: NewVersionProperties(version, sdkDefaults),
	}, nil
}

// Resolve selects the applicable version of the declaration for the given
// flags and applies per-platform overrides.
func (d *Declaration) Resolve(flags Flags) (*Config, error) {
	res, err := Resolve(d.RequireDefinedVersions, flags.XcodeVersion, d.Versions, d.Default)
	if err != nil {
		return nil, err
	}
	return NewConfig(res, flags)
}
