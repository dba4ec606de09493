package xcode

import (
	"errors"
	"fmt"

	"github.com/albertocavalcante/go-bzlconfig/label"
	"github.com/albertocavalcante/go-bzlconfig/selection"
)

// DefaultConfigLabel is the xcode_config used when no
// --xcode_version_config is given.
const DefaultConfigLabel = "@local_config_xcode//:host_xcodes"

// Flags are the build settings that influence Xcode resolution.
type Flags struct {
	// XcodeVersion is the --xcode_version override: a version or an alias.
	XcodeVersion string `toml:"xcode_version"`

	// XcodeVersionConfig is the label of the xcode_config rule.
	XcodeVersionConfig string `toml:"xcode_version_config"`

	// SDKVersions overrides the SDK version per platform type name.
	SDKVersions map[string]string `toml:"sdk_versions"`

	// MinimumOS overrides the minimum OS version per platform type name.
	MinimumOS map[string]string `toml:"minimum_os"`
}

// ConfigLabel returns the parsed --xcode_version_config label, falling back
// to DefaultConfigLabel.
func (f Flags) ConfigLabel() (label.Label, error) {
	s := f.XcodeVersionConfig
	if s == "" {
		s = DefaultConfigLabel
	}
	l, err := label.Parse(s)
	if err != nil {
		return label.Label{}, fmt.Errorf("xcode_version_config: %w", err)
	}
	return l, nil
}

// overrides parses per-platform version overrides.
func overrides(name string, raw map[string]string) (map[PlatformType]label.DottedVersion, error) {
	out := make(map[PlatformType]label.DottedVersion, len(raw))
	for k, s := range raw {
		if s == "" {
			continue
		}
		p, err := ParsePlatformType(k)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		v, err := label.ParseDottedVersion(s)
		if err != nil {
			return nil, fmt.Errorf("%s for %s: %w", name, p, err)
		}
		out[p] = v
	}
	return out, nil
}

// Validate checks that every flag value is well formed.
func (f Flags) Validate() error {
	var errs []error
	if _, err := f.ConfigLabel(); err != nil {
		errs = append(errs, err)
	}
	if _, err := overrides("sdk version", f.SDKVersions); err != nil {
		errs = append(errs, err)
	}
	if _, err := overrides("minimum os", f.MinimumOS); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Config is the resolved Xcode configuration of a target. It is immutable and
// safe for concurrent use.
type Config struct {
	version   label.DottedVersion
	source    selection.Source
	selected  label.Label
	sdk       map[PlatformType]label.DottedVersion
	minimumOS map[PlatformType]label.DottedVersion
}

// NewConfig applies the per-platform flag overrides to res.
//
// For every platform, the SDK version is the flag override if present, else
// the selected version's default. The minimum OS version is the flag override
// if present, else the effective SDK version.
func NewConfig(res Resolution, flags Flags) (*Config, error) {
	sdkOverrides, err := overrides("sdk version", flags.SDKVersions)
	if err != nil {
		return nil, err
	}
	minOverrides, err := overrides("minimum os", flags.MinimumOS)
	if err != nil {
		return nil, err
	}

	c := &Config{
		source:    res.Source,
		selected:  res.Selected,
		sdk:       make(map[PlatformType]label.DottedVersion, 4),
		minimumOS: make(map[PlatformType]label.DottedVersion, 4),
	}
	if v, ok := res.Properties.Version(); ok {
		c.version = v
	}
	for _, p := range PlatformTypes() {
		sdk, ok := sdkOverrides[p]
		if !ok {
			sdk = res.Properties.DefaultSDKVersion(p)
		}
		c.sdk[p] = sdk

		minOS, ok := minOverrides[p]
		if !ok {
			minOS = sdk
		}
		c.minimumOS[p] = minOS
	}
	return c, nil
}

// Version returns the Xcode version, if one is pinned.
func (c *Config) Version() (label.DottedVersion, bool) {
	return c.version, !c.version.IsEmpty()
}

// SDKVersion returns the SDK version for a platform type.
func (c *Config) SDKVersion(p PlatformType) label.DottedVersion {
	return c.sdk[p]
}

// MinimumOS returns the minimum OS version for a platform type.
func (c *Config) MinimumOS(p PlatformType) label.DottedVersion {
	return c.minimumOS[p]
}

// Source reports how the Xcode version was chosen.
func (c *Config) Source() selection.Source {
	return c.source
}

// Selected returns the label of the chosen xcode_version, if any.
func (c *Config) Selected() (label.Label, bool) {
	return c.selected, !c.selected.IsEmpty()
}
