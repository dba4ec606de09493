package xcode

import (
	"github.com/albertocavalcante/go-bzlconfig/label"
	"github.com/albertocavalcante/go-bzlconfig/selection"
)

// fallbackSDKVersions are used when nothing declares an SDK version for a
// platform.
var fallbackSDKVersions = map[PlatformType]label.DottedVersion{
	IOS:     label.MustDottedVersion("8.4"),
	WatchOS: label.MustDottedVersion("2.0"),
	TvOS:    label.MustDottedVersion("9.0"),
	MacOS:   label.MustDottedVersion("10.10"),
}

// VersionProperties is the property bundle of an Xcode version: the version
// itself and its default SDK version per platform.
//
// The zero value is not useful; use NewVersionProperties, LiteralProperties or
// UnknownProperties.
type VersionProperties struct {
	version     label.DottedVersion
	sdkDefaults map[PlatformType]label.DottedVersion
}

// Version is a declared xcode_version candidate.
type Version = selection.Candidate[VersionProperties]

// NewVersionProperties creates properties for a declared version. Platforms
// missing from sdkDefaults use the fallback SDK version.
func NewVersionProperties(version label.DottedVersion, sdkDefaults map[PlatformType]label.DottedVersion) VersionProperties {
	defaults := make(map[PlatformType]label.DottedVersion, len(fallbackSDKVersions))
	for _, p := range PlatformTypes() {
		if v, ok := sdkDefaults[p]; ok && !v.IsEmpty() {
			defaults[p] = v
		} else {
			defaults[p] = fallbackSDKVersions[p]
		}
	}
	return VersionProperties{version: version, sdkDefaults: defaults}
}

// LiteralProperties creates properties for a version that is not declared
// anywhere. The literal is mirrored as the default SDK version of every
// platform.
func LiteralProperties(version label.DottedVersion) VersionProperties {
	defaults := make(map[PlatformType]label.DottedVersion, len(fallbackSDKVersions))
	for _, p := range PlatformTypes() {
		defaults[p] = version
	}
	return VersionProperties{version: version, sdkDefaults: defaults}
}

// UnknownProperties returns the properties used when no version is pinned:
// no Xcode version and the fallback SDK versions.
func UnknownProperties() VersionProperties {
	return NewVersionProperties(label.DottedVersion{}, nil)
}

// Version returns the Xcode version. The boolean is false when no version is
// pinned and host defaults apply.
func (p VersionProperties) Version() (label.DottedVersion, bool) {
	return p.version, !p.version.IsEmpty()
}

// DefaultSDKVersion returns the default SDK version for a platform.
func (p VersionProperties) DefaultSDKVersion(platform PlatformType) label.DottedVersion {
	if v, ok := p.sdkDefaults[platform]; ok {
		return v
	}
	return fallbackSDKVersions[platform]
}
