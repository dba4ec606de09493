// Package xcode resolves the effective Xcode version configuration for a
// target: which declared xcode_version applies, and the resulting SDK and
// minimum OS version for every Apple platform type.
//
// Resolution has three steps:
//
//  1. [LoadDeclaration] reads the xcode_config rule named by
//     --xcode_version_config and every xcode_version it references.
//  2. [Resolve] picks the applicable version (see package selection for the
//     precedence rules) and yields its [VersionProperties].
//  3. [NewConfig] applies per-platform flag overrides on top of the selected
//     properties, producing the [Config] consumed by rules.
package xcode

import (
	"fmt"
	"strings"
)

// PlatformType is an Apple platform axis with its own SDK.
type PlatformType string

// Known platform types.
const (
	IOS     PlatformType = "ios"
	WatchOS PlatformType = "watchos"
	TvOS    PlatformType = "tvos"
	MacOS   PlatformType = "macos"
)

// PlatformTypes returns all platform types in a stable order.
func PlatformTypes() []PlatformType {
	return []PlatformType{IOS, WatchOS, TvOS, MacOS}
}

// ParsePlatformType parses a platform type name, ignoring case.
func ParsePlatformType(s string) (PlatformType, error) {
	switch p := PlatformType(strings.ToLower(s)); p {
	case IOS, WatchOS, TvOS, MacOS:
		return p, nil
	}
	return "", fmt.Errorf("unknown platform type %q: must be one of ios, watchos, tvos, macos", s)
}

func (p PlatformType) String() string {
	return string(p)
}

// sdkAttr is the xcode_version attribute holding the default SDK version.
func (p PlatformType) sdkAttr() string {
	return "default_" + string(p) + "_sdk_version"
}
