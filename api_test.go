package bzlconfig

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/albertocavalcante/go-bzlconfig/analysis"
	"github.com/albertocavalcante/go-bzlconfig/label"
	"github.com/albertocavalcante/go-bzlconfig/selection"
	"github.com/albertocavalcante/go-bzlconfig/xcode"
)

func target(lbl, kind string, attrs analysis.Attributes) *analysis.Target {
	return &analysis.Target{Label: label.MustParse(lbl), Kind: kind, Attrs: attrs}
}

// testEnv holds a host xcode config, a conflicting config and a toolchain
// setup for two platforms.
func testEnv() analysis.StaticEnvironment {
	return analysis.NewStaticEnvironment(
		target("@local_config_xcode//:v14", xcode.VersionKind, analysis.Attributes{
			"version":                 "14.3",
			"aliases":                 []string{"14"},
			"default_ios_sdk_version": "16.4",
		}),
		target("@local_config_xcode//:v15", xcode.VersionKind, analysis.Attributes{
			"version":                   "15.0",
			"aliases":                   []string{"15", "beta"},
			"default_ios_sdk_version":   "17.0",
			"default_macos_sdk_version": "14.0",
		}),
		target("@local_config_xcode//:host_xcodes", xcode.ConfigKind, analysis.Attributes{
			"versions": []string{":v14", ":v15"},
			"default":  ":v14",
		}),
		target("@local_config_xcode//:clashing", xcode.ConfigKind, analysis.Attributes{
			"versions": []string{":v15", ":v15_again"},
		}),
		target("@local_config_xcode//:v15_again", xcode.VersionKind, analysis.Attributes{
			"version": "15.0.1",
			"aliases": []string{"beta"},
		}),

		target("//toolchains:cc_ios", "toolchain", analysis.Attributes{
			"toolchain_type":         "//toolchains:cc_type",
			"toolchain":              "//impl:clang_ios",
			"target_compatible_with": []string{"//os:ios"},
		}),
		target("//toolchains:cc_host", "toolchain", analysis.Attributes{
			"toolchain_type": "//toolchains:cc_type",
			"toolchain":      "//impl:clang_host",
		}),
		target("//platforms:ios", "platform", analysis.Attributes{
			"constraint_values": []string{"//os:ios", "//cpu:arm64"},
		}),
	)
}

func TestResolveXcodeConfig(t *testing.T) {
	tests := []struct {
		name        string
		flags       xcode.Flags
		wantVersion string
		wantSource  selection.Source
		wantIOS     string
		wantMacOS   string
	}{
		{
			name:        "default host config",
			wantVersion: "14.3",
			wantSource:  selection.SourceDefault,
			wantIOS:     "16.4",
			wantMacOS:   "10.10",
		},
		{
			name:        "alias override",
			flags:       xcode.Flags{XcodeVersion: "beta"},
			wantVersion: "15.0",
			wantSource:  selection.SourceOverride,
			wantIOS:     "17.0",
			wantMacOS:   "14.0",
		},
		{
			name: "literal override with sdk flag",
			flags: xcode.Flags{
				XcodeVersion: "16.1",
				SDKVersions:  map[string]string{"macos": "15.1"},
			},
			wantVersion: "16.1",
			wantSource:  selection.SourceLiteral,
			wantIOS:     "16.1",
			wantMacOS:   "15.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ResolveXcodeConfig(context.Background(), testEnv(), tt.flags)
			if err != nil {
				t.Fatalf("ResolveXcodeConfig() error = %v", err)
			}
			v, ok := cfg.Version()
			if !ok || v.String() != tt.wantVersion {
				t.Errorf("Version() = %v, %v; want %s", v, ok, tt.wantVersion)
			}
			if cfg.Source() != tt.wantSource {
				t.Errorf("Source() = %v, want %v", cfg.Source(), tt.wantSource)
			}
			if got := cfg.SDKVersion(xcode.IOS).String(); got != tt.wantIOS {
				t.Errorf("SDKVersion(ios) = %s, want %s", got, tt.wantIOS)
			}
			if got := cfg.SDKVersion(xcode.MacOS).String(); got != tt.wantMacOS {
				t.Errorf("SDKVersion(macos) = %s, want %s", got, tt.wantMacOS)
			}
		})
	}
}

func TestResolveXcodeConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		flags   xcode.Flags
		wantErr error
	}{
		{
			name:    "duplicate alias",
			flags:   xcode.Flags{XcodeVersionConfig: "@local_config_xcode//:clashing"},
			wantErr: ErrDuplicateAlias,
		},
		{
			name:    "missing config",
			flags:   xcode.Flags{XcodeVersionConfig: "//nowhere:config"},
			wantErr: ErrUnresolvedLabelKind,
		},
		{
			name:    "config label of wrong kind",
			flags:   xcode.Flags{XcodeVersionConfig: "@local_config_xcode//:v14"},
			wantErr: ErrUnresolvedLabelKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveXcodeConfig(context.Background(), testEnv(), tt.flags)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ResolveXcodeConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveXcodeConfigLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := ResolveXcodeConfig(context.Background(), testEnv(), xcode.Flags{XcodeVersion: "15"}, WithLogger(logger))
	if err != nil {
		t.Fatalf("ResolveXcodeConfig() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"resolved xcode config", "version=15.0", "source=override"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestResolveToolchainContext(t *testing.T) {
	ccType := label.MustParse("//toolchains:cc_type")
	regs := []label.Label{
		label.MustParse("//toolchains:cc_ios"),
		label.MustParse("//toolchains:cc_host"),
	}

	t.Run("unbound without prerequisites", func(t *testing.T) {
		tc, err := ResolveToolchainContext(context.Background(), testEnv(), ToolchainRequest{
			Types:         []label.Label{ccType},
			Registrations: regs,
		})
		if err != nil {
			t.Fatalf("ResolveToolchainContext() error = %v", err)
		}
		if tc.IsBound() {
			t.Error("context bound without prerequisites")
		}
		want := "//impl:clang_host"
		if got := tc.RequiredTypeLabels(); len(got) != 1 || got[0].String() != want {
			t.Errorf("RequiredTypeLabels() = %v, want [%s]", got, want)
		}
	})

	t.Run("bound for ios", func(t *testing.T) {
		iosImpl := label.MustParse("//impl:clang_ios")
		tc, err := ResolveToolchainContext(context.Background(), testEnv(), ToolchainRequest{
			Types:          []label.Label{ccType},
			Registrations:  regs,
			TargetPlatform: label.MustParse("//platforms:ios"),
			Prerequisites: analysis.PrerequisiteMap{
				analysis.ToolchainsAttr: {{Label: iosImpl, Provider: "ios-cc"}},
			},
		})
		if err != nil {
			t.Fatalf("ResolveToolchainContext() error = %v", err)
		}
		p, ok, err := tc.Lookup("//toolchains:cc_type")
		if err != nil || !ok || p != "ios-cc" {
			t.Errorf("Lookup() = %v, %v, %v", p, ok, err)
		}
	})

	t.Run("no matching toolchain", func(t *testing.T) {
		_, err := ResolveToolchainContext(context.Background(), testEnv(), ToolchainRequest{
			Types:         []label.Label{label.MustParse("//toolchains:swift_type")},
			Registrations: regs,
		})
		if !errors.Is(err, ErrNoMatchingToolchain) {
			t.Errorf("ResolveToolchainContext() error = %v, want ErrNoMatchingToolchain", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := ResolveToolchainContext(ctx, testEnv(), ToolchainRequest{
			Types:         []label.Label{ccType},
			Registrations: regs,
		})
		if !errors.Is(err, ErrInterrupted) {
			t.Errorf("ResolveToolchainContext() error = %v, want ErrInterrupted", err)
		}
	})
}

func TestOptionsValidation(t *testing.T) {
	if _, err := newConfig(WithMaxConcurrency(0)); err == nil {
		t.Error("newConfig(WithMaxConcurrency(0)) succeeded")
	}
	cfg, err := newConfig()
	if err != nil {
		t.Fatalf("newConfig() error = %v", err)
	}
	if cfg.maxConcurrency != defaultMaxConcurrency {
		t.Errorf("maxConcurrency = %d, want %d", cfg.maxConcurrency, defaultMaxConcurrency)
	}
	if cfg.log().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is not silent")
	}
}
