// Package bzlconfig resolves Bazel build configuration that depends on
// declared versions and registered toolchains.
//
// # Overview
//
// The module is organized in layers:
//
//   - label: validated labels and dotted versions
//   - selection: the generic alias map and precedence rules
//   - xcode: xcode_config / xcode_version loading and per-platform SDK versions
//   - toolchain: toolchain type to provider binding for a target
//   - analysis: the collaborator interfaces (target lookup, prerequisites)
//   - workspace: an analysis.Environment backed by BUILD files on disk
//
// This package ties them together.
//
// # Quick Start
//
// Resolve the Xcode configuration of a workspace:
//
//	env := workspace.New("/path/to/workspace")
//	cfg, err := bzlconfig.ResolveXcodeConfig(ctx, env, xcode.Flags{
//	    XcodeVersionConfig: "//xcode:host_xcodes",
//	    XcodeVersion:       "beta",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.SDKVersion(xcode.IOS))
//
// Resolve the toolchains of a target:
//
//	tc, err := bzlconfig.ResolveToolchainContext(ctx, env, bzlconfig.ToolchainRequest{
//	    Types:          []label.Label{label.MustParse("//toolchains:cc_type")},
//	    Registrations:  registered,
//	    TargetPlatform: label.MustParse("//platforms:ios_arm64"),
//	})
//
// # Thread Safety
//
// Functions in this package may be called concurrently with a shared
// Environment. The values they return are owned by the caller.
package bzlconfig

import (
	"context"
	"fmt"

	"github.com/albertocavalcante/go-bzlconfig/analysis"
	"github.com/albertocavalcante/go-bzlconfig/label"
	"github.com/albertocavalcante/go-bzlconfig/toolchain"
	"github.com/albertocavalcante/go-bzlconfig/xcode"
)

// ResolveXcodeConfig loads the xcode_config named by flags (or the default
// host config) and resolves it against the flag overrides.
func ResolveXcodeConfig(ctx context.Context, env analysis.Environment, flags xcode.Flags, opts ...Option) (*xcode.Config, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	logger := cfg.log()

	if err := flags.Validate(); err != nil {
		return nil, err
	}
	configLabel, err := flags.ConfigLabel()
	if err != nil {
		return nil, err
	}

	logger.Debug("loading xcode config", "label", configLabel.String())
	decl, err := xcode.LoadDeclaration(ctx, env, configLabel)
	if err != nil {
		return nil, fmt.Errorf("load xcode config: %w", err)
	}

	result, err := decl.Resolve(flags)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", configLabel, err)
	}

	attrs := []any{"config", configLabel.String(), "source", result.Source().String()}
	if v, ok := result.Version(); ok {
		attrs = append(attrs, "version", v.String())
	}
	if selected, ok := result.Selected(); ok {
		attrs = append(attrs, "selected", selected.String())
	}
	logger.Info("resolved xcode config", attrs...)
	return result, nil
}

// ToolchainRequest describes the toolchains one target needs.
type ToolchainRequest struct {
	// Types are the required toolchain types in declaration order.
	Types []label.Label

	// Registrations are toolchain() targets in priority order.
	Registrations []label.Label

	// TargetPlatform and ExecPlatform name platform() targets. An empty label
	// means no platform; only unconstrained registrations match it.
	TargetPlatform label.Label
	ExecPlatform   label.Label

	// Prerequisites, if set, supplies the evaluated toolchain edges and the
	// returned context is bound. Otherwise it is returned unbound.
	Prerequisites analysis.PrerequisiteSource
}

// ResolveToolchainContext resolves req.Types to toolchain labels and, when
// prerequisites are available, binds their providers.
func ResolveToolchainContext(ctx context.Context, env analysis.Environment, req ToolchainRequest, opts ...Option) (*toolchain.Context, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	logger := cfg.log()

	regs, err := toolchain.LoadRegistrations(ctx, env, req.Registrations)
	if err != nil {
		return nil, fmt.Errorf("load toolchain registrations: %w", err)
	}
	target, err := loadPlatform(ctx, env, req.TargetPlatform)
	if err != nil {
		return nil, err
	}
	exec, err := loadPlatform(ctx, env, req.ExecPlatform)
	if err != nil {
		return nil, err
	}

	resolved, err := toolchain.ResolveLabels(req.Types, regs, target, exec)
	if err != nil {
		return nil, err
	}
	for _, b := range resolved.Bindings() {
		logger.Debug("resolved toolchain", "type", b.Type.String(), "toolchain", b.Toolchain.String())
	}

	tc := toolchain.Create(req.Types, resolved)
	if req.Prerequisites == nil {
		return tc, nil
	}
	if err := tc.BindFrom(ctx, req.Prerequisites); err != nil {
		return nil, err
	}
	logger.Debug("bound toolchain context", "context", tc.String())
	return tc, nil
}

func loadPlatform(ctx context.Context, env analysis.Environment, l label.Label) (*toolchain.Platform, error) {
	if l.IsEmpty() {
		return nil, nil
	}
	p, err := toolchain.LoadPlatform(ctx, env, l)
	if err != nil {
		return nil, fmt.Errorf("load platform: %w", err)
	}
	return p, nil
}
