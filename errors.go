package bzlconfig

import (
	"github.com/albertocavalcante/go-bzlconfig/analysis"
	"github.com/albertocavalcante/go-bzlconfig/selection"
	"github.com/albertocavalcante/go-bzlconfig/toolchain"
	"github.com/albertocavalcante/go-bzlconfig/workspace"
)

// Sentinel errors returned by resolution. Match them with errors.Is.
var (
	// ErrDuplicateAlias indicates one alias or version string claimed by two
	// versions of the same xcode_config.
	ErrDuplicateAlias = selection.ErrDuplicateAlias

	// ErrMissingRequiredVersion indicates require_defined_versions is set but
	// no declared version was selected.
	ErrMissingRequiredVersion = selection.ErrMissingRequiredVersion

	// ErrUnresolvedLabelKind indicates a label that does not resolve to a
	// target of the expected rule kind.
	ErrUnresolvedLabelKind = analysis.ErrUnresolvedLabelKind

	// ErrNoSuchTarget indicates a label with no declared target.
	ErrNoSuchTarget = analysis.ErrNoSuchTarget

	// ErrInterrupted indicates the operation was cancelled.
	ErrInterrupted = analysis.ErrInterrupted

	// ErrMalformedTypeKey indicates a toolchain type that is not a valid label.
	ErrMalformedTypeKey = toolchain.ErrMalformedTypeKey

	// ErrConflictingBinding indicates a non-bijective toolchain resolution.
	ErrConflictingBinding = toolchain.ErrConflictingBinding

	// ErrNoMatchingToolchain indicates a required toolchain type with no
	// compatible registration.
	ErrNoMatchingToolchain = toolchain.ErrNoMatchingToolchain

	// ErrAliasCycle indicates alias() targets that point at each other.
	ErrAliasCycle = workspace.ErrAliasCycle
)
