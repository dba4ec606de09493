package toolchain

import (
	"context"
	"errors"
	"fmt"

	"github.com/albertocavalcante/go-bzlconfig/analysis"
	"github.com/albertocavalcante/go-bzlconfig/label"
)

// ErrNoMatchingToolchain indicates a required toolchain type that no
// registered toolchain satisfies for the given platforms.
var ErrNoMatchingToolchain = errors.New("no matching toolchain")

// Rule kinds and attributes read from the environment.
const (
	RegistrationKind = "toolchain"
	PlatformKind     = "platform"

	toolchainTypeAttr        = "toolchain_type"
	toolchainAttr            = "toolchain"
	targetCompatibleWithAttr = "target_compatible_with"
	execCompatibleWithAttr   = "exec_compatible_with"
	constraintValuesAttr     = "constraint_values"
)

// Registration is a loaded toolchain() rule.
type Registration struct {
	Label                label.Label
	Type                 label.Label
	Toolchain            label.Label
	TargetCompatibleWith []label.Label
	ExecCompatibleWith   []label.Label
}

// Platform is a loaded platform() rule.
type Platform struct {
	Label       label.Label
	Constraints []label.Label
}

// Has reports whether the platform carries every constraint value.
func (p *Platform) Has(constraints []label.Label) bool {
	for _, c := range constraints {
		found := false
		for _, have := range p.Constraints {
			if have == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// LoadRegistrations resolves each label to a toolchain rule. Order is
// preserved; it is the priority order used by ResolveLabels.
func LoadRegistrations(ctx context.Context, env analysis.Environment, labels []label.Label) ([]Registration, error) {
	regs := make([]Registration, 0, len(labels))
	for _, l := range labels {
		rule, err := analysis.RuleForLabel(ctx, env, l, RegistrationKind, "registered toolchain")
		if err != nil {
			return nil, err
		}
		typ, ok, err := rule.AttrLabel(toolchainTypeAttr)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%s: missing %s", rule.Label, toolchainTypeAttr)
		}
		impl, ok, err := rule.AttrLabel(toolchainAttr)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%s: missing %s", rule.Label, toolchainAttr)
		}
		targetCompat, err := rule.AttrLabels(targetCompatibleWithAttr)
		if err != nil {
			return nil, err
		}
		execCompat, err := rule.AttrLabels(execCompatibleWithAttr)
		if err != nil {
			return nil, err
		}
		regs = append(regs, Registration{
			Label:                rule.Label,
			Type:                 typ,
			Toolchain:            impl,
			TargetCompatibleWith: targetCompat,
			ExecCompatibleWith:   execCompat,
		})
	}
	return regs, nil
}

// LoadPlatform resolves l to a platform rule.
func LoadPlatform(ctx context.Context, env analysis.Environment, l label.Label) (*Platform, error) {
	rule, err := analysis.RuleForLabel(ctx, env, l, PlatformKind, "platform")
	if err != nil {
		return nil, err
	}
	constraints, err := rule.AttrLabels(constraintValuesAttr)
	if err != nil {
		return nil, err
	}
	return &Platform{Label: rule.Label, Constraints: constraints}, nil
}

// ResolveLabels picks, for each required type in order, the first
// registration whose constraints are satisfied by the target and exec
// platforms. A nil platform accepts only registrations without constraints
// for it.
//
// All unsatisfied types are reported together in a single
// ErrNoMatchingToolchain error.
func ResolveLabels(required []label.Label, registrations []Registration, target, exec *Platform) (*ResolvedLabels, error) {
	var (
		bindings []Binding
		missing  []label.Label
	)
	for _, typ := range required {
		reg, ok := firstMatch(typ, registrations, target, exec)
		if !ok {
			missing = append(missing, typ)
			continue
		}
		bindings = append(bindings, Binding{Type: typ, Toolchain: reg.Toolchain})
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w for types %s", ErrNoMatchingToolchain, label.Join(missing))
	}
	return NewResolvedLabels(bindings...)
}

func firstMatch(typ label.Label, registrations []Registration, target, exec *Platform) (Registration, bool) {
	for _, reg := range registrations {
		if reg.Type != typ {
			continue
		}
		if !satisfies(target, reg.TargetCompatibleWith) || !satisfies(exec, reg.ExecCompatibleWith) {
			continue
		}
		return reg, true
	}
	return Registration{}, false
}

func satisfies(p *Platform, constraints []label.Label) bool {
	if p == nil {
		return len(constraints) == 0
	}
	return p.Has(constraints)
}
