package selection

import "fmt"

// Select runs the precedence rules described in the package documentation.
//
// Select has no side effects; calling it twice with the same request yields
// the same result.
func Select[P any](req Request[P]) (Result[P], error) {
	kind := req.Kind
	if kind == "" {
		kind = defaultKind
	}

	aliases, err := BuildAliasMapFor(kind, req.Candidates)
	if err != nil {
		return Result[P]{}, err
	}

	if req.Override != "" {
		// The override is not necessarily a version; it may be an alias.
		if c, ok := aliases.Lookup(req.Override); ok {
			return Result[P]{Source: SourceOverride, Candidate: c}, nil
		}
		if req.RequireDefined {
			return Result[P]{}, missingRequiredVersion(kind)
		}
		return Result[P]{Source: SourceLiteral, Literal: req.Override}, nil
	}

	if req.Default != nil {
		return Result[P]{Source: SourceDefault, Candidate: req.Default}, nil
	}
	if req.RequireDefined {
		return Result[P]{}, missingRequiredVersion(kind)
	}
	return Result[P]{Source: SourceUnknown}, nil
}

func missingRequiredVersion(kind string) error {
	subject := "xcode version config"
	if kind != defaultKind {
		subject = kind
	}
	return &SelectionError{
		Code:    CodeMissingRequiredVersion,
		Message: fmt.Sprintf("%s required an explicitly defined version, but none was available", subject),
	}
}
