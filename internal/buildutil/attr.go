// Package buildutil provides utilities for extracting rule attributes from
// buildtools AST nodes.
package buildutil

import (
	"strconv"

	"github.com/bazelbuild/buildtools/build"
)

// NameAttr is the attribute every rule declaration carries.
const NameAttr = "name"

// String extracts a string attribute from a function call by name.
// Returns empty string if the attribute is not found or not a string.
func String(call *build.CallExpr, name string) string {
	if s, ok := lookup(call, name).(*build.StringExpr); ok {
		return s.Value
	}
	return ""
}

// Value converts a build.Expr to the attribute value types understood by
// rule consumers: string, []string, bool and int. The boolean is false for
// None and for expressions that are not plain literals (select(), globs,
// dicts, variables).
func Value(expr build.Expr) (any, bool) {
	switch e := expr.(type) {
	case *build.StringExpr:
		return e.Value, true
	case *build.LiteralExpr:
		if val, err := strconv.Atoi(e.Token); err == nil {
			return val, true
		}
		return nil, false
	case *build.Ident:
		switch e.Name {
		case "True":
			return true, true
		case "False":
			return false, true
		default:
			return nil, false
		}
	case *build.ListExpr:
		result := make([]string, 0, len(e.List))
		for _, item := range e.List {
			s, ok := item.(*build.StringExpr)
			if !ok {
				return nil, false
			}
			result = append(result, s.Value)
		}
		return result, true
	default:
		return nil, false
	}
}

// Attributes collects every named argument of a rule call whose value Value
// can convert. The name attribute is included.
func Attributes(call *build.CallExpr) map[string]any {
	attrs := make(map[string]any, len(call.List))
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		lhs, ok := assign.LHS.(*build.Ident)
		if !ok {
			continue
		}
		if v, ok := Value(assign.RHS); ok {
			attrs[lhs.Name] = v
		}
	}
	return attrs
}

// FuncName returns the function name from a CallExpr.
// Returns empty string if the call is not a simple function call
// (e.g., method calls like native.alias()).
func FuncName(call *build.CallExpr) string {
	if ident, ok := call.X.(*build.Ident); ok {
		return ident.Name
	}
	return ""
}

func lookup(call *build.CallExpr, name string) build.Expr {
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		if lhs, ok := assign.LHS.(*build.Ident); ok && lhs.Name == name {
			return assign.RHS
		}
	}
	return nil
}
