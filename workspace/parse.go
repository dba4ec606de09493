package workspace

import (
	"fmt"

	"github.com/albertocavalcante/go-bzlconfig/analysis"
	"github.com/albertocavalcante/go-bzlconfig/internal/buildutil"
	"github.com/albertocavalcante/go-bzlconfig/label"
	"github.com/bazelbuild/buildtools/build"
)

// Position represents a source position for diagnostics.
type Position struct {
	Filename string
	Line     int
	Column   int
}

// ParseError represents a BUILD file error with position information.
type ParseError struct {
	Pos     Position
	Message string
	Wrapped error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Pos.Filename, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// Package is a parsed BUILD file.
type Package struct {
	// Path is the BUILD file the package was read from.
	Path    string
	Repo    string
	Name    string
	Targets map[string]*analysis.Target
}

// ParsePackage parses BUILD file content for package pkg of repository repo.
// Declaring the same target name twice is an error.
func ParsePackage(filename, repo, pkg string, content []byte) (*Package, error) {
	f, err := build.ParseBuild(filename, content)
	if err != nil {
		return nil, &ParseError{
			Pos:     Position{Filename: filename},
			Message: fmt.Sprintf("syntax error: %v", err),
			Wrapped: err,
		}
	}

	p := &Package{
		Path:    filename,
		Repo:    repo,
		Name:    pkg,
		Targets: make(map[string]*analysis.Target),
	}
	prefix := "//" + pkg
	if repo != "" {
		prefix = "@" + repo + prefix
	}

	for _, stmt := range f.Stmt {
		call, ok := stmt.(*build.CallExpr)
		if !ok {
			continue
		}
		kind := buildutil.FuncName(call)
		name := buildutil.String(call, buildutil.NameAttr)
		if kind == "" || name == "" {
			continue
		}
		start, _ := call.Span()
		pos := Position{Filename: filename, Line: start.Line, Column: start.LineRune}

		if _, dup := p.Targets[name]; dup {
			return nil, &ParseError{Pos: pos, Message: fmt.Sprintf("target %q declared twice", name)}
		}
		l, err := label.Parse(prefix + ":" + name)
		if err != nil {
			return nil, &ParseError{Pos: pos, Message: err.Error(), Wrapped: err}
		}
		p.Targets[name] = &analysis.Target{
			Label: l,
			Kind:  kind,
			Attrs: buildutil.Attributes(call),
		}
	}
	return p, nil
}
