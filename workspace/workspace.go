// Package workspace implements analysis.Environment over BUILD files on disk.
//
// A workspace is a directory tree in which each package directory holds a
// BUILD.bazel or BUILD file. Top-level rule calls with a string name attribute
// become targets; their literal attributes (strings, string lists, booleans
// and integers) are exposed through analysis.Attributes. Computed values such
// as select() or glob() are not evaluated and are omitted.
//
// alias() targets are followed transparently, so a label may point at an
// alias of an xcode_config or toolchain rule.
//
// Parsed packages are cached; a Workspace is safe for concurrent use.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/albertocavalcante/go-bzlconfig/analysis"
	"github.com/albertocavalcante/go-bzlconfig/label"
)

// AliasKind is the rule kind followed by Target.
const AliasKind = "alias"

// ErrAliasCycle indicates alias() targets that point at each other.
var ErrAliasCycle = errors.New("alias cycle")

// maxAliasDepth bounds alias chains even without a cycle.
const maxAliasDepth = 32

// buildFileNames lists the BUILD file names in lookup order.
var buildFileNames = []string{"BUILD.bazel", "BUILD"}

// Compile-time interface compliance check
var _ analysis.Environment = (*Workspace)(nil)

// Workspace reads targets from BUILD files under a root directory.
type Workspace struct {
	root   string
	repos  map[string]string
	logger *slog.Logger

	packages sync.Map // map[string]*Package keyed by "repo//pkg"
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithRepository maps an external repository name to a directory, so labels
// such as "@name//pkg:target" can be resolved.
func WithRepository(name, dir string) Option {
	return func(w *Workspace) {
		w.repos[name] = filepath.Clean(dir)
	}
}

// WithLogger sets the logger used for package loading diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New returns a Workspace rooted at dir. The main repository ("") maps to dir.
func New(dir string, opts ...Option) *Workspace {
	w := &Workspace{
		root:   filepath.Clean(dir),
		repos:  make(map[string]string),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.repos[""] = w.root
	return w
}

// Root returns the main repository directory.
func (w *Workspace) Root() string {
	return w.root
}

// Target returns the target named by l, following alias() chains.
func (w *Workspace) Target(ctx context.Context, l label.Label) (*analysis.Target, error) {
	visited := make(map[label.Label]bool)
	current := l
	for depth := 0; ; depth++ {
		if visited[current] || depth >= maxAliasDepth {
			return nil, fmt.Errorf("%w: %s", ErrAliasCycle, l)
		}
		visited[current] = true

		t, err := w.lookup(ctx, current)
		if err != nil {
			return nil, err
		}
		if t.Kind != AliasKind {
			return t, nil
		}
		actual, ok, err := t.AttrLabel("actual")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%s: alias without actual", t.Label)
		}
		w.logger.Debug("following alias", "from", current.String(), "to", actual.String())
		current = actual
	}
}

func (w *Workspace) lookup(ctx context.Context, l label.Label) (*analysis.Target, error) {
	pkg, err := w.Package(ctx, l.Repo(), l.Package())
	if err != nil {
		return nil, err
	}
	t, ok := pkg.Targets[l.Name()]
	if !ok {
		return nil, fmt.Errorf("%w: %s (not declared in %s)", analysis.ErrNoSuchTarget, l, pkg.Path)
	}
	return t, nil
}

// Package loads and caches the package pkg of repository repo.
func (w *Workspace) Package(ctx context.Context, repo, pkg string) (*Package, error) {
	key := repo + "//" + pkg
	if cached, ok := w.packages.Load(key); ok {
		return cached.(*Package), nil
	}

	if err := analysis.CheckInterrupt(ctx); err != nil {
		return nil, err
	}

	dir, ok := w.repos[repo]
	if !ok {
		return nil, fmt.Errorf("%w: unknown repository @%s", analysis.ErrNoSuchTarget, repo)
	}
	path, data, err := readBuildFile(filepath.Join(dir, filepath.FromSlash(pkg)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no BUILD file for package @%s//%s", analysis.ErrNoSuchTarget, repo, pkg)
		}
		return nil, err
	}

	parsed, err := ParsePackage(path, repo, pkg, data)
	if err != nil {
		return nil, err
	}
	w.logger.Debug("loaded package", "path", path, "targets", len(parsed.Targets))

	actual, _ := w.packages.LoadOrStore(key, parsed)
	return actual.(*Package), nil
}

func readBuildFile(dir string) (string, []byte, error) {
	for _, name := range buildFileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return path, data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	return "", nil, fs.ErrNotExist
}
