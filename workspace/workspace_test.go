package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/albertocavalcante/go-bzlconfig/analysis"
	"github.com/albertocavalcante/go-bzlconfig/label"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const xcodeBuild = `
load("@build_bazel_apple_support//xcode:xcode_config.bzl", "xcode_config")

package(default_visibility = ["//visibility:public"])

xcode_version(
    name = "v8",
    version = "8.0",
    aliases = ["8", "default"],
    default_ios_sdk_version = "10.0",
)

xcode_config(
    name = "host_xcodes",
    versions = [":v8"],
    default = ":v8",
)

alias(
    name = "current",
    actual = ":host_xcodes",
)

alias(
    name = "ping",
    actual = ":pong",
)

alias(
    name = "pong",
    actual = ":ping",
)
`

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "xcode/BUILD.bazel", xcodeBuild)
	writeFile(t, root, "other/BUILD", `xcode_version(name = "v9", version = "9.0")`)

	ext := t.TempDir()
	writeFile(t, ext, "BUILD.bazel", `alias(name = "xcodes", actual = "@//xcode:host_xcodes")`)

	return New(root, WithRepository("local_config_xcode", ext))
}

func TestWorkspaceTarget(t *testing.T) {
	ws := newTestWorkspace(t)
	ctx := context.Background()

	tgt, err := ws.Target(ctx, label.MustParse("//xcode:v8"))
	if err != nil {
		t.Fatalf("Target() error = %v", err)
	}
	if tgt.Kind != "xcode_version" {
		t.Errorf("Kind = %q, want xcode_version", tgt.Kind)
	}
	if got := tgt.AttrString("version"); got != "8.0" {
		t.Errorf("version = %q, want 8.0", got)
	}
	if got := tgt.AttrStrings("aliases"); !reflect.DeepEqual(got, []string{"8", "default"}) {
		t.Errorf("aliases = %v", got)
	}

	other, err := ws.Target(ctx, label.MustParse("//other:v9"))
	if err != nil {
		t.Fatalf("Target(BUILD) error = %v", err)
	}
	if other.AttrString("version") != "9.0" {
		t.Errorf("version = %q, want 9.0", other.AttrString("version"))
	}
}

func TestWorkspaceAlias(t *testing.T) {
	ws := newTestWorkspace(t)
	ctx := context.Background()
	want := label.MustParse("//xcode:host_xcodes")

	for _, l := range []string{"//xcode:current", "@local_config_xcode//:xcodes"} {
		t.Run(l, func(t *testing.T) {
			tgt, err := ws.Target(ctx, label.MustParse(l))
			if err != nil {
				t.Fatalf("Target() error = %v", err)
			}
			if tgt.Label != want || tgt.Kind != "xcode_config" {
				t.Errorf("Target() = %s (%s), want %s (xcode_config)", tgt.Label, tgt.Kind, want)
			}
		})
	}

	_, err := ws.Target(ctx, label.MustParse("//xcode:ping"))
	if !errors.Is(err, ErrAliasCycle) {
		t.Errorf("Target(cycle) error = %v, want ErrAliasCycle", err)
	}
}

func TestWorkspaceMissing(t *testing.T) {
	ws := newTestWorkspace(t)
	tests := []string{
		"//xcode:nope",
		"//nopkg:target",
		"@unknown//:target",
	}
	for _, l := range tests {
		t.Run(l, func(t *testing.T) {
			_, err := ws.Target(context.Background(), label.MustParse(l))
			if !errors.Is(err, analysis.ErrNoSuchTarget) {
				t.Errorf("Target() error = %v, want ErrNoSuchTarget", err)
			}
		})
	}
}

func TestWorkspaceCancelled(t *testing.T) {
	ws := newTestWorkspace(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ws.Target(ctx, label.MustParse("//xcode:v8"))
	if !errors.Is(err, analysis.ErrInterrupted) {
		t.Errorf("Target() error = %v, want ErrInterrupted", err)
	}
}

func TestWorkspacePackageCache(t *testing.T) {
	ws := newTestWorkspace(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	pkgs := make([]*Package, 8)
	for i := range pkgs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := ws.Package(ctx, "", "xcode")
			if err != nil {
				t.Errorf("Package() error = %v", err)
				return
			}
			pkgs[i] = p
		}(i)
	}
	wg.Wait()

	for _, p := range pkgs[1:] {
		if p != pkgs[0] {
			t.Fatal("concurrent loads returned different packages")
		}
	}

	// Cached packages survive file removal.
	if err := os.Remove(filepath.Join(ws.Root(), "xcode", "BUILD.bazel")); err != nil {
		t.Fatal(err)
	}
	if _, err := ws.Target(ctx, label.MustParse("//xcode:v8")); err != nil {
		t.Errorf("Target() after removal error = %v", err)
	}
}

func TestParsePackageErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "syntax error", content: `xcode_version(name = "v8"`},
		{name: "duplicate target", content: "alias(name = \"a\", actual = \":b\")\nalias(name = \"a\", actual = \":c\")\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePackage("BUILD", "", "pkg", []byte(tt.content))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("ParsePackage() error = %v, want *ParseError", err)
			}
		})
	}
}

func TestParsePackageSkipsNonRules(t *testing.T) {
	p, err := ParsePackage("BUILD", "repo", "pkg", []byte(xcodeBuild))
	if err != nil {
		t.Fatalf("ParsePackage() error = %v", err)
	}
	if len(p.Targets) != 5 {
		t.Errorf("got %d targets, want 5", len(p.Targets))
	}
	if got := p.Targets["v8"].Label.String(); got != "@repo//pkg:v8" {
		t.Errorf("label = %q, want @repo//pkg:v8", got)
	}
}
