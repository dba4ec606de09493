package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	bzlconfig "github.com/albertocavalcante/go-bzlconfig"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// newWorkspace lays out an xcode package, toolchain registrations and an
// external local_config_xcode repository that aliases the host config.
func newWorkspace(t *testing.T) (root, ext string) {
	t.Helper()
	root = t.TempDir()
	writeFile(t, filepath.Join(root, "xcode", "BUILD.bazel"), `
xcode_version(
    name = "v14",
    version = "14.3",
    aliases = ["14"],
    default_ios_sdk_version = "16.4",
)

xcode_version(
    name = "v15",
    version = "15.0",
    aliases = ["15", "beta"],
    default_ios_sdk_version = "17.0",
)

xcode_config(
    name = "host_xcodes",
    versions = [":v14", ":v15"],
    default = ":v14",
)
`)
	writeFile(t, filepath.Join(root, "toolchains", "BUILD.bazel"), `
toolchain(
    name = "cc_ios",
    toolchain_type = ":cc_type",
    toolchain = "//impl:clang_ios",
    target_compatible_with = ["//os:ios"],
)

toolchain(
    name = "cc_host",
    toolchain_type = ":cc_type",
    toolchain = "//impl:clang_host",
)
`)
	writeFile(t, filepath.Join(root, "platforms", "BUILD"), `
platform(
    name = "ios",
    constraint_values = ["//os:ios"],
)
`)

	ext = t.TempDir()
	writeFile(t, filepath.Join(ext, "BUILD.bazel"), `alias(name = "host_xcodes", actual = "@//xcode:host_xcodes")`)
	return root, ext
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestXcodeCommand(t *testing.T) {
	root, ext := newWorkspace(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "default config through external repository",
			args: []string{"xcode", "--workspace", root, "--repository", "local_config_xcode=" + ext},
			want: []string{
				"xcode_version: 14.3 (default, //xcode:v14)",
				"ios:     sdk 16.4     minimum_os 16.4",
				"macos:   sdk 10.10    minimum_os 10.10",
			},
		},
		{
			name: "alias and platform overrides",
			args: []string{
				"xcode", "--workspace", root,
				"--xcode_version_config", "//xcode:host_xcodes",
				"--xcode_version", "beta",
				"--ios_minimum_os", "15.0",
			},
			want: []string{
				"xcode_version: 15.0 (override, //xcode:v15)",
				"ios:     sdk 17.0     minimum_os 15.0",
			},
		},
		{
			name: "literal version",
			args: []string{
				"xcode", "--workspace", root,
				"--xcode_version_config", "//xcode:host_xcodes",
				"--xcode_version", "16.0",
			},
			want: []string{
				"xcode_version: 16.0 (literal)",
				"tvos:    sdk 16.0     minimum_os 16.0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("execute() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestXcodeCommandConfigFile(t *testing.T) {
	root, _ := newWorkspace(t)
	cfgPath := filepath.Join(t.TempDir(), "bzlconfig.toml")
	writeFile(t, cfgPath, `
workspace = "`+filepath.ToSlash(root)+`"

[xcode]
xcode_version_config = "//xcode:host_xcodes"
xcode_version = "15"
sdk_versions = { ios = "17.2" }
`)

	out, err := execute(t, "xcode", "--config", cfgPath)
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	for _, want := range []string{"xcode_version: 15.0 (override", "ios:     sdk 17.2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Explicit flags win over the file.
	out, err = execute(t, "xcode", "--config", cfgPath, "--xcode_version", "14")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.Contains(out, "xcode_version: 14.3 (override") {
		t.Errorf("flag did not override config file:\n%s", out)
	}
}

func TestXcodeCommandErrors(t *testing.T) {
	root, _ := newWorkspace(t)
	badConfig := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, badConfig, `xcode_versoin = "15"`)

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing default config repository",
			args:    []string{"xcode", "--workspace", root},
			wantErr: bzlconfig.ErrUnresolvedLabelKind,
		},
		{
			name:    "config label of wrong kind",
			args:    []string{"xcode", "--workspace", root, "--xcode_version_config", "//xcode:v14"},
			wantErr: bzlconfig.ErrUnresolvedLabelKind,
		},
		{
			name:    "unknown config key",
			args:    []string{"xcode", "--config", badConfig},
			wantMsg: "unknown key",
		},
		{
			name:    "malformed repository flag",
			args:    []string{"xcode", "--workspace", root, "--repository", "nodir"},
			wantMsg: "NAME=DIR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("execute() succeeded, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want message containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestToolchainsCommand(t *testing.T) {
	root, _ := newWorkspace(t)
	register := "//toolchains:cc_ios,//toolchains:cc_host"

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "ios platform",
			args: []string{"toolchains", "--workspace", root, "--platform", "//platforms:ios", "--register", register, "//toolchains:cc_type"},
			want: "//toolchains:cc_type -> //impl:clang_ios",
		},
		{
			name: "no platform",
			args: []string{"toolchains", "--workspace", root, "--register", register, "//toolchains:cc_type"},
			want: "//toolchains:cc_type -> //impl:clang_host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("execute() error = %v", err)
			}
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}

	_, err := execute(t, "toolchains", "--workspace", root, "--register", register, "//toolchains:swift_type")
	if !errors.Is(err, bzlconfig.ErrNoMatchingToolchain) {
		t.Errorf("error = %v, want ErrNoMatchingToolchain", err)
	}

	_, err = execute(t, "toolchains", "--workspace", root, "not-a-label")
	if err == nil {
		t.Error("malformed toolchain type accepted")
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.slogger().Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug message logged at info level: %q", buf.String())
	}
	c.SetLogLevel(LogDebug)
	c.slogger().Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug message missing at debug level: %q", buf.String())
	}
}
