// Package cli implements the bzlconfig command-line interface.
//
// # Commands
//
//   - xcode: resolve the Xcode version and per-platform SDK versions
//   - toolchains: resolve toolchain types to toolchain labels for a platform
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The library
// logs through log/slog; the CLI plugs charmbracelet/log in as the handler.
//
// # Configuration
//
// --config reads a TOML file with the same settings as the flags. Flags given
// explicitly on the command line win over the file.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-bzlconfig/workspace"
)

// appName is the application name used for display.
const appName = "bzlconfig"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Version is reported by --version. Set with -ldflags at build time.
var Version = "dev"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath   string
	workspaceDir string
	repositories []string
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// slogger returns the CLI logger as a *slog.Logger for library calls.
func (c *CLI) slogger() *slog.Logger {
	return slog.New(c.Logger)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "bzlconfig resolves Xcode versions and toolchains from BUILD files",
		Long:         `bzlconfig reads xcode_config, xcode_version, toolchain and platform rules from a Bazel workspace and prints the configuration a build would select.`,
		Version:      Version,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "TOML file with default flag values")
	pf.StringVar(&c.workspaceDir, "workspace", ".", "workspace root directory")
	pf.StringArrayVar(&c.repositories, "repository", nil, "external repository as NAME=DIR (repeatable)")

	root.AddCommand(c.xcodeCommand())
	root.AddCommand(c.toolchainsCommand())

	return root
}

// openWorkspace builds the workspace from the persistent flags and the
// config file. Explicit flags win.
func (c *CLI) openWorkspace(cmd *cobra.Command, file *fileConfig) (*workspace.Workspace, error) {
	dir := c.workspaceDir
	if !cmd.Flags().Changed("workspace") && file.Workspace != "" {
		dir = file.Workspace
	}

	opts := []workspace.Option{workspace.WithLogger(c.slogger())}
	for name, path := range file.Repositories {
		opts = append(opts, workspace.WithRepository(name, path))
	}
	for _, repo := range c.repositories {
		name, path, ok := strings.Cut(repo, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("--repository %q: want NAME=DIR", repo)
		}
		opts = append(opts, workspace.WithRepository(strings.TrimPrefix(name, "@"), path))
	}

	c.Logger.Debug("opening workspace", "dir", dir)
	return workspace.New(dir, opts...), nil
}
