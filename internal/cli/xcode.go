package cli

import (
	"fmt"
	"io"
	"maps"

	"github.com/spf13/cobra"

	bzlconfig "github.com/albertocavalcante/go-bzlconfig"
	"github.com/albertocavalcante/go-bzlconfig/xcode"
)

// xcodeOptions holds the command-line values of the xcode command.
type xcodeOptions struct {
	flags     xcode.Flags
	sdk       map[xcode.PlatformType]*string
	minimumOS map[xcode.PlatformType]*string
}

func (c *CLI) xcodeCommand() *cobra.Command {
	opts := &xcodeOptions{
		sdk:       make(map[xcode.PlatformType]*string),
		minimumOS: make(map[xcode.PlatformType]*string),
	}

	cmd := &cobra.Command{
		Use:   "xcode",
		Short: "Resolve the Xcode version and per-platform SDK versions",
		Long: `Resolve the xcode_config named by --xcode_version_config (default
` + xcode.DefaultConfigLabel + `) against --xcode_version and the
per-platform SDK and minimum OS flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runXcode(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.flags.XcodeVersion, "xcode_version", "", "Xcode version or alias to select")
	f.StringVar(&opts.flags.XcodeVersionConfig, "xcode_version_config", "", "label of the xcode_config rule")
	for _, p := range xcode.PlatformTypes() {
		opts.sdk[p] = f.String(p.String()+"_sdk_version", "", fmt.Sprintf("%s SDK version override", p))
		opts.minimumOS[p] = f.String(p.String()+"_minimum_os", "", fmt.Sprintf("%s minimum OS version override", p))
	}
	return cmd
}

func (c *CLI) runXcode(cmd *cobra.Command, opts *xcodeOptions) error {
	file, err := loadFileConfig(c.configPath)
	if err != nil {
		return err
	}
	flags := mergeXcodeFlags(cmd, file.Xcode, opts)

	ws, err := c.openWorkspace(cmd, file)
	if err != nil {
		return err
	}
	cfg, err := bzlconfig.ResolveXcodeConfig(cmd.Context(), ws, flags, bzlconfig.WithLogger(c.slogger()))
	if err != nil {
		return err
	}
	return printXcodeConfig(cmd.OutOrStdout(), cfg)
}

// mergeXcodeFlags overlays explicitly set command-line flags on the values
// read from the config file.
func mergeXcodeFlags(cmd *cobra.Command, base xcode.Flags, opts *xcodeOptions) xcode.Flags {
	out := xcode.Flags{
		XcodeVersion:       base.XcodeVersion,
		XcodeVersionConfig: base.XcodeVersionConfig,
		SDKVersions:        maps.Clone(base.SDKVersions),
		MinimumOS:          maps.Clone(base.MinimumOS),
	}
	changed := cmd.Flags().Changed
	if changed("xcode_version") {
		out.XcodeVersion = opts.flags.XcodeVersion
	}
	if changed("xcode_version_config") {
		out.XcodeVersionConfig = opts.flags.XcodeVersionConfig
	}
	for _, p := range xcode.PlatformTypes() {
		if changed(p.String() + "_sdk_version") {
			out.SDKVersions = setKey(out.SDKVersions, p.String(), *opts.sdk[p])
		}
		if changed(p.String() + "_minimum_os") {
			out.MinimumOS = setKey(out.MinimumOS, p.String(), *opts.minimumOS[p])
		}
	}
	return out
}

func setKey(m map[string]string, k, v string) map[string]string {
	if m == nil {
		m = make(map[string]string)
	}
	m[k] = v
	return m
}

func printXcodeConfig(w io.Writer, cfg *xcode.Config) error {
	version := "none"
	if v, ok := cfg.Version(); ok {
		version = v.String()
	}
	line := fmt.Sprintf("xcode_version: %s (%s", version, cfg.Source())
	if selected, ok := cfg.Selected(); ok {
		line += ", " + selected.String()
	}
	if _, err := fmt.Fprintln(w, line+")"); err != nil {
		return err
	}
	for _, p := range xcode.PlatformTypes() {
		if _, err := fmt.Fprintf(w, "%-8s sdk %-8s minimum_os %s\n", p.String()+":", cfg.SDKVersion(p), cfg.MinimumOS(p)); err != nil {
			return err
		}
	}
	return nil
}
