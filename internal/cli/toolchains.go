package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	bzlconfig "github.com/albertocavalcante/go-bzlconfig"
	"github.com/albertocavalcante/go-bzlconfig/label"
)

func (c *CLI) toolchainsCommand() *cobra.Command {
	var opts toolchainFlags

	cmd := &cobra.Command{
		Use:   "toolchains TYPE...",
		Short: "Resolve toolchain types to registered toolchains",
		Long: `Resolve each toolchain TYPE to the first registered toolchain whose
constraints match --platform (target) and --exec_platform.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runToolchains(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Platform, "platform", "", "target platform label")
	f.StringVar(&opts.ExecPlatform, "exec_platform", "", "execution platform label")
	f.StringSliceVar(&opts.Register, "register", nil, "toolchain() labels in priority order")
	return cmd
}

func (c *CLI) runToolchains(cmd *cobra.Command, opts toolchainFlags, args []string) error {
	file, err := loadFileConfig(c.configPath)
	if err != nil {
		return err
	}
	changed := cmd.Flags().Changed
	if !changed("platform") {
		opts.Platform = file.Toolchains.Platform
	}
	if !changed("exec_platform") {
		opts.ExecPlatform = file.Toolchains.ExecPlatform
	}
	if !changed("register") {
		opts.Register = file.Toolchains.Register
	}

	req := bzlconfig.ToolchainRequest{}
	if req.Types, err = parseLabels("toolchain type", args); err != nil {
		return err
	}
	if req.Registrations, err = parseLabels("--register", opts.Register); err != nil {
		return err
	}
	if req.TargetPlatform, err = parseOptionalLabel("--platform", opts.Platform); err != nil {
		return err
	}
	if req.ExecPlatform, err = parseOptionalLabel("--exec_platform", opts.ExecPlatform); err != nil {
		return err
	}

	ws, err := c.openWorkspace(cmd, file)
	if err != nil {
		return err
	}
	tc, err := bzlconfig.ResolveToolchainContext(cmd.Context(), ws, req, bzlconfig.WithLogger(c.slogger()))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, b := range tc.ResolvedLabels().Bindings() {
		if _, err := fmt.Fprintf(w, "%s -> %s\n", b.Type, b.Toolchain); err != nil {
			return err
		}
	}
	return nil
}

func parseLabels(what string, raw []string) ([]label.Label, error) {
	out := make([]label.Label, 0, len(raw))
	for _, s := range raw {
		l, err := label.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", what, err)
		}
		out = append(out, l)
	}
	return out, nil
}

func parseOptionalLabel(what, raw string) (label.Label, error) {
	if raw == "" {
		return label.Label{}, nil
	}
	l, err := label.Parse(raw)
	if err != nil {
		return label.Label{}, fmt.Errorf("%s: %w", what, err)
	}
	return l, nil
}
