package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/albertocavalcante/go-bzlconfig/xcode"
)

// fileConfig is the layout of a --config file:
//
//	workspace = "/src/app"
//
//	[repositories]
//	local_config_xcode = "/src/app/xcode"
//
//	[xcode]
//	xcode_version = "15"
//	sdk_versions = { ios = "17.0" }
//
//	[toolchains]
//	platform = "//platforms:ios_arm64"
//	register = ["//toolchains:cc_ios"]
type fileConfig struct {
	Workspace    string            `toml:"workspace"`
	Repositories map[string]string `toml:"repositories"`
	Xcode        xcode.Flags       `toml:"xcode"`
	Toolchains   toolchainFlags    `toml:"toolchains"`
}

// toolchainFlags holds the settings of the toolchains command.
type toolchainFlags struct {
	Platform     string   `toml:"platform"`
	ExecPlatform string   `toml:"exec_platform"`
	Register     []string `toml:"register"`
}

// loadFileConfig reads path, or returns an empty config when path is "".
// Unknown keys are rejected so typos do not go unnoticed.
func loadFileConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("read config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
