package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tabulate/internal/paths"
)

func (a *app) newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml to the configuration directory",
		Long: `Init creates the configuration directory and writes config.yaml with the
default settings. An existing file is kept unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(a.configDir)
			if err != nil {
				return sysError(fmt.Errorf("resolve config dir: %w", err))
			}
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create config dir %s: %w", configDir, err))
			}

			path := filepath.Join(configDir, configFileExt)
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Fprintf(cmd.OutOrStdout(), "config already exists: %s\n", path)
				return nil
			}

			data, err := yaml.Marshal(defaultSettings())
			if err != nil {
				return sysError(fmt.Errorf("encode config: %w", err))
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return sysError(fmt.Errorf("write config %s: %w", path, err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config.yaml")
	return cmd
}
