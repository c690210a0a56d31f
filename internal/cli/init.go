package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teamcharls/netpbm-wic/internal/paths"
	"github.com/teamcharls/netpbm-wic/internal/sqlite"
	"github.com/teamcharls/netpbm-wic/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend    string `yaml:"backend"`
	DataDir    string `yaml:"data_dir,omitempty"`
	ModulePath string `yaml:"module_path,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty"`
}

func newInitCmd(a *app) *cobra.Command {
	var modulePath string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create config.yaml and the registry hive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if modulePath != "" {
				a.cfg.ModulePath = modulePath
			}
			return runInit(cmd, a)
		},
	}
	cmd.Flags().StringVar(&modulePath, "module-path", "", "in-process server path to register")
	return cmd
}

func runInit(cmd *cobra.Command, a *app) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return systemError("create config directory: %w", err)
	}

	configPath := paths.ConfigFile(a.configDir)
	written, err := writeConfigIfMissing(configPath, a.cfg)
	if err != nil {
		return systemError("write config: %w", err)
	}
	if written {
		a.log.Info("wrote config", "path", configPath)
	}

	store := sqlite.NewStore()
	if err := store.Attach(a.cfg); err != nil {
		return systemError("initialize registry hive: %w", err)
	}
	hive := store.Path()
	if err := store.Detach(); err != nil {
		return systemError("close registry hive: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "config: %s\nhive:   %s\n", configPath, hive)
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg unless the file
// exists. It reports whether it wrote the file.
func writeConfigIfMissing(path string, cfg types.Config) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := yaml.Marshal(&configFile{
		Backend:    cfg.Backend,
		DataDir:    cfg.DataDir,
		ModulePath: cfg.ModulePath,
		LogLevel:   cfg.LogLevel,
	})
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	return true, os.WriteFile(path, data, 0o644)
}
