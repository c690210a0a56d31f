package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/teamcharls/netpbm-wic/internal/paths"
	"github.com/teamcharls/netpbm-wic/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend    = "backend"
	cfgKeyDataDir    = "data_dir"
	cfgKeyModulePath = "module_path"
	cfgKeyLogLevel   = "log_level"

	defaultLogLevel = "info"
)

// loadConfig reads config.yaml from configDir with Viper. A missing
// directory or file is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("NETPBMWIC")
	if err := v.BindEnv(cfgKeyLogLevel); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		if os.IsNotExist(err) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// load resolves directories, reads config.yaml, applies flag overrides
// and builds the logger.
func (a *app) load(logOut io.Writer) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return systemError("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return systemError("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend:    v.GetString(cfgKeyBackend),
		DataDir:    dataDir,
		ModulePath: v.GetString(cfgKeyModulePath),
		LogLevel:   v.GetString(cfgKeyLogLevel),
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.configDir = configDir
	a.cfg = cfg
	a.log = newLogger(logOut, cfg.Level())
	return nil
}
