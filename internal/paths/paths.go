// Package paths resolves where netpbmwic keeps its config.yaml and its
// registry hive.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Directory and file names.
const (
	AppName          = "netpbmwic"
	LocalConfigDir   = ".netpbmwic"
	LocalDataDir     = ".netpbmwic-db"
	ConfigFileName   = "config.yaml"
	EnvConfigDir     = "NETPBMWIC_CONFIG_DIR"
	EnvDataDir       = "NETPBMWIC_DATA_DIR"
	hiveDatabaseFile = "registry.db"
)

// platformDir holds the lookups tests replace.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	goos          string
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	goos:          runtime.GOOS,
}

// xdgDir returns $env/netpbmwic, or ~/fallback/netpbmwic when env is unset.
func xdgDir(env string, fallback ...string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return filepath.Join(v, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, fallback...), AppName)...), nil
}

// DefaultConfigDir returns the per-user configuration directory:
// $XDG_CONFIG_HOME/netpbmwic on Linux, os.UserConfigDir()/netpbmwic
// elsewhere (%APPDATA% on Windows).
func DefaultConfigDir() (string, error) {
	if platformDir.goos == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultDataDir returns the per-user data directory:
// $XDG_DATA_HOME/netpbmwic on Linux, the config directory elsewhere.
func DefaultDataDir() (string, error) {
	if platformDir.goos == "linux" {
		return xdgDir("XDG_DATA_HOME", ".local", "share")
	}
	return DefaultConfigDir()
}

// ResolveConfigDir applies flag > NETPBMWIC_CONFIG_DIR > DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies flag > config.yaml data_dir >
// NETPBMWIC_DATA_DIR > $(CWD)/.netpbmwic-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, dir := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, LocalDataDir), nil
}

// ConfigFile returns the config.yaml path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// HiveFile returns the registry database path inside dataDir.
func HiveFile(dataDir string) string {
	return filepath.Join(dataDir, hiveDatabaseFile)
}
