package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"claudefinder/internal/config"
)

// AppName names the per-user configuration and data directories.
const AppName = "claudefinder"

// DataDirEnv overrides the data directory.
const DataDirEnv = "CLAUDEFINDER_DATA_DIR"

// DatabaseName is the settings database shared with the host application.
const DatabaseName = "agents.db"

// AppPaths captures canonical locations for the locator.
type AppPaths struct {
	ConfigDir    string
	ConfigFile   string
	DataDir      string
	DatabaseFile string
	LogsDir      string
}

// Resolve determines the locations using the optional --config flag, the
// data directory override and the user's configuration directory.
func Resolve(configFlag string) (AppPaths, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return AppPaths{}, fmt.Errorf("detect user config dir: %w", err)
	}
	configDir := filepath.Join(base, AppName)

	dataDir := configDir
	if override := strings.TrimSpace(os.Getenv(DataDirEnv)); override != "" {
		if dataDir, err = filepath.Abs(override); err != nil {
			return AppPaths{}, fmt.Errorf("resolve %s: %w", DataDirEnv, err)
		}
	}

	ap := newAppPaths(configDir, dataDir)
	if configFlag != "" {
		abs, err := filepath.Abs(configFlag)
		if err != nil {
			return AppPaths{}, fmt.Errorf("resolve config path: %w", err)
		}
		ap.ConfigFile = abs
	}
	return ap, nil
}

func newAppPaths(configDir, dataDir string) AppPaths {
	return AppPaths{
		ConfigDir:    configDir,
		ConfigFile:   filepath.Join(configDir, "config.yaml"),
		DataDir:      dataDir,
		DatabaseFile: filepath.Join(dataDir, DatabaseName),
		LogsDir:      filepath.Join(dataDir, "logs"),
	}
}

// ApplyConfig applies path overrides from the loaded configuration. Relative
// values resolve against the data directory.
func ApplyConfig(ap AppPaths, cfg config.Config) AppPaths {
	if db := strings.TrimSpace(cfg.Cache.Database); db != "" {
		ap.DatabaseFile = resolvePath(ap.DataDir, db)
	}
	if dir := strings.TrimSpace(cfg.Log.Dir); dir != "" {
		ap.LogsDir = resolvePath(ap.DataDir, dir)
	}
	return ap
}

func resolvePath(root, value string) string {
	if strings.HasPrefix(value, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, value[2:])
		}
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}

// EnsureConfigDir creates the directory holding the config file.
func (p AppPaths) EnsureConfigDir() error {
	if err := os.MkdirAll(filepath.Dir(p.ConfigFile), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
