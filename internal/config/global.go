package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/mydehq/hwrename/internal/types"
	"gopkg.in/yaml.v3"
)

// GlobalFile is the global config location relative to $XDG_CONFIG_HOME
const GlobalFile = "hwrename/config.yml"

var defaults = types.GlobalConfig{
	RenameFormat: "{0}{extname}",
	Pacing:       0,
	LogLevel:     "info",
	ConfigFile:   "config.json",
	SheetFile:    "exported.xlsx",
}

// GetDefaults returns the built-in global configuration
func GetDefaults() types.GlobalConfig {
	return defaults.Clone()
}

// GlobalPath returns the path of the global config file without creating it
func GlobalPath() string {
	if p, err := xdg.SearchConfigFile(GlobalFile); err == nil {
		return p
	}
	return filepath.Join(xdg.ConfigHome, GlobalFile)
}

// LoadGlobal reads the global config. A missing file yields the defaults.
func LoadGlobal() (*types.GlobalConfig, error) {
	path, err := xdg.SearchConfigFile(GlobalFile)
	if err != nil {
		cfg := GetDefaults()
		return &cfg, nil
	}
	return LoadGlobalFrom(path)
}

// LoadGlobalFrom reads a global config file, filling unset fields from defaults
func LoadGlobalFrom(path string) (*types.GlobalConfig, error) {
	cfg := GetDefaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read global config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse global config %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveGlobal writes the global config to its XDG location and returns the path
func SaveGlobal(cfg *types.GlobalConfig) (string, error) {
	path, err := xdg.ConfigFile(GlobalFile)
	if err != nil {
		return "", fmt.Errorf("failed to resolve global config path: %w", err)
	}
	return path, SaveGlobalTo(path, cfg)
}

// SaveGlobalTo writes the global config to path
func SaveGlobalTo(path string, cfg *types.GlobalConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode global config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write global config: %w", err)
	}
	return nil
}
