// Package config persists hwrename project files and global defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mydehq/hwrename/internal/formatter"
	"github.com/mydehq/hwrename/internal/types"
)

// GenerateDefault builds a project for dir. An empty format falls back to
// the global default.
func GenerateDefault(dir, format string, data [][]string) *types.Config {
	if format == "" {
		format = defaults.RenameFormat
	}
	if data == nil {
		data = [][]string{}
	}
	return &types.Config{
		WorkingDirectory: dir,
		RenameFormat:     format,
		Data:             data,
	}
}

// Load reads a JSON project file
func Load(path string) (*types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg types.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, types.ErrInvalidConfig{Path: path, Reason: err.Error()}
	}
	if cfg.Data == nil {
		cfg.Data = [][]string{}
	}
	return &cfg, nil
}

// Save writes a JSON project file
func Save(path string, cfg *types.Config) error {
	if cfg == nil {
		return types.ErrInvalidConfig{Path: path, Reason: "config is nil"}
	}
	out := cfg.Clone()
	if out.Data == nil {
		out.Data = [][]string{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks that a project can be scanned: the working directory
// exists and the rename format compiles.
func Validate(cfg *types.Config) error {
	if cfg == nil {
		return types.ErrInvalidConfig{Reason: "config is nil"}
	}
	if cfg.WorkingDirectory == "" {
		return types.ErrInvalidConfig{Reason: "working directory is not set"}
	}
	info, err := os.Stat(cfg.WorkingDirectory)
	if err != nil {
		return types.ErrInvalidConfig{Reason: fmt.Sprintf("working directory: %v", err)}
	}
	if !info.IsDir() {
		return types.ErrInvalidConfig{Reason: fmt.Sprintf("%s is not a directory", cfg.WorkingDirectory)}
	}
	if _, err := formatter.Compile(cfg.RenameFormat); err != nil {
		return types.ErrInvalidConfig{Reason: err.Error()}
	}
	return nil
}
