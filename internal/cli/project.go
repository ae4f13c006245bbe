package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mydehq/hwrename/internal/config"
	"github.com/mydehq/hwrename/internal/sheet"
	"github.com/mydehq/hwrename/internal/types"
	"github.com/spf13/cobra"
)

// projectFlags are the overrides shared by scan and rename
type projectFlags struct {
	dir    string
	format string
	sheet  string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dir, "dir", "d", "", "working directory (overrides the config)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "rename format (overrides the config)")
	cmd.Flags().StringVarP(&f.sheet, "sheet", "s", "", "read rows from a spreadsheet instead of the config")
}

// configPath returns the project file named in args or the global default
func configPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return globalCfg.ConfigFile
}

// loadProject builds the project config from the config file or a
// spreadsheet, then applies the command line overrides. A relative
// working directory is taken relative to the config file.
func loadProject(cmd *cobra.Command, args []string, f *projectFlags) (*types.Config, error) {
	var cfg *types.Config

	if f.sheet != "" {
		data, err := sheet.Import(f.sheet)
		if err != nil {
			return nil, err
		}
		cfg = config.GenerateDefault(".", globalCfg.RenameFormat, data)
	} else {
		path := configPath(args)
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		if cfg.WorkingDirectory != "" && !filepath.IsAbs(cfg.WorkingDirectory) {
			cfg.WorkingDirectory = filepath.Join(filepath.Dir(path), cfg.WorkingDirectory)
		}
		logger.Debug("Loaded config", "path", path, "rows", len(cfg.Data))
	}

	if cmd.Flags().Changed("dir") {
		cfg.WorkingDirectory = f.dir
	}
	if cmd.Flags().Changed("format") {
		cfg.RenameFormat = f.format
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid project: %w", err)
	}
	return cfg, nil
}
