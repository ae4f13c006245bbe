package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mydehq/hwrename/internal/config"
	"github.com/mydehq/hwrename/internal/formatter"
	"github.com/mydehq/hwrename/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagShowGlobal bool
	flagInitForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect project configs and manage global defaults",
}

var configShowCmd = &cobra.Command{
	Use:   "show [config.json]",
	Short: "Print a project config or the global defaults",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagShowGlobal {
			data, err := yaml.Marshal(globalCfg)
			if err != nil {
				return fmt.Errorf("failed to encode global config: %w", err)
			}
			fmt.Printf("%s %s\n\n%s", ui.StyleHeader.Render("Global config:"), ui.StylePath.Render(config.GlobalPath()), data)
			return nil
		}

		path := configPath(args)
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", ui.StyleHeader.Render("Config:"), ui.StylePath.Render(path))
		fmt.Printf("%s %s\n", ui.StyleDim.Render("Working directory:"), cfg.WorkingDirectory)
		fmt.Printf("%s %s\n", ui.StyleDim.Render("Rename format:"), ui.StyleCommand.Render(cfg.RenameFormat))
		if tmpl, err := formatter.Compile(cfg.RenameFormat); err != nil {
			fmt.Printf("%s %v\n", ui.StyleError.Render("Invalid format:"), err)
		} else {
			fmt.Printf("%s %d\n", ui.StyleDim.Render("Arguments used:"), tmpl.Required())
		}
		fmt.Println(rowTable(cfg.Data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the global config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GlobalPath()
		if _, err := os.Stat(path); err == nil && !flagInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		d := config.GetDefaults()
		written, err := config.SaveGlobal(&d)
		if err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("%s %s", ui.StyleHeader.Render("Created global config:"), ui.StylePath.Render(written)))
		return nil
	},
}

func init() {
	configShowCmd.Flags().BoolVarP(&flagShowGlobal, "global", "g", false, "show the global defaults instead")
	configInitCmd.Flags().BoolVar(&flagInitForce, "force", false, "overwrite an existing global config")

	configCmd.AddCommand(configShowCmd, configInitCmd)
	RootCmd.AddCommand(configCmd)
}
