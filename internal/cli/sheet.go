package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mydehq/hwrename/internal/config"
	"github.com/mydehq/hwrename/internal/sheet"
	"github.com/mydehq/hwrename/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flagImportOut    string
	flagImportDir    string
	flagImportFormat string
	flagExportOut    string
)

var importCmd = &cobra.Command{
	Use:   "import <sheet.xlsx>",
	Short: "Create a project config from a spreadsheet",
	Long: `Import reads the active sheet of a workbook, skipping the header line,
and writes a project config holding its rows. Each row is cut or padded
to six cells: the target followed by $0 to $4.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := sheet.Import(args[0])
		if err != nil {
			return err
		}

		dir := flagImportDir
		if dir == "" {
			dir = "."
		}
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		format := flagImportFormat
		if format == "" {
			format = globalCfg.RenameFormat
		}

		out := flagImportOut
		if out == "" {
			out = globalCfg.ConfigFile
		}

		cfg := config.GenerateDefault(dir, format, data)
		if err := config.Save(out, cfg); err != nil {
			return err
		}

		fmt.Println(rowTable(cfg.Data))
		logger.Info(fmt.Sprintf("%s %s (%d rows)", ui.StyleHeader.Render("Created config:"), ui.StylePath.Render(out), len(cfg.Data)))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [config.json]",
	Short: "Write the rows of a project config to a spreadsheet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath(args)
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		out := flagExportOut
		if out == "" {
			out = globalCfg.SheetFile
		}
		if err := sheet.Export(out, cfg.Data); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("%s %s (%d rows)", ui.StyleHeader.Render("Exported:"), ui.StylePath.Render(out), len(cfg.Data)))
		return nil
	},
}

var templateCmd = &cobra.Command{
	Use:   "template [out.xlsx]",
	Short: "Write an example spreadsheet to fill in",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := globalCfg.SheetFile
		if len(args) > 0 {
			out = args[0]
		}
		if err := sheet.ExportTemplate(out); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("%s %s", ui.StyleHeader.Render("Created template:"), ui.StylePath.Render(out)))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&flagImportOut, "output", "o", "", "config file to write")
	importCmd.Flags().StringVarP(&flagImportDir, "dir", "d", "", "working directory stored in the config (default: current directory)")
	importCmd.Flags().StringVarP(&flagImportFormat, "format", "f", "", "rename format stored in the config")
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "spreadsheet to write")

	RootCmd.AddCommand(importCmd, exportCmd, templateCmd)
}
