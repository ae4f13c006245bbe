package cli

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/mydehq/hwrename/internal/scanner"
	"github.com/mydehq/hwrename/internal/ui"
	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files [dir]",
	Short: "List the files a target can match",
	Long:  "Lists the regular files of a directory, in the order a scan visits them, with the extension {extname} expands to.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}

		names, err := scanner.New(osfs.New(absPath)).List()
		if err != nil {
			return fmt.Errorf("failed to list directory: %w", err)
		}
		if len(names) == 0 {
			fmt.Printf("No files found in: %s\n", ui.StylePath.Render(absPath))
			return nil
		}

		fmt.Printf("%s in: %s\n", ui.StyleHeader.Render("Files"), ui.StylePath.Render(absPath))
		for _, n := range names {
			fmt.Printf(" %s %s %s\n", ui.StyleDim.Render("-"), n, ui.StyleDim.Render("{extname}="+scanner.SplitExt(n)))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(filesCmd)
}
