package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mydehq/hwrename"
	"github.com/mydehq/hwrename/internal/types"
	"github.com/mydehq/hwrename/internal/ui"
	"github.com/spf13/cobra"
)

var (
	renameFlags projectFlags

	flagYes    bool
	flagDryRun bool
	flagPacing time.Duration
)

// previewLimit caps the renames listed in the confirmation note
const previewLimit = 10

var renameCmd = &cobra.Command{
	Use:   "rename [config.json]",
	Short: "Scan, review and rename the matched files",
	Long: `Rename scans the working directory, shows the planned renames and,
once confirmed, applies them one file at a time. A failed rename is
reported and the batch goes on with the next file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProject(cmd, args, &renameFlags)
		if err != nil {
			return err
		}
		pacing := globalCfg.Pacing
		if cmd.Flags().Changed("pacing") {
			pacing = flagPacing
		}
		return runRename(cmd, cfg, pacing)
	},
}

func init() {
	renameFlags.register(renameCmd)
	renameCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "skip the confirmation prompt")
	renameCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "check every rename without applying it")
	renameCmd.Flags().DurationVar(&flagPacing, "pacing", 0, "wait a random delay up to this duration before each rename")
	RootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, cfg *types.Config, pacing time.Duration) error {
	results, err := scanWithSpinner(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	fmt.Println(scanTable(results))
	printSummary(cmd.OutOrStdout(), hwrename.Summarize(results))

	plan := hwrename.Plan(results)
	if len(plan) == 0 {
		logger.Info(ui.StyleDim.Render("Nothing to rename"))
		return nil
	}

	if !flagYes && !flagDryRun {
		ok, err := ui.Confirm(
			fmt.Sprintf("Rename %d files?", len(plan)),
			planPreview(plan, previewLimit),
		)
		if errors.Is(err, ui.ErrUserAborted) || (err == nil && !ok) {
			logger.Info(ui.StyleDim.Render("Rename cancelled"))
			return nil
		}
		if err != nil {
			return err
		}
	}

	if flagDryRun {
		logger.Info(ui.StyleFlag.Render("[DRY RUN]") + " " + ui.StyleDim.Render("No file will be changed"))
	}

	opts := []hwrename.Option{
		hwrename.WithPacing(pacing),
		hwrename.WithEvents(logEvent),
	}
	if flagDryRun {
		opts = append(opts, hwrename.WithDryRun())
	}

	ctx := log.WithContext(cmd.Context(), logger)
	out, err := hwrename.Rename(ctx, cfg.WorkingDirectory, plan, opts...)
	if err != nil {
		return err
	}

	fmt.Println(renameTable(out))
	ok, failed := renameCounts(out)
	logger.Info(fmt.Sprintf("%s %d renamed, %d failed", ui.StyleHeader.Render("Done:"), ok, failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d renames failed", failed, len(out))
	}
	return nil
}

// planPreview lists up to limit planned renames, one per line
func planPreview(plan types.RenamePlan, limit int) string {
	var b strings.Builder
	for i, item := range plan {
		if i == limit {
			fmt.Fprintf(&b, "… and %d more", len(plan)-limit)
			break
		}
		fmt.Fprintf(&b, "%s → %s\n", item.OldName, item.NewName)
	}
	return strings.TrimRight(b.String(), "\n")
}
