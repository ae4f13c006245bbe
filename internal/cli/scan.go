package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/log"
	"github.com/mydehq/hwrename"
	"github.com/mydehq/hwrename/internal/types"
	"github.com/mydehq/hwrename/internal/ui"
	"github.com/spf13/cobra"
)

var scanFlags projectFlags

var scanCmd = &cobra.Command{
	Use:   "scan [config.json]",
	Short: "Show which files match each row and their new names",
	Long: `Scan lists the working directory and, for every row, finds the first
file whose name contains the row's target. Nothing is renamed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProject(cmd, args, &scanFlags)
		if err != nil {
			return err
		}
		results, err := scanWithSpinner(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		fmt.Println(scanTable(results))
		printSummary(os.Stdout, hwrename.Summarize(results))
		return nil
	},
}

func init() {
	scanFlags.register(scanCmd)
	RootCmd.AddCommand(scanCmd)
}

// scanWithSpinner runs hwrename.Scan behind a spinner and logs the events
func scanWithSpinner(ctx context.Context, cfg *types.Config) ([]types.ScanResult, error) {
	ctx = log.WithContext(ctx, logger)

	var results []types.ScanResult
	var scanErr error
	var events []hwrename.Event

	err := spinner.New().
		Title(fmt.Sprintf("%s %s", ui.StyleDim.Render("Scanning"), ui.StylePath.Render(cfg.WorkingDirectory))).
		Action(func() {
			results, scanErr = hwrename.Scan(ctx, cfg, hwrename.WithEvents(func(e hwrename.Event) {
				events = append(events, e)
			}))
		}).
		Run()
	if err != nil {
		return nil, fmt.Errorf("spinner failed: %w", err)
	}
	if scanErr != nil {
		return nil, scanErr
	}

	for _, e := range events {
		logEvent(e)
	}
	return results, nil
}

// logEvent routes a library event to the logger at a matching level
func logEvent(e hwrename.Event) {
	msg := ui.ColorizeEvent(e.Message)
	switch e.Type {
	case hwrename.EventWarning:
		logger.Warn(msg)
	case hwrename.EventError:
		logger.Error(msg)
	case hwrename.EventProgress:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
