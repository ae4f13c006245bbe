package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mydehq/hwrename/internal/types"
	"github.com/mydehq/hwrename/internal/ui"
)

var (
	headerCell = lipgloss.NewStyle().Bold(true).Padding(0, 1).Inherit(ui.StyleCommand)
	bodyCell   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(ui.StyleDim).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
}

// scanTable lays out scan results in row order
func scanTable(results []types.ScanResult) *table.Table {
	t := newTable("#", "Target", "Matched file", "New name", "Status")
	for i, r := range results {
		t.Row(strconv.Itoa(i+1), r.Target, r.MatchedFile, r.NewName, ui.StyledScanStatus(r))
	}
	return t
}

// renameTable lays out the outcome of every planned rename
func renameTable(results []types.RenameResult) *table.Table {
	t := newTable("#", "Old name", "New name", "Result")
	for _, r := range results {
		t.Row(strconv.Itoa(r.Index+1), r.OldName, r.NewName, ui.StyledOutcome(r.Outcome))
	}
	return t
}

// rowTable lays out raw project rows
func rowTable(data [][]string) *table.Table {
	t := newTable("#", "target", "$0", "$1", "$2", "$3", "$4")
	for i, line := range data {
		cells := make([]string, 7)
		cells[0] = strconv.Itoa(i + 1)
		copy(cells[1:], line)
		t.Row(cells...)
	}
	return t
}

// renameCounts splits rename results into successes and failures
func renameCounts(results []types.RenameResult) (ok, failed int) {
	for _, r := range results {
		if r.Outcome.Failed() {
			failed++
		} else {
			ok++
		}
	}
	return ok, failed
}

func printSummary(w io.Writer, s types.Summary) {
	fmt.Fprintf(w, "%s %s\n", ui.StyleHeader.Render("Summary:"), ui.SummaryLine(s))
}
