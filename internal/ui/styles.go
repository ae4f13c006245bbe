package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mydehq/hwrename/internal/types"
)

var (
	// Adaptive Color definitions
	colorHeader = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#00af00", ANSI256: "34", ANSI: "2"},
		Light: lipgloss.CompleteColor{TrueColor: "#008700", ANSI256: "28", ANSI: "2"},
	}
	colorCommand = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#5fffff", ANSI256: "86", ANSI: "6"},
		Light: lipgloss.CompleteColor{TrueColor: "#008787", ANSI256: "30", ANSI: "6"},
	}
	colorPath = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#5f5fff", ANSI256: "63", ANSI: "4"},
		Light: lipgloss.CompleteColor{TrueColor: "#0000af", ANSI256: "19", ANSI: "4"},
	}
	colorWarn = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#d7ff87", ANSI256: "192", ANSI: "11"},
		Light: lipgloss.CompleteColor{TrueColor: "#5f8700", ANSI256: "64", ANSI: "10"},
	}
	colorDim = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#9e9e9e", ANSI256: "247", ANSI: "8"},
		Light: lipgloss.CompleteColor{TrueColor: "#444444", ANSI256: "238", ANSI: "0"},
	}
	colorError = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#ff5faf", ANSI256: "204", ANSI: "13"},
		Light: lipgloss.CompleteColor{TrueColor: "#af005f", ANSI256: "125", ANSI: "5"},
	}

	// Exported Styles for CLI and TUI
	StyleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorHeader)
	StyleCommand = lipgloss.NewStyle().Bold(true).Foreground(colorCommand)
	StylePath    = lipgloss.NewStyle().Foreground(colorPath)
	StyleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleError   = lipgloss.NewStyle().Foreground(colorError)
	StyleFlag    = lipgloss.NewStyle().Italic(true).Foreground(colorError)
)

// Scan result states as shown to the user
const (
	StatusNotFound = "Not found"
	StatusRename   = "Rename"
	StatusSame     = "Unchanged"
	StatusPending  = "Pending"
)

// ScanStatus returns the display status of a scan result
func ScanStatus(r types.ScanResult) string {
	switch {
	case !r.Found():
		return StatusNotFound
	case r.NeedsRename():
		return StatusRename
	default:
		return StatusSame
	}
}

// StyledScanStatus renders ScanStatus with its color
func StyledScanStatus(r types.ScanResult) string {
	s := ScanStatus(r)
	switch s {
	case StatusNotFound:
		return StyleError.Render(s)
	case StatusRename:
		return StyleWarn.Render(s)
	}
	return StyleDim.Render(s)
}

// OutcomeLabel is the short text for a rename outcome
func OutcomeLabel(o types.Outcome) string {
	switch o {
	case types.OutcomeSuccess:
		return "Done"
	case types.OutcomeSourceMissing:
		return "Failed: missing"
	case types.OutcomeDestinationExists:
		return "Failed: exists"
	}
	return "Failed"
}

// StyledOutcome renders OutcomeLabel with its color
func StyledOutcome(o types.Outcome) string {
	if o.Failed() {
		return StyleError.Render(OutcomeLabel(o))
	}
	return StyleHeader.Render(OutcomeLabel(o))
}

// SummaryLine formats scan counts for status bars and logs
func SummaryLine(s types.Summary) string {
	return fmt.Sprintf("Scanned %d items, %d not found, %d to rename", s.Total, s.NotFound, s.NeedsRename)
}

// ColorizeEvent adds styling to known event message patterns.
func ColorizeEvent(msg string) string {
	// Messages with "→": "Renamed: old.pdf → new.pdf"
	if parts := strings.SplitN(msg, " → ", 2); len(parts) == 2 {
		left := parts[0]
		right := parts[1]

		// Split label from filename: "Renamed: old.pdf" → "Renamed:" + "old.pdf"
		var label, oldName string
		if idx := strings.Index(left, ": "); idx >= 0 {
			label = StyleHeader.Render(left[:idx+1]) + " "
			oldName = left[idx+2:]
		} else {
			oldName = left
		}

		return fmt.Sprintf("%s%s %s %s",
			label,
			StyleDim.Render(oldName),
			StyleDim.Render("→"),
			StyleCommand.Render(right),
		)
	}

	// Messages with ": " label: "Failed: file.pdf (reason)", "Not found: target"
	if idx := strings.Index(msg, ": "); idx >= 0 {
		label := msg[:idx+1]
		value := msg[idx+2:]
		style := StyleHeader
		if strings.HasPrefix(label, "Failed") || strings.HasPrefix(label, "Not found") {
			style = StyleError
		}
		return fmt.Sprintf("%s %s", style.Render(label), StylePath.Render(value))
	}

	return msg
}
