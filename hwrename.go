// Package hwrename batch-renames files in a directory from a lookup table
// and a filename template.
//
// A scan searches the working directory for every row's target and
// renders the new name; Plan keeps the rows that need renaming; Rename
// applies the plan one file at a time, reporting each outcome.
package hwrename

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/mydehq/hwrename/internal/config"
	"github.com/mydehq/hwrename/internal/renamer"
	"github.com/mydehq/hwrename/internal/scanner"
	"github.com/mydehq/hwrename/internal/types"
)

type (
	Config       = types.Config
	Row          = types.Row
	ScanResult   = types.ScanResult
	PlanItem     = types.PlanItem
	RenamePlan   = types.RenamePlan
	RenameResult = types.RenameResult
	Outcome      = types.Outcome
	Progress     = types.Progress
	Summary      = types.Summary
)

const (
	OutcomeSuccess           = types.OutcomeSuccess
	OutcomeSourceMissing     = types.OutcomeSourceMissing
	OutcomeDestinationExists = types.OutcomeDestinationExists
	OutcomeFailed            = types.OutcomeFailed
)

// Scan searches cfg's working directory for every row of cfg and renders
// the new names. Rows that match nothing come back with empty names.
func Scan(ctx context.Context, cfg *Config, opts ...Option) ([]ScanResult, error) {
	if cfg == nil {
		return nil, types.ErrInvalidConfig{Reason: "config is nil"}
	}
	o := applyOptions(opts)
	logger := log.FromContext(ctx)

	fs := o.fs
	if fs == nil {
		if err := checkDir(cfg.WorkingDirectory); err != nil {
			return nil, err
		}
		fs = osfs.New(cfg.WorkingDirectory)
	}

	rows := cfg.Rows()
	logger.Debug("scanning", "dir", cfg.WorkingDirectory, "rows", len(rows), "format", cfg.RenameFormat)

	results, err := scanner.New(fs).Scan(rows, cfg.RenameFormat)
	if err != nil {
		return nil, err
	}

	s := Summarize(results)
	o.emit(Event{
		Type:    EventInfo,
		Message: fmt.Sprintf("Scanned %d items, %d not found, %d to rename", s.Total, s.NotFound, s.NeedsRename),
	})
	for _, r := range results {
		if !r.Found() {
			o.emit(Event{Type: EventWarning, Message: fmt.Sprintf("Not found: %s", r.Target)})
		}
	}
	return results, nil
}

// Rename applies plan inside dir. Per-item failures are reported in the
// results and never abort the batch; the returned error only covers an
// unusable working directory.
func Rename(ctx context.Context, dir string, plan RenamePlan, opts ...Option) ([]RenameResult, error) {
	o := applyOptions(opts)

	fs := o.fs
	if fs == nil {
		if err := checkDir(dir); err != nil {
			return nil, err
		}
		fs = osfs.New(dir)
	}

	r := renamer.New(fs).WithPacing(o.pacing).WithProgress(func(p Progress) {
		o.emit(Event{Type: EventProgress, Message: progressMessage(p), Progress: &p})
		o.emit(resultEvent(p.Result, o.dryRun))
	})
	if o.dryRun {
		r.WithDryRun()
	}

	return r.Execute(ctx, plan), nil
}

// Plan keeps the scan results that were found and whose name changes
func Plan(results []ScanResult) RenamePlan {
	return types.BuildPlan(results)
}

// Summarize counts scan results by state
func Summarize(results []ScanResult) Summary {
	return types.Summarize(results)
}

// LoadConfig reads a JSON project file
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// SaveConfig writes a JSON project file
func SaveConfig(path string, cfg *Config) error {
	return config.Save(path, cfg)
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("working directory %s is not a directory", dir)
	}
	return nil
}

func progressMessage(p Progress) string {
	return fmt.Sprintf("%d of %d done", p.Completed, p.Total)
}

func resultEvent(res RenameResult, dryRun bool) Event {
	label := "Renamed"
	if dryRun {
		label = "Would rename"
	}
	if res.Outcome == OutcomeSuccess {
		return Event{Type: EventSuccess, Message: fmt.Sprintf("%s: %s → %s", label, res.OldName, res.NewName)}
	}
	return Event{Type: EventError, Message: fmt.Sprintf("Failed: %s (%v)", res.OldName, res.Err)}
}
