// Package renamer applies an approved rename plan to a directory.
package renamer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/mydehq/hwrename/internal/types"
)

// Renamer executes rename plans against the root of a filesystem
type Renamer struct {
	fs       billy.Filesystem
	pacing   time.Duration
	dryRun   bool
	progress func(types.Progress)
}

// New creates a renamer for fs
func New(fs billy.Filesystem) *Renamer {
	return &Renamer{fs: fs}
}

// WithPacing waits a random delay up to d before every item
func (r *Renamer) WithPacing(d time.Duration) *Renamer {
	r.pacing = d
	return r
}

// WithProgress registers a callback invoked after every item
func (r *Renamer) WithProgress(fn func(types.Progress)) *Renamer {
	r.progress = fn
	return r
}

// WithDryRun classifies every item without touching the filesystem
func (r *Renamer) WithDryRun() *Renamer {
	r.dryRun = true
	return r
}

// Execute renames every plan item in order. A failed item is recorded and
// the batch moves on; renames already applied are kept. The context only
// carries the logger, a started batch always runs to completion.
func (r *Renamer) Execute(ctx context.Context, plan types.RenamePlan) []types.RenameResult {
	logger := log.FromContext(ctx)
	results := make([]types.RenameResult, 0, len(plan))

	var ov *overlay
	if r.dryRun {
		ov = newOverlay()
	}

	for i, item := range plan {
		r.wait()

		outcome, err := r.apply(item, ov)
		res := types.RenameResult{PlanItem: item, Outcome: outcome, Err: err}
		results = append(results, res)

		if err != nil {
			logger.Debug("rename failed", "from", item.OldName, "to", item.NewName, "outcome", outcome, "err", err)
		} else {
			logger.Debug("renamed", "from", item.OldName, "to", item.NewName, "dry_run", r.dryRun)
		}

		if r.progress != nil {
			r.progress(types.Progress{Completed: i + 1, Total: len(plan), Result: res})
		}
	}
	return results
}

func (r *Renamer) apply(item types.PlanItem, ov *overlay) (types.Outcome, error) {
	if !validName(item.OldName) || !validName(item.NewName) {
		return types.OutcomeFailed, fmt.Errorf("%w: %q → %q", types.ErrInvalidName, item.OldName, item.NewName)
	}

	src, err := r.lstat(item.OldName, ov)
	if err != nil {
		return classify(item, err)
	}

	dst, err := r.lstat(item.NewName, ov)
	switch {
	case err == nil:
		// Same file under another case on case-insensitive filesystems.
		if src == nil || dst == nil || !os.SameFile(src, dst) {
			return types.OutcomeDestinationExists, fmt.Errorf("%w: %s", types.ErrDestinationExists, item.NewName)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return types.OutcomeFailed, fmt.Errorf("failed to stat %s: %w", item.NewName, err)
	}

	if ov != nil {
		ov.move(item.OldName, item.NewName)
		return types.OutcomeSuccess, nil
	}

	if err := r.fs.Rename(item.OldName, item.NewName); err != nil {
		return classify(item, err)
	}
	return types.OutcomeSuccess, nil
}

// lstat consults the dry-run overlay before the filesystem. Names created
// by an earlier simulated rename exist but have no FileInfo.
func (r *Renamer) lstat(name string, ov *overlay) (os.FileInfo, error) {
	if ov != nil {
		if ov.gone[name] {
			return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
		}
		if ov.made[name] {
			return nil, nil
		}
	}
	return r.fs.Lstat(name)
}

// overlay tracks the names a dry run has moved so far
type overlay struct {
	gone map[string]bool
	made map[string]bool
}

func newOverlay() *overlay {
	return &overlay{gone: map[string]bool{}, made: map[string]bool{}}
}

func (o *overlay) move(from, to string) {
	delete(o.made, from)
	o.gone[from] = true
	delete(o.gone, to)
	o.made[to] = true
}

func classify(item types.PlanItem, err error) (types.Outcome, error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return types.OutcomeSourceMissing, fmt.Errorf("%w: %s", types.ErrSourceMissing, item.OldName)
	case errors.Is(err, fs.ErrExist):
		return types.OutcomeDestinationExists, fmt.Errorf("%w: %s", types.ErrDestinationExists, item.NewName)
	default:
		return types.OutcomeFailed, fmt.Errorf("failed to rename %s: %w", item.OldName, err)
	}
}

func (r *Renamer) wait() {
	if r.pacing <= 0 {
		return
	}
	time.Sleep(time.Duration(rand.Int63n(int64(r.pacing) + 1)))
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsRune(name, '/') && !strings.ContainsRune(name, filepath.Separator)
}
