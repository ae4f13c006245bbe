package hwrename_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/mydehq/hwrename"
	"github.com/mydehq/hwrename/internal/formatter"
	"github.com/mydehq/hwrename/internal/types"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScenario_ScanAndRename(t *testing.T) {
	// 1. Setup Environment
	tmpDir := t.TempDir()
	touch(t, tmpDir, "report_2024.pdf", "张三_作业.docx", "already.txt")

	cfg := &hwrename.Config{
		WorkingDirectory: tmpDir,
		RenameFormat:     "{0}{1}{extname}",
		Data: [][]string{
			{"report", "2024_", "final"},
			{"张三", "张三_", "软件191"},
			{"already", "alr", "eady"}, // renders to its current name
			{"missing", "a", "b"},
		},
	}

	// 2. Scan
	var events []hwrename.Event
	results, err := hwrename.Scan(context.Background(), cfg, hwrename.WithEvents(func(e hwrename.Event) {
		events = append(events, e)
	}))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	expected := []hwrename.ScanResult{
		{Target: "report", MatchedFile: "report_2024.pdf", NewName: "2024_final.pdf"},
		{Target: "张三", MatchedFile: "张三_作业.docx", NewName: "张三_软件191.docx"},
		{Target: "already", MatchedFile: "already.txt", NewName: "already.txt"},
		{Target: "missing"},
	}
	for i, want := range expected {
		if results[i] != want {
			t.Errorf("results[%d] = %+v; want %+v", i, results[i], want)
		}
	}

	summary := hwrename.Summarize(results)
	if summary.NotFound != 1 || summary.NeedsRename != 2 || summary.Unchanged != 1 {
		t.Errorf("Summarize() = %+v", summary)
	}
	if len(events) == 0 || events[0].Type != hwrename.EventInfo {
		t.Errorf("Scan events = %+v; want a leading summary event", events)
	}

	// 3. Rename
	plan := hwrename.Plan(results)
	if len(plan) != 2 {
		t.Fatalf("Plan() has %d items; want 2", len(plan))
	}

	var progress []hwrename.Progress
	out, err := hwrename.Rename(context.Background(), tmpDir, plan, hwrename.WithEvents(func(e hwrename.Event) {
		if e.Type == hwrename.EventProgress {
			progress = append(progress, *e.Progress)
		}
	}))
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	// 4. Verify
	for _, res := range out {
		if res.Outcome != hwrename.OutcomeSuccess {
			t.Errorf("%s: outcome %s (%v)", res.OldName, res.Outcome, res.Err)
		}
	}
	for _, name := range []string{"2024_final.pdf", "张三_软件191.docx", "already.txt"} {
		if _, err := os.Stat(filepath.Join(tmpDir, name)); err != nil {
			t.Errorf("expected %s after rename: %v", name, err)
		}
	}
	if len(progress) != 2 || progress[0].Completed != 1 || progress[1].Completed != 2 {
		t.Errorf("progress = %+v; want 1/2 then 2/2", progress)
	}
}

func TestScenario_SourceDeletedAfterScan(t *testing.T) {
	tmpDir := t.TempDir()
	touch(t, tmpDir, "alpha.txt", "beta.txt")

	cfg := &hwrename.Config{
		WorkingDirectory: tmpDir,
		RenameFormat:     "{0}{extname}",
		Data:             [][]string{{"alpha", "A"}, {"beta", "B"}},
	}
	results, err := hwrename.Scan(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// The directory changes between scan and rename.
	if err := os.Remove(filepath.Join(tmpDir, "alpha.txt")); err != nil {
		t.Fatal(err)
	}

	out, err := hwrename.Rename(context.Background(), tmpDir, hwrename.Plan(results))
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if out[0].Outcome != hwrename.OutcomeSourceMissing {
		t.Errorf("alpha outcome = %s; want %s", out[0].Outcome, hwrename.OutcomeSourceMissing)
	}
	if out[1].Outcome != hwrename.OutcomeSuccess {
		t.Errorf("beta outcome = %s (%v); want success", out[1].Outcome, out[1].Err)
	}
}

func TestScenario_MissingWorkingDirectory(t *testing.T) {
	cfg := &hwrename.Config{
		WorkingDirectory: filepath.Join(t.TempDir(), "gone"),
		RenameFormat:     "{0}",
	}
	if _, err := hwrename.Scan(context.Background(), cfg); err == nil {
		t.Fatal("Scan expected an error for a missing working directory")
	}
}

func TestScenario_FormatMismatch(t *testing.T) {
	fs := memfs.New()
	if err := util.WriteFile(fs, "report.pdf", nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &hwrename.Config{
		RenameFormat: "{0}-{3}{extname}",
		Data:         [][]string{{"report", "a"}},
	}

	_, err := hwrename.Scan(context.Background(), cfg, hwrename.WithFilesystem(fs))
	if !errors.Is(err, formatter.ErrFormat) {
		t.Fatalf("Scan error = %v; want formatting error", err)
	}
}

func TestScenario_DryRun(t *testing.T) {
	fs := memfs.New()
	for _, n := range []string{"one.txt", "two.txt"} {
		if err := util.WriteFile(fs, n, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	plan := hwrename.RenamePlan{
		{Index: 0, OldName: "one.txt", NewName: "uno.txt"},
		{Index: 1, OldName: "two.txt", NewName: "uno.txt"},
	}

	var messages []string
	out, err := hwrename.Rename(context.Background(), "", plan,
		hwrename.WithFilesystem(fs),
		hwrename.WithDryRun(),
		hwrename.WithEvents(func(e hwrename.Event) {
			if e.Type != hwrename.EventProgress {
				messages = append(messages, e.Message)
			}
		}))
	if err != nil {
		t.Fatal(err)
	}
	if out[0].Outcome != hwrename.OutcomeSuccess || out[1].Outcome != hwrename.OutcomeDestinationExists {
		t.Errorf("outcomes = %s, %s", out[0].Outcome, out[1].Outcome)
	}
	if _, err := fs.Stat("one.txt"); err != nil {
		t.Error("dry run renamed one.txt")
	}
	if len(messages) != 2 || messages[0] != "Would rename: one.txt → uno.txt" {
		t.Errorf("messages = %q", messages)
	}
}

func TestScenario_NilConfig(t *testing.T) {
	_, err := hwrename.Scan(context.Background(), nil)
	var invalid types.ErrInvalidConfig
	if !errors.As(err, &invalid) {
		t.Fatalf("Scan(nil) error = %v; want ErrInvalidConfig", err)
	}
	if err := hwrename.SaveConfig(filepath.Join(t.TempDir(), "config.json"), nil); !errors.As(err, &invalid) {
		t.Errorf("SaveConfig(nil) error = %v; want ErrInvalidConfig", err)
	}
}
