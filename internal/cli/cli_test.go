package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mydehq/hwrename/internal/config"
	"github.com/mydehq/hwrename/internal/sheet"
	"github.com/mydehq/hwrename/internal/types"
	"github.com/spf13/cobra"
)

func setupTest(t *testing.T) {
	t.Helper()
	logger = log.New(io.Discard)
	d := config.GetDefaults()
	globalCfg = &d
}

func newProjectCmd(f *projectFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	return cmd
}

func TestLoadProjectResolvesRelativeDir(t *testing.T) {
	setupTest(t)
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "files"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, "config.json")
	if err := config.Save(path, config.GenerateDefault("files", "{0}{extname}", [][]string{{"a", "b"}})); err != nil {
		t.Fatal(err)
	}

	var f projectFlags
	cfg, err := loadProject(newProjectCmd(&f), []string{path}, &f)
	if err != nil {
		t.Fatalf("loadProject() error = %v", err)
	}
	if want := filepath.Join(root, "files"); cfg.WorkingDirectory != want {
		t.Errorf("WorkingDirectory = %q; want %q", cfg.WorkingDirectory, want)
	}
}

func TestLoadProjectOverrides(t *testing.T) {
	setupTest(t)
	root := t.TempDir()
	other := t.TempDir()
	path := filepath.Join(root, "config.json")
	if err := config.Save(path, config.GenerateDefault(root, "{0}", nil)); err != nil {
		t.Fatal(err)
	}

	var f projectFlags
	cmd := newProjectCmd(&f)
	if err := cmd.ParseFlags([]string{"--dir", other, "--format", "{1}-{0}{extname}"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadProject(cmd, []string{path}, &f)
	if err != nil {
		t.Fatalf("loadProject() error = %v", err)
	}
	if cfg.WorkingDirectory != other {
		t.Errorf("WorkingDirectory = %q; want %q", cfg.WorkingDirectory, other)
	}
	if cfg.RenameFormat != "{1}-{0}{extname}" {
		t.Errorf("RenameFormat = %q", cfg.RenameFormat)
	}
}

func TestLoadProjectFromSheet(t *testing.T) {
	setupTest(t)
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "rows.xlsx")
	if err := sheet.Export(xlsx, [][]string{{"report", "final"}}); err != nil {
		t.Fatal(err)
	}

	var f projectFlags
	cmd := newProjectCmd(&f)
	if err := cmd.ParseFlags([]string{"--sheet", xlsx, "--dir", dir}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadProject(cmd, nil, &f)
	if err != nil {
		t.Fatalf("loadProject() error = %v", err)
	}
	if len(cfg.Data) != 1 || cfg.Data[0][0] != "report" || cfg.Data[0][1] != "final" {
		t.Errorf("Data = %q", cfg.Data)
	}
	if cfg.RenameFormat != globalCfg.RenameFormat {
		t.Errorf("RenameFormat = %q; want the global default", cfg.RenameFormat)
	}
}

func TestLoadProjectInvalid(t *testing.T) {
	setupTest(t)
	root := t.TempDir()

	tests := []struct {
		name string
		cfg  *types.Config
	}{
		{"missing dir", config.GenerateDefault(filepath.Join(root, "gone"), "{0}", nil)},
		{"bad format", config.GenerateDefault(root, "{0", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(root, strings.ReplaceAll(tt.name, " ", "_")+".json")
			if err := config.Save(path, tt.cfg); err != nil {
				t.Fatal(err)
			}
			var f projectFlags
			if _, err := loadProject(newProjectCmd(&f), []string{path}, &f); err == nil {
				t.Error("loadProject() expected an error")
			}
		})
	}
}

func TestPlanPreview(t *testing.T) {
	plan := types.RenamePlan{
		{Index: 0, OldName: "a.txt", NewName: "A.txt"},
		{Index: 1, OldName: "b.txt", NewName: "B.txt"},
		{Index: 2, OldName: "c.txt", NewName: "C.txt"},
	}

	if got, want := planPreview(plan, 10), "a.txt → A.txt\nb.txt → B.txt\nc.txt → C.txt"; got != want {
		t.Errorf("planPreview() = %q; want %q", got, want)
	}
	if got := planPreview(plan, 2); !strings.HasSuffix(got, "… and 1 more") {
		t.Errorf("planPreview() truncated = %q", got)
	}
}

func TestRenameCounts(t *testing.T) {
	results := []types.RenameResult{
		{Outcome: types.OutcomeSuccess},
		{Outcome: types.OutcomeSourceMissing},
		{Outcome: types.OutcomeSuccess},
		{Outcome: types.OutcomeFailed},
	}
	ok, failed := renameCounts(results)
	if ok != 2 || failed != 2 {
		t.Errorf("renameCounts() = %d, %d; want 2, 2", ok, failed)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"scan", "rename", "import", "export", "template", "config", "files"}
	for _, name := range want {
		if cmd, _, err := RootCmd.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}
