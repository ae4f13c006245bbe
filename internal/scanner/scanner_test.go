package scanner_test

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/mydehq/hwrename/internal/formatter"
	"github.com/mydehq/hwrename/internal/scanner"
	"github.com/mydehq/hwrename/internal/types"
)

func newFS(t *testing.T, files ...string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for _, f := range files {
		if err := util.WriteFile(fs, f, []byte(f), 0o644); err != nil {
			t.Fatalf("WriteFile(%q) error = %v", f, err)
		}
	}
	return fs
}

func TestScanExampleScenario(t *testing.T) {
	fs := newFS(t, "report_2024.pdf", "notes.txt")
	rows := []types.Row{{Target: "report", Args: []string{"2024", "final"}}}

	results, err := scanner.New(fs).Scan(rows, "{0}_{1}{extname}")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	want := types.ScanResult{Target: "report", MatchedFile: "report_2024.pdf", NewName: "2024_final.pdf"}
	if len(results) != 1 || results[0] != want {
		t.Errorf("Scan() = %+v; want [%+v]", results, want)
	}
}

func TestScanPreservesRowOrder(t *testing.T) {
	fs := newFS(t, "alice.doc", "bob.doc", "carol.txt")
	rows := []types.Row{
		{Target: "carol", Args: []string{"C"}},
		{Target: "dave", Args: []string{"D"}},
		{Target: "alice", Args: []string{"A"}},
	}

	results, err := scanner.New(fs).Scan(rows, "{0}{extname}")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []types.ScanResult{
		{Target: "carol", MatchedFile: "carol.txt", NewName: "C.txt"},
		{Target: "dave"},
		{Target: "alice", MatchedFile: "alice.doc", NewName: "A.doc"},
	}
	if len(results) != len(want) {
		t.Fatalf("Scan() returned %d results; want %d", len(results), len(want))
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("results[%d] = %+v; want %+v", i, results[i], want[i])
		}
	}
}

func TestScanNotFound(t *testing.T) {
	fs := newFS(t, "a.txt")
	results, err := scanner.New(fs).Scan([]types.Row{{Target: "zzz", Args: []string{"x"}}}, "{0}{extname}")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if results[0].MatchedFile != "" || results[0].NewName != "" {
		t.Errorf("Scan() = %+v; want empty matched file and new name", results[0])
	}
}

func TestScanEmptyTargetNeverMatches(t *testing.T) {
	fs := newFS(t, "a.txt", "b.txt")
	results, err := scanner.New(fs).Scan([]types.Row{{Target: "", Args: []string{"x"}}}, "{0}{extname}")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if results[0].Found() {
		t.Errorf("Scan() matched %q for an empty target", results[0].MatchedFile)
	}
}

func TestScanSkipsDirectories(t *testing.T) {
	fs := newFS(t, "zeta_report.txt")
	if err := fs.MkdirAll("report_dir", 0o755); err != nil {
		t.Fatal(err)
	}

	results, err := scanner.New(fs).Scan([]types.Row{{Target: "report", Args: []string{"r"}}}, "{0}{extname}")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if results[0].MatchedFile != "zeta_report.txt" {
		t.Errorf("MatchedFile = %q; want %q", results[0].MatchedFile, "zeta_report.txt")
	}
}

func TestScanFormatMismatchIsError(t *testing.T) {
	fs := newFS(t, "report.pdf")
	rows := []types.Row{{Target: "report", Args: []string{"only-one"}}}

	_, err := scanner.New(fs).Scan(rows, "{0}_{1}{extname}")
	if !errors.Is(err, formatter.ErrFormat) {
		t.Fatalf("Scan() error = %v; want formatting error", err)
	}
}

func TestScanInvalidTemplate(t *testing.T) {
	fs := newFS(t, "report.pdf")
	_, err := scanner.New(fs).Scan([]types.Row{{Target: "report"}}, "{0")
	if !errors.Is(err, formatter.ErrFormat) {
		t.Fatalf("Scan() error = %v; want formatting error", err)
	}
}

func TestScanUnmatchedRowSkipsFormatting(t *testing.T) {
	fs := newFS(t, "a.txt")
	// The missing row has too few args but is never rendered.
	results, err := scanner.New(fs).Scan([]types.Row{{Target: "missing"}}, "{0}{extname}")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if results[0].Found() {
		t.Errorf("Scan() = %+v; want not found", results[0])
	}
}

func TestScanMissingDirectory(t *testing.T) {
	fs := osfs.New(t.TempDir() + "/does-not-exist")
	if _, err := scanner.New(fs).Scan(nil, "{0}"); err == nil {
		t.Fatal("Scan() expected error for a missing directory")
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"report_2024.pdf", ".pdf"},
		{"archive.tar.gz", ".gz"},
		{"Makefile", ""},
		{".bashrc", ""},
		{"..hidden", ""},
		{"trailing.", "."},
		{".config.yml", ".yml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scanner.SplitExt(tt.name); got != tt.want {
				t.Errorf("SplitExt(%q) = %q; want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestMatchFirstWins(t *testing.T) {
	names := []string{"b_report.txt", "a_report.txt"}
	res, err := scanner.Match(names, types.Row{Target: "report", Args: []string{"x"}}, formatter.MustCompile("{0}{extname}"))
	if err != nil {
		t.Fatal(err)
	}
	if res.MatchedFile != "b_report.txt" {
		t.Errorf("Match() = %q; want first name in listing order", res.MatchedFile)
	}
}
