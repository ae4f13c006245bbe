// Package scanner matches row targets against a directory listing and
// computes the new name of every matched file.
package scanner

import (
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/mydehq/hwrename/internal/formatter"
	"github.com/mydehq/hwrename/internal/types"
)

// Scanner searches the root of a filesystem
type Scanner struct {
	fs billy.Dir
}

// New returns a scanner reading the root of fs
func New(fs billy.Dir) *Scanner {
	return &Scanner{fs: fs}
}

// List returns the names of the regular entries in the working directory,
// in whatever order the filesystem reports them.
func (s *Scanner) List() ([]string, error) {
	entries, err := s.fs.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to read working directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Scan produces one result per row, in row order. The directory is listed
// once. When several files contain a target the first one in listing order
// wins; callers must not rely on which.
func (s *Scanner) Scan(rows []types.Row, format string) ([]types.ScanResult, error) {
	tmpl, err := formatter.Compile(format)
	if err != nil {
		return nil, err
	}

	names, err := s.List()
	if err != nil {
		return nil, err
	}

	results := make([]types.ScanResult, len(rows))
	for i, row := range rows {
		res, err := Match(names, row, tmpl)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+1, row.Target, err)
		}
		results[i] = res
	}
	return results, nil
}

// Match finds the first name containing the row's target and renders its
// new name. Unlike a plain substring test, which any name passes for an
// empty target, rows with an empty target never match.
func Match(names []string, row types.Row, tmpl *formatter.Template) (types.ScanResult, error) {
	res := types.ScanResult{Target: row.Target}
	if row.Target == "" {
		return res, nil
	}
	for _, name := range names {
		if !strings.Contains(name, row.Target) {
			continue
		}
		newName, err := tmpl.Execute(row.Args, SplitExt(name))
		if err != nil {
			return res, err
		}
		res.MatchedFile = name
		res.NewName = newName
		return res, nil
	}
	return res, nil
}

// SplitExt returns the extension of name including the dot. Leading dots
// (hidden files) do not start an extension.
func SplitExt(name string) string {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return ""
	}
	if strings.TrimLeft(name[:dot], ".") == "" {
		return ""
	}
	return name[dot:]
}
