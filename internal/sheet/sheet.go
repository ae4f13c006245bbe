// Package sheet imports row tables from spreadsheets and writes the
// example workbook users fill in.
package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Columns is the number of columns read per row: target plus $0..$4
const Columns = 6

// Header is the first row of every exported workbook
var Header = []string{"target", "$0", "$1", "$2", "$3", "$4"}

var samples = [][]string{
	{"张三", "张三", "软件191", "1900000001", "一组", "1号"},
	{"李四", "李四", "软件192", "1900000002", "一组", "2号"},
	{"王五", "王五", "软件193", "1900000003", "一组", "3号"},
}

var instructions = []string{
	"Usage",
	"Fill the \"target\" column with text contained in the file names to look for",
	"Fill columns $0, $1, $2, $3, $4 with the values used by the rename format",
	"Every file in the working directory whose name contains a target is renamed",
}

const instructionColumn = "H"

// Import reads the active sheet starting at the second line. Every row is
// cut or padded to six cells; rows whose six cells are all empty are dropped.
func Import(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", path)
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	data := [][]string{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		line := make([]string, Columns)
		copy(line, row)
		if isBlank(line) {
			continue
		}
		data = append(data, line)
	}
	return data, nil
}

// ExportTemplate writes an example workbook with sample rows and usage notes
func ExportTemplate(path string) error {
	return write(path, samples, true)
}

// Export writes data under the standard header so it can be re-imported
func Export(path string, data [][]string) error {
	return write(path, data, false)
}

func write(path string, data [][]string, withInstructions bool) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	if err := setRow(f, sheet, 1, Header); err != nil {
		return err
	}
	for i, line := range data {
		if err := setRow(f, sheet, i+2, line); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "F", 14); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if withInstructions {
		for i, text := range instructions {
			cell := fmt.Sprintf("%s%d", instructionColumn, i+1)
			if err := f.SetCellValue(sheet, cell, text); err != nil {
				return fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
		if err := f.SetCellStyle(sheet, "H1", "H1", bold); err != nil {
			return fmt.Errorf("failed to style instructions: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func isBlank(line []string) bool {
	for _, c := range line {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
