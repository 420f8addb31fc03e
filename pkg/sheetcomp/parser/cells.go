// Package parser loads worksheet cells into grids.
package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/grid"
)

// LoadGrid reads the cell text of a sheet into a Grid.
// Worksheet rows are ragged (trailing empty cells are omitted), so every row
// is padded with empty cells to the width of the widest row.
func LoadGrid(f *excelize.File, sheetName string) (*grid.Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return grid.New(padRows(rows))
}

// SheetError reports the sheet whose cells could not be loaded.
type SheetError struct {
	SheetName string
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("failed to load sheet %q: %v", e.SheetName, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// LoadSheets loads every sheet of a workbook, keyed by sheet name.
func LoadSheets(f *excelize.File) (map[string]*grid.Grid, error) {
	result := make(map[string]*grid.Grid)
	for _, sheetName := range f.GetSheetList() {
		g, err := LoadGrid(f, sheetName)
		if err != nil {
			return nil, &SheetError{SheetName: sheetName, Err: err}
		}
		result[sheetName] = g
	}
	return result, nil
}

// padRows returns rows extended to a common width.
func padRows(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	out := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) == width {
			out[i] = row
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		out[i] = padded
	}
	return out
}
