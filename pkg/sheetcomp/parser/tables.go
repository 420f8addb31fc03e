package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/grid"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// DataRange returns the bounding range of the non-empty cells of g
// (e.g. "A1:D10"), or "" when g holds no data.
func DataRange(g *grid.Grid) string {
	minRow, maxRow, minCol, maxCol := findDataBounds(g)
	if minRow < 0 {
		return ""
	}
	return rangeName(minRow, maxRow, minCol, maxCol)
}

// DetectTables detects table-like regions in a grid.
// Returns a list of cell ranges (e.g., "A1:D10") that likely represent tables.
func DetectTables(g *grid.Grid, params TableDetectionParams) []string {
	minRow, maxRow, minCol, maxCol := findDataBounds(g)
	if minRow < 0 {
		return nil
	}

	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	nonEmptyCells := countNonEmptyCells(g, minRow, maxRow, minCol, maxCol)
	if nonEmptyCells < params.MinNonemptyCells {
		return nil
	}

	density := float64(nonEmptyCells) / float64(totalCells)
	if density < params.DensityMin {
		return nil
	}
	return []string{rangeName(minRow, maxRow, minCol, maxCol)}
}

func rangeName(minRow, maxRow, minCol, maxCol int) string {
	startCell, err := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	if err != nil {
		// Beyond worksheet limits; fall back to unbounded labels.
		startCell = grid.At(minRow, minCol).Address()
	}
	endCell, err := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	if err != nil {
		endCell = grid.At(maxRow, maxCol).Address()
	}
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(g *grid.Grid) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	g.Each(func(c grid.Cell) {
		if c.IsEmpty() {
			return
		}
		if minRow < 0 || c.Row < minRow {
			minRow = c.Row
		}
		if maxRow < 0 || c.Row > maxRow {
			maxRow = c.Row
		}
		if minCol < 0 || c.Col < minCol {
			minCol = c.Col
		}
		if maxCol < 0 || c.Col > maxCol {
			maxCol = c.Col
		}
	})

	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(g *grid.Grid, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if !grid.IsEmptyValue(g.At(r, c)) {
				count++
			}
		}
	}
	return count
}
