// Package grid provides the immutable rectangular cell container shared by the
// compression pipelines.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrShape indicates rows of differing lengths were supplied to New.
var ErrShape = errors.New("grid rows have inconsistent lengths")

// ErrOutOfRange indicates a row or column index outside the grid.
var ErrOutOfRange = errors.New("index out of range")

// ShapeError reports the first row whose length differs from row 0.
type ShapeError struct {
	Row  int
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("row %d has %d cells, expected %d", e.Row, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}

// Cell is a single grid position and its value. An absent value is "".
type Cell struct {
	Coordinate
	Value string
}

// IsEmpty reports whether the cell holds no visible content.
func (c Cell) IsEmpty() bool {
	return IsEmptyValue(c.Value)
}

// IsEmptyValue reports whether v is empty after trimming whitespace.
func IsEmptyValue(v string) bool {
	return strings.TrimSpace(v) == ""
}

// Grid is a rows × cols table of text values. A Grid is never modified after
// construction, so it may be shared freely between goroutines.
type Grid struct {
	rows   int
	cols   int
	values []string // row-major
}

// New builds a Grid from row slices. The input is copied.
func New(rows [][]string) (*Grid, error) {
	g := &Grid{rows: len(rows)}
	if len(rows) == 0 {
		return g, nil
	}

	g.cols = len(rows[0])
	g.values = make([]string, 0, g.rows*g.cols)
	for i, row := range rows {
		if len(row) != g.cols {
			return nil, &ShapeError{Row: i, Want: g.cols, Got: len(row)}
		}
		g.values = append(g.values, row...)
	}
	return g, nil
}

// FromOptional builds a Grid from optional values; nil entries are absent.
func FromOptional(rows [][]*string) (*Grid, error) {
	plain := make([][]string, len(rows))
	for i, row := range rows {
		plain[i] = make([]string, len(row))
		for j, v := range row {
			if v != nil {
				plain[i][j] = *v
			}
		}
	}
	return New(plain)
}

// MustNew is like New but panics on error. Intended for fixtures.
func MustNew(rows [][]string) *Grid {
	g, err := New(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Contains reports whether c lies inside the grid.
func (g *Grid) Contains(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the value at (row, col). It panics when out of range, like a slice.
func (g *Grid) At(row, col int) string {
	if !g.Contains(Coordinate{Row: row, Col: col}) {
		panic(fmt.Sprintf("grid: (%d,%d) outside %dx%d", row, col, g.rows, g.cols))
	}
	return g.values[row*g.cols+col]
}

// Cell returns the cell at c.
func (g *Grid) Cell(c Coordinate) Cell {
	return Cell{Coordinate: c, Value: g.At(c.Row, c.Col)}
}

// Row returns a copy of row i.
func (g *Grid) Row(i int) []string {
	out := make([]string, g.cols)
	copy(out, g.values[i*g.cols:(i+1)*g.cols])
	return out
}

// Column returns a copy of column j.
func (g *Grid) Column(j int) []string {
	out := make([]string, g.rows)
	for i := 0; i < g.rows; i++ {
		out[i] = g.values[i*g.cols+j]
	}
	return out
}

// Values returns a copy of the grid as row slices.
func (g *Grid) Values() [][]string {
	out := make([][]string, g.rows)
	for i := range out {
		out[i] = g.Row(i)
	}
	return out
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(Cell)) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			fn(Cell{Coordinate: Coordinate{Row: r, Col: c}, Value: g.values[r*g.cols+c]})
		}
	}
}

// Select returns the grid formed by the cross-product of the given row and
// column indices, in the order supplied.
func (g *Grid) Select(rows, cols []int) (*Grid, error) {
	for _, r := range rows {
		if r < 0 || r >= g.rows {
			return nil, fmt.Errorf("row %d: %w", r, ErrOutOfRange)
		}
	}
	for _, c := range cols {
		if c < 0 || c >= g.cols {
			return nil, fmt.Errorf("column %d: %w", c, ErrOutOfRange)
		}
	}

	out := &Grid{rows: len(rows), cols: len(cols)}
	if len(cols) == 0 {
		return out, nil
	}
	out.values = make([]string, 0, len(rows)*len(cols))
	for _, r := range rows {
		for _, c := range cols {
			out.values = append(out.values, g.values[r*g.cols+c])
		}
	}
	return out, nil
}
