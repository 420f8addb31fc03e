// Package index builds the value-to-location inverted index of a grid, with
// contiguous same-column runs merged into ranges.
package index

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/grid"
)

// ErrInvalidRange indicates a descriptor that is not a top-to-bottom run in
// one column.
var ErrInvalidRange = errors.New("range is not a top-to-bottom run in one column")

// RangeDescriptor is an inclusive vertical run within one column. A single
// cell has Start == End.
type RangeDescriptor struct {
	Start grid.Coordinate
	End   grid.Coordinate
}

// Single returns the descriptor for one cell.
func Single(c grid.Coordinate) RangeDescriptor {
	return RangeDescriptor{Start: c, End: c}
}

// IsSingle reports whether the descriptor covers exactly one cell.
func (r RangeDescriptor) IsSingle() bool {
	return r.Start == r.End
}

// Validate reports ErrInvalidRange unless Start and End share a column and
// Start is not below End.
func (r RangeDescriptor) Validate() error {
	if r.Start.Col != r.End.Col || r.Start.Row > r.End.Row {
		return fmt.Errorf("%s:%s: %w", r.Start.Address(), r.End.Address(), ErrInvalidRange)
	}
	return nil
}

// Len returns the number of cells covered, or 0 for an invalid descriptor.
func (r RangeDescriptor) Len() int {
	if r.Validate() != nil {
		return 0
	}
	return r.End.Row - r.Start.Row + 1
}

// Coordinates expands the descriptor into its cells, top to bottom. An
// invalid descriptor has none.
func (r RangeDescriptor) Coordinates() []grid.Coordinate {
	if r.Validate() != nil {
		return nil
	}
	out := make([]grid.Coordinate, 0, r.Len())
	for row := r.Start.Row; row <= r.End.Row; row++ {
		out = append(out, grid.Coordinate{Row: row, Col: r.Start.Col})
	}
	return out
}

// String renders "A1" for a single cell and "A1:A4" for a run.
func (r RangeDescriptor) String() string {
	if r.IsSingle() {
		return r.Start.Address()
	}
	return r.Start.Address() + ":" + r.End.Address()
}

// ParseRange parses the form produced by String.
func ParseRange(s string) (RangeDescriptor, error) {
	startStr, endStr, isRange := strings.Cut(s, ":")
	start, err := grid.ParseAddress(startStr)
	if err != nil {
		return RangeDescriptor{}, err
	}
	if !isRange {
		return Single(start), nil
	}

	end, err := grid.ParseAddress(endStr)
	if err != nil {
		return RangeDescriptor{}, err
	}
	if start.Col != end.Col || start.Row >= end.Row {
		return RangeDescriptor{}, fmt.Errorf("range %q: %w", s, ErrInvalidRange)
	}
	return RangeDescriptor{Start: start, End: end}, nil
}

// Join renders descriptors comma-separated, e.g. "A1:A3,A5".
func Join(ranges []RangeDescriptor) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}
