package index

import (
	"slices"

	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/grid"
)

// MergeRanges covers coords with the fewest vertical runs. Runs never span
// columns. Output is ordered by (column, row). Duplicates are ignored and an
// empty input yields nil.
func MergeRanges(coords []grid.Coordinate) []RangeDescriptor {
	if len(coords) == 0 {
		return nil
	}

	sorted := slices.Clone(coords)
	slices.SortStableFunc(sorted, compareColumnMajor)
	sorted = slices.Compact(sorted)

	ranges := make([]RangeDescriptor, 0, len(sorted))
	current := Single(sorted[0])
	for _, c := range sorted[1:] {
		if c.Col == current.End.Col && c.Row == current.End.Row+1 {
			current.End = c
			continue
		}
		ranges = append(ranges, current)
		current = Single(c)
	}
	return append(ranges, current)
}

func compareColumnMajor(a, b grid.Coordinate) int {
	if a.Col != b.Col {
		return a.Col - b.Col
	}
	return a.Row - b.Row
}
