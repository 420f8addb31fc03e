package index

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/grid"
)

// ErrOverlap indicates two index entries claim the same coordinate.
var ErrOverlap = errors.New("index entries overlap")

// ErrOutOfBounds indicates an index range lies outside the target grid.
var ErrOutOfBounds = errors.New("index range outside grid")

// Index maps a literal cell value to the runs where it occurs.
type Index map[string][]RangeDescriptor

// Entry is one value of an Index with its locations.
type Entry struct {
	Value  string
	Ranges []RangeDescriptor
}

// Build indexes every non-empty cell of g by its exact value.
func Build(g *grid.Grid) Index {
	groups := make(map[string][]grid.Coordinate)
	g.Each(func(c grid.Cell) {
		if c.IsEmpty() {
			return
		}
		groups[c.Value] = append(groups[c.Value], c.Coordinate)
	})

	idx := make(Index, len(groups))
	for value, coords := range groups {
		idx[value] = MergeRanges(coords)
	}
	return idx
}

// BuildParallel produces the same Index as Build, scanning column partitions
// concurrently. workers <= 0 uses GOMAXPROCS.
func BuildParallel(ctx context.Context, g *grid.Grid, workers int) (Index, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > g.Cols() {
		workers = g.Cols()
	}
	if workers <= 1 {
		return Build(g), nil
	}

	var (
		mu     sync.Mutex
		groups = make(map[string][]grid.Coordinate)
	)

	eg, ctx := errgroup.WithContext(ctx)
	per := (g.Cols() + workers - 1) / workers
	for lo := 0; lo < g.Cols(); lo += per {
		hi := min(lo+per, g.Cols())
		eg.Go(func() error {
			local := make(map[string][]grid.Coordinate)
			for col := lo; col < hi; col++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				for row := 0; row < g.Rows(); row++ {
					v := g.At(row, col)
					if grid.IsEmptyValue(v) {
						continue
					}
					local[v] = append(local[v], grid.Coordinate{Row: row, Col: col})
				}
			}

			mu.Lock()
			defer mu.Unlock()
			for v, coords := range local {
				groups[v] = append(groups[v], coords...)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	idx := make(Index, len(groups))
	for value, coords := range groups {
		idx[value] = MergeRanges(coords)
	}
	return idx, nil
}

// Len returns the number of distinct values.
func (idx Index) Len() int {
	return len(idx)
}

// Lookup returns the ranges holding value.
func (idx Index) Lookup(value string) ([]RangeDescriptor, bool) {
	r, ok := idx[value]
	return r, ok
}

// Values returns the indexed values in ascending order.
func (idx Index) Values() []string {
	values := make([]string, 0, len(idx))
	for v := range idx {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Entries returns the index as a slice ordered by value.
func (idx Index) Entries() []Entry {
	entries := make([]Entry, 0, len(idx))
	for _, v := range idx.Values() {
		entries = append(entries, Entry{Value: v, Ranges: idx[v]})
	}
	return entries
}

// Render returns the comma-joined ranges of value, or "" when absent.
func (idx Index) Render(value string) string {
	return Join(idx[value])
}

// Reconstruct rebuilds a rows × cols grid from an index. Cells not covered by
// any entry are empty. Malformed descriptors fail with ErrInvalidRange.
func Reconstruct(idx Index, rows, cols int) (*grid.Grid, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("shape %dx%d: %w", rows, cols, ErrOutOfBounds)
	}
	values := make([][]string, rows)
	owned := make([][]bool, rows)
	for i := range values {
		values[i] = make([]string, cols)
		owned[i] = make([]bool, cols)
	}

	for _, e := range idx.Entries() {
		for _, r := range e.Ranges {
			if err := r.Validate(); err != nil {
				return nil, fmt.Errorf("%q: %w", e.Value, err)
			}
			for _, c := range r.Coordinates() {
				if c.Row < 0 || c.Row >= rows || c.Col < 0 || c.Col >= cols {
					return nil, fmt.Errorf("%q at %s: %w", e.Value, c, ErrOutOfBounds)
				}
				if owned[c.Row][c.Col] {
					return nil, fmt.Errorf("%q at %s: %w", e.Value, c, ErrOverlap)
				}
				owned[c.Row][c.Col] = true
				values[c.Row][c.Col] = e.Value
			}
		}
	}
	return grid.New(values)
}
