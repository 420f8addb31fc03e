package index

import (
	"sort"

	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/classify"
	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/grid"
)

// maxSamples bounds the example values kept per typed group.
const maxSamples = 3

// AggregateGroup is a set of cells sharing a classify.GroupKey.
type AggregateGroup struct {
	Key     classify.GroupKey
	Ranges  []RangeDescriptor
	Count   int
	Samples []string // first values in row-major order; typed groups only
}

// Aggregate groups the non-empty cells of g by data format. Typed values
// collapse into one group per category; text keeps one group per value.
// Groups are ordered by their rendered key.
func Aggregate(g *grid.Grid) []AggregateGroup {
	type acc struct {
		coords  []grid.Coordinate
		samples []string
	}
	groups := make(map[classify.GroupKey]*acc)

	g.Each(func(c grid.Cell) {
		key := classify.Key(c.Value)
		if key.Category == classify.Empty {
			return
		}
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
		}
		a.coords = append(a.coords, c.Coordinate)
		if key.Category.IsTyped() && len(a.samples) < maxSamples {
			a.samples = append(a.samples, c.Value)
		}
	})

	out := make([]AggregateGroup, 0, len(groups))
	for key, a := range groups {
		out = append(out, AggregateGroup{
			Key:     key,
			Ranges:  MergeRanges(a.coords),
			Count:   len(a.coords),
			Samples: a.samples,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key.String() < out[j].Key.String()
	})
	return out
}
