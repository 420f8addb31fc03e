package anchor

import (
	"errors"

	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/grid"
)

// ErrAnchorOutOfRange indicates an anchor index outside the grid.
var ErrAnchorOutOfRange = errors.New("anchor index outside grid")

// Skeleton is the reduced grid together with the original indices of the
// rows and columns it kept.
type Skeleton struct {
	Grid *grid.Grid
	Rows []int
	Cols []int
}

// Original maps a coordinate of the skeleton grid back to the source grid.
func (s *Skeleton) Original(c grid.Coordinate) grid.Coordinate {
	return grid.Coordinate{Row: s.Rows[c.Row], Col: s.Cols[c.Col]}
}

// Expand returns every index within k of an anchor, clamped to [0, n), in
// ascending order. Anchors outside [0, n) are ignored.
func Expand(anchors []int, k, n int) []int {
	if n <= 0 || k < 0 {
		return nil
	}
	keep := make([]bool, n)
	for _, a := range anchors {
		if a < 0 || a >= n {
			continue
		}
		// Compare against the distance to each edge so a+k and a-k never overflow.
		lo, hi := 0, n-1
		if k < a {
			lo = a - k
		}
		if k < n-1-a {
			hi = a + k
		}
		for i := lo; i <= hi; i++ {
			keep[i] = true
		}
	}

	var out []int
	for i, ok := range keep {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// Extract keeps the rows and columns within k lines of an anchor. Every
// anchor must index a line of g.
func Extract(g *grid.Grid, anchors AnchorSet, k int) (*Skeleton, error) {
	if k < 0 {
		return nil, &ConfigurationError{Param: "margin", Value: k, Err: ErrNegativeMargin}
	}
	if err := checkAnchors("row anchor", anchors.Rows, g.Rows()); err != nil {
		return nil, err
	}
	if err := checkAnchors("column anchor", anchors.Cols, g.Cols()); err != nil {
		return nil, err
	}

	rows := Expand(anchors.Rows, k, g.Rows())
	cols := Expand(anchors.Cols, k, g.Cols())
	sub, err := g.Select(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Skeleton{Grid: sub, Rows: rows, Cols: cols}, nil
}

// Skeletonize detects the anchors of g and extracts its skeleton.
func Skeletonize(g *grid.Grid, params Params, k int) (*Skeleton, AnchorSet, error) {
	anchors, err := Detect(g, params)
	if err != nil {
		return nil, AnchorSet{}, err
	}
	s, err := Extract(g, anchors, k)
	if err != nil {
		return nil, anchors, err
	}
	return s, anchors, nil
}

func checkAnchors(param string, anchors []int, n int) error {
	for _, a := range anchors {
		if a < 0 || a >= n {
			return &ConfigurationError{Param: param, Value: a, Err: ErrAnchorOutOfRange}
		}
	}
	return nil
}
