// Package anchor finds structural anchor rows and columns of a grid and
// reduces the grid to the neighbourhood of those anchors.
package anchor

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/grid"
)

// ErrNegativeMargin indicates a skeleton margin below zero.
var ErrNegativeMargin = errors.New("margin must be non-negative")

// ErrInvalidThreshold indicates a similarity threshold outside [0, 1].
var ErrInvalidThreshold = errors.New("similarity threshold must be within [0, 1]")

// ConfigurationError reports a rejected parameter.
type ConfigurationError struct {
	Param string
	Value any
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Param, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Params holds anchor detection parameters.
type Params struct {
	// SimilarityThreshold is the fraction of equal positions at which two
	// adjacent lines count as similar.
	SimilarityThreshold float64
}

// DefaultParams returns default anchor detection parameters.
func DefaultParams() Params {
	return Params{
		SimilarityThreshold: 0.8,
	}
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if p.SimilarityThreshold < 0 || p.SimilarityThreshold > 1 {
		return &ConfigurationError{Param: "similarity threshold", Value: p.SimilarityThreshold, Err: ErrInvalidThreshold}
	}
	return nil
}

// AnchorSet holds the anchor row and column indices, ascending.
type AnchorSet struct {
	Rows []int
	Cols []int
}

// HasRow reports whether row i is an anchor.
func (a AnchorSet) HasRow(i int) bool { return contains(a.Rows, i) }

// HasCol reports whether column j is an anchor.
func (a AnchorSet) HasCol(j int) bool { return contains(a.Cols, j) }

func contains(sorted []int, v int) bool {
	for _, x := range sorted {
		if x == v {
			return true
		}
		if x > v {
			break
		}
	}
	return false
}

// Normalize trims a value and puts it in Unicode NFC so that visually equal
// text compares equal.
func Normalize(v string) string {
	return norm.NFC.String(strings.TrimSpace(v))
}

// Similar reports whether the share of positions where a and b hold equal
// normalised values reaches threshold. Lines are compared up to the shorter
// length; two zero-length lines are similar.
func Similar(a, b []string, threshold float64) bool {
	n := max(len(a), len(b))
	if n == 0 {
		return true
	}

	matches := 0
	for i := 0; i < min(len(a), len(b)); i++ {
		if Normalize(a[i]) == Normalize(b[i]) {
			matches++
		}
	}
	return float64(matches)/float64(n) >= threshold
}

// Detect finds the anchor rows and columns of g.
//
// The first and last line of each axis are always anchors. An interior row is
// an anchor when it is dissimilar to both neighbours; an interior column is
// an anchor when it is dissimilar to either neighbour.
func Detect(g *grid.Grid, params Params) (AnchorSet, error) {
	if err := params.Validate(); err != nil {
		return AnchorSet{}, err
	}

	rows := make([][]string, g.Rows())
	for i := range rows {
		rows[i] = normalizeLine(g.Row(i))
	}
	cols := make([][]string, g.Cols())
	for j := range cols {
		cols[j] = normalizeLine(g.Column(j))
	}

	return AnchorSet{
		Rows: detectLines(rows, params.SimilarityThreshold, func(prev, next bool) bool {
			return !prev && !next
		}),
		Cols: detectLines(cols, params.SimilarityThreshold, func(prev, next bool) bool {
			return !prev || !next
		}),
	}, nil
}

// detectLines applies isAnchor to each interior line, given whether it is
// similar to its predecessor and to its successor.
func detectLines(lines [][]string, threshold float64, isAnchor func(prevSimilar, nextSimilar bool) bool) []int {
	n := len(lines)
	if n == 0 {
		return nil
	}

	// similar[i] compares line i with line i+1.
	similar := make([]bool, n-1)
	for i := range similar {
		similar[i] = similarNormalized(lines[i], lines[i+1], threshold)
	}

	anchors := []int{0}
	for i := 1; i < n-1; i++ {
		if isAnchor(similar[i-1], similar[i]) {
			anchors = append(anchors, i)
		}
	}
	if n > 1 {
		anchors = append(anchors, n-1)
	}
	return anchors
}

func normalizeLine(line []string) []string {
	for i, v := range line {
		line[i] = Normalize(v)
	}
	return line
}

// similarNormalized is Similar for lines of equal length that are already
// normalised.
func similarNormalized(a, b []string, threshold float64) bool {
	if len(a) == 0 {
		return true
	}
	matches := 0
	for i := range a {
		if a[i] == b[i] {
			matches++
		}
	}
	return float64(matches)/float64(len(a)) >= threshold
}
