package anchor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/grid"
)

func repeat(v string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// multiTableSheet stacks three small tables separated by two homogeneous
// filler regions of eight rows each.
func multiTableSheet(t *testing.T) *grid.Grid {
	t.Helper()
	a := append([]string{"Sales Report", "Product", "Laptop", "Phone"}, repeat("Notes", 8)...)
	a = append(a, "Employee List", "Name", "John Smith", "Jane Doe")
	a = append(a, repeat("Summary", 8)...)
	a = append(a, "Q4 Finances", "Revenue", "$10000", "$15000")

	b := append([]string{"Q4 2024", "Units", "150", "200"}, repeat("Details", 8)...)
	b = append(b, "Department", "Engineering", "Engineering", "Marketing")
	b = append(b, repeat("Info", 8)...)
	b = append(b, "Target", "Actual", "$12000", "$14000")

	c := append([]string{"Region", "Price", "$1200", "$800"}, repeat("Extra", 8)...)
	c = append(c, "Location", "Seattle", "Seattle", "New York")
	c = append(c, repeat("More", 8)...)
	c = append(c, "Status", "Goal Met", "Yes", "Yes")

	d := append([]string{"North", "Count", "5", "8"}, repeat("Misc", 8)...)
	d = append(d, "Building", "A", "A", "B")
	d = append(d, repeat("End", 8)...)
	d = append(d, "Quarter", "Q4", "Complete", "Complete")

	rows := make([][]string, len(a))
	for i := range rows {
		rows[i] = []string{a[i], b[i], c[i], d[i]}
	}
	g, err := grid.New(rows)
	require.NoError(t, err)
	return g
}

func TestDetect_MultiTableSheet(t *testing.T) {
	g := multiTableSheet(t)
	anchors, err := Detect(g, DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3, 12, 13, 14, 15, 24, 25, 26, 27}, anchors.Rows)
	assert.Equal(t, []int{0, 1, 2, 3}, anchors.Cols)
}

func TestDetect_RowRuleRequiresBothNeighboursToDiffer(t *testing.T) {
	// Rows 1 and 2 are identical to each other and differ from rows 0 and 3.
	g := grid.MustNew([][]string{
		{"Title", "", ""},
		{"x", "y", "z"},
		{"x", "y", "z"},
		{"Total", "1", "2"},
	})

	anchors, err := Detect(g, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, anchors.Rows)
}

func TestDetect_RowDifferingFromBothNeighbours(t *testing.T) {
	g := grid.MustNew([][]string{
		{"a", "b"},
		{"a", "b"},
		{"header", "other"},
		{"c", "d"},
		{"c", "d"},
	})

	anchors, err := Detect(g, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4}, anchors.Rows)
}

func TestDetect_ColumnRuleRequiresOneNeighbourToDiffer(t *testing.T) {
	// The transpose of the row fixture: columns 1 and 2 are identical.
	g := grid.MustNew([][]string{
		{"Title", "x", "x", "Total"},
		{"", "y", "y", "1"},
		{"", "z", "z", "2"},
	})

	anchors, err := Detect(g, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, anchors.Cols)
	// Row 1 shares only its blank first cell with row 2.
	assert.Equal(t, []int{0, 1, 2}, anchors.Rows)
}

func TestDetect_HomogeneousColumnsAreNotAnchors(t *testing.T) {
	g := grid.MustNew([][]string{
		{"k", "v", "v", "v", "end"},
		{"k", "v", "v", "v", "end"},
	})

	anchors, err := Detect(g, DefaultParams())
	require.NoError(t, err)
	// Column 1 differs from column 0, column 3 differs from column 4.
	assert.Equal(t, []int{0, 1, 3, 4}, anchors.Cols)
}

func TestDetect_BoundaryLinesAlwaysAnchors(t *testing.T) {
	g := grid.MustNew([][]string{
		{"same", "same", "same"},
		{"same", "same", "same"},
		{"same", "same", "same"},
	})

	anchors, err := Detect(g, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, anchors.Rows)
	assert.Equal(t, []int{0, 2}, anchors.Cols)
}

func TestDetect_SingleLineAndEmptyGrid(t *testing.T) {
	anchors, err := Detect(grid.MustNew([][]string{{"only"}}), DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, []int{0}, anchors.Rows)
	assert.Equal(t, []int{0}, anchors.Cols)

	anchors, err = Detect(grid.MustNew(nil), DefaultParams())
	require.NoError(t, err)
	assert.Empty(t, anchors.Rows)
	assert.Empty(t, anchors.Cols)
}

func TestDetect_NormalizesValues(t *testing.T) {
	// "é" precomposed versus "e" + combining acute, plus padding.
	g := grid.MustNew([][]string{
		{"a"},
		{"café "},
		{" cafe\u0301"},
		{"z"},
	})

	anchors, err := Detect(g, Params{SimilarityThreshold: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, anchors.Rows)
}

func TestDetect_InvalidThreshold(t *testing.T) {
	_, err := Detect(grid.MustNew([][]string{{"a"}}), Params{SimilarityThreshold: 1.5})
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestSimilar(t *testing.T) {
	tests := []struct {
		name      string
		a, b      []string
		threshold float64
		expected  bool
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 0.8, true},
		{"four of five", []string{"a", "b", "c", "d", "e"}, []string{"a", "b", "c", "d", "x"}, 0.8, true},
		{"three of four", []string{"a", "b", "c", "d"}, []string{"a", "b", "c", "x"}, 0.8, false},
		{"empty equals blank", []string{"", "a"}, []string{"  ", "a"}, 1, true},
		{"zero length", nil, nil, 0.8, true},
		{"threshold zero", []string{"a"}, []string{"b"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Similar(tt.a, tt.b, tt.threshold))
		})
	}
}

func TestExpand(t *testing.T) {
	assert.Equal(t, []int{0, 3}, Expand([]int{0, 3}, 0, 6))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, Expand([]int{0, 3}, 1, 6))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, Expand([]int{0, 5}, 10, 6))
	assert.Empty(t, Expand(nil, 2, 6))
	assert.Empty(t, Expand([]int{-1, 7}, 1, 3), "anchors outside the axis are ignored")
	assert.Equal(t, []int{0, 1, 2}, Expand([]int{1}, math.MaxInt, 3))
	assert.Equal(t, []int{0, 1, 2}, Expand([]int{0}, math.MaxInt-1, 3))
}

func TestExtract_Margins(t *testing.T) {
	g := multiTableSheet(t)
	anchors, err := Detect(g, DefaultParams())
	require.NoError(t, err)

	tests := []struct {
		k        int
		expected []int
	}{
		{0, []int{0, 1, 2, 3, 12, 13, 14, 15, 24, 25, 26, 27}},
		{1, []int{0, 1, 2, 3, 4, 11, 12, 13, 14, 15, 16, 23, 24, 25, 26, 27}},
		{2, []int{0, 1, 2, 3, 4, 5, 10, 11, 12, 13, 14, 15, 16, 17, 22, 23, 24, 25, 26, 27}},
	}

	for _, tt := range tests {
		s, err := Extract(g, anchors, tt.k)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, s.Rows, "k=%d", tt.k)
		assert.Equal(t, []int{0, 1, 2, 3}, s.Cols, "k=%d", tt.k)
		assert.Equal(t, len(tt.expected), s.Grid.Rows())
		assert.Equal(t, 4, s.Grid.Cols())
	}
}

func TestExtract_Monotonic(t *testing.T) {
	g := multiTableSheet(t)
	anchors, err := Detect(g, DefaultParams())
	require.NoError(t, err)

	var prevRows, prevCols []int
	for k := 0; k <= 6; k++ {
		s, err := Extract(g, anchors, k)
		require.NoError(t, err)

		if k > 0 {
			assert.Subset(t, s.Rows, prevRows, "k=%d", k)
			assert.Subset(t, s.Cols, prevCols, "k=%d", k)
		}
		assert.LessOrEqual(t, len(s.Rows), g.Rows())
		assert.LessOrEqual(t, len(s.Cols), g.Cols())
		for _, r := range anchors.Rows {
			assert.Contains(t, s.Rows, r)
		}
		prevRows, prevCols = s.Rows, s.Cols
	}
	assert.Len(t, prevRows, g.Rows(), "a wide enough margin keeps every row")
}

func TestExtract_PreservesValuesAndOrder(t *testing.T) {
	g := multiTableSheet(t)
	s, anchors, err := Skeletonize(g, DefaultParams(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, anchors.Rows)

	for r := 0; r < s.Grid.Rows(); r++ {
		if r > 0 {
			assert.Greater(t, s.Rows[r], s.Rows[r-1])
		}
		for c := 0; c < s.Grid.Cols(); c++ {
			orig := s.Original(grid.At(r, c))
			assert.Equal(t, g.At(orig.Row, orig.Col), s.Grid.At(r, c))
		}
	}
	assert.Equal(t, "Notes", s.Grid.At(4, 0))
	assert.Equal(t, 4, s.Rows[4])
}

func TestExtract_NegativeMargin(t *testing.T) {
	g := grid.MustNew([][]string{{"a"}})
	_, err := Extract(g, AnchorSet{Rows: []int{0}, Cols: []int{0}}, -1)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "margin", cfgErr.Param)
	assert.ErrorIs(t, err, ErrNegativeMargin)
}

func TestExtract_HugeMarginKeepsEverything(t *testing.T) {
	g := grid.MustNew([][]string{{"a"}, {"b"}, {"c"}})
	anchors := AnchorSet{Rows: []int{1}, Cols: []int{0}}

	var prev []int
	for _, k := range []int{0, 1, 2, math.MaxInt / 2, math.MaxInt} {
		s, err := Extract(g, anchors, k)
		require.NoError(t, err)
		if prev != nil {
			assert.Subset(t, s.Rows, prev, "k=%d", k)
		}
		prev = s.Rows
	}
	assert.Equal(t, []int{0, 1, 2}, prev)
}

func TestExtract_AnchorOutOfRange(t *testing.T) {
	g := grid.MustNew([][]string{{"a"}, {"b"}, {"c"}})

	tests := []struct {
		name    string
		anchors AnchorSet
		param   string
	}{
		{"negative row", AnchorSet{Rows: []int{-1}, Cols: []int{0}}, "row anchor"},
		{"row past end", AnchorSet{Rows: []int{7}, Cols: []int{0}}, "row anchor"},
		{"column past end", AnchorSet{Rows: []int{0}, Cols: []int{1}}, "column anchor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(g, tt.anchors, 1)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.param, cfgErr.Param)
			assert.ErrorIs(t, err, ErrAnchorOutOfRange)
		})
	}
}

func TestExtract_EmptyAnchorAxis(t *testing.T) {
	g := grid.MustNew([][]string{{"a", "b"}, {"c", "d"}})
	s, err := Extract(g, AnchorSet{Rows: []int{1}}, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, s.Rows)
	assert.Empty(t, s.Cols)
	assert.Equal(t, 0, s.Grid.Cols())
}

func TestAnchorSet_Has(t *testing.T) {
	a := AnchorSet{Rows: []int{0, 4, 9}, Cols: []int{0, 2}}
	assert.True(t, a.HasRow(4))
	assert.False(t, a.HasRow(5))
	assert.True(t, a.HasCol(2))
	assert.False(t, a.HasCol(1))
}
