package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/classify"
	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/grid"
)

// financialReport is a quarterly report with repeated values and a blank row.
func financialReport() *grid.Grid {
	return grid.MustNew([][]string{
		{"Quarter", "Product", "Revenue", "Status", "Region"},
		{"Q1", "Laptop", "$100K", "Active", "North"},
		{"Q1", "Laptop", "$150K", "Active", "North"},
		{"Q1", "Desktop", "$100K", "Pending", "South"},
		{"Q2", "Laptop", "$200K", "Active", "North"},
		{"Q2", "Desktop", "$100K", "Pending", "South"},
		{"Q2", "Desktop", "$150K", "Active", "South"},
		{"", "", "", "", ""},
		{"Total", "Revenue", "Target", "Goal", ""},
		{"$500K", "$300K", "Met", "Yes", ""},
		{"$500K", "$200K", "Met", "Yes", ""},
	})
}

func TestBuild_SingleColumn(t *testing.T) {
	g := grid.MustNew([][]string{{"Q1"}, {"Q1"}, {"Q2"}})
	idx := Build(g)

	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, "A1:A2", idx.Render("Q1"))
	assert.Equal(t, "A3", idx.Render("Q2"))
}

func TestBuild_FinancialReport(t *testing.T) {
	idx := Build(financialReport())

	expected := map[string]string{
		"Q1":      "A2:A4",
		"Q2":      "A5:A7",
		"$100K":   "C2,C4,C6",
		"$150K":   "C3,C7",
		"Active":  "D2:D3,D5,D7",
		"Laptop":  "B2:B3,B5",
		"Revenue": "B9,C1",
		"$500K":   "A10:A11",
		"Met":     "C10:C11",
	}
	for value, ranges := range expected {
		assert.Equal(t, ranges, idx.Render(value), "value %q", value)
	}

	_, ok := idx.Lookup("")
	assert.False(t, ok, "empty cells must not be indexed")
}

func TestBuild_WhitespaceOnlyCellsSkipped(t *testing.T) {
	g := grid.MustNew([][]string{{" ", "x"}, {"\t", "x "}})
	idx := Build(g)

	assert.Equal(t, []string{"x", "x "}, idx.Values())
}

func TestBuild_LosslessAndPartition(t *testing.T) {
	g := financialReport()
	idx := Build(g)

	seen := make(map[grid.Coordinate]string)
	for _, e := range idx.Entries() {
		for _, r := range e.Ranges {
			for _, c := range r.Coordinates() {
				_, dup := seen[c]
				require.False(t, dup, "coordinate %s claimed twice", c)
				seen[c] = e.Value
			}
		}
	}

	g.Each(func(c grid.Cell) {
		v, ok := seen[c.Coordinate]
		if c.IsEmpty() {
			assert.False(t, ok, "empty cell %s indexed", c.Address())
			return
		}
		assert.True(t, ok, "cell %s missing", c.Address())
		assert.Equal(t, c.Value, v)
	})

	rebuilt, err := Reconstruct(idx, g.Rows(), g.Cols())
	require.NoError(t, err)
	assert.Equal(t, g.Values(), rebuilt.Values())
}

func TestBuildParallel_MatchesBuild(t *testing.T) {
	g := financialReport()
	for _, workers := range []int{0, 1, 2, 3, 8} {
		got, err := BuildParallel(context.Background(), g, workers)
		require.NoError(t, err)
		assert.Equal(t, Build(g), got, "workers=%d", workers)
	}
}

func TestBuildParallel_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildParallel(ctx, financialReport(), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIndex_Entries(t *testing.T) {
	idx := Build(grid.MustNew([][]string{{"b", "a"}, {"c", "a"}}))

	entries := idx.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Value)
	assert.Equal(t, "B1:B2", Join(entries[0].Ranges))
	assert.Equal(t, "b", entries[1].Value)
	assert.Equal(t, "c", entries[2].Value)
}

func TestReconstruct_Errors(t *testing.T) {
	overlap := Index{
		"a": {Single(grid.At(0, 0))},
		"b": {RangeDescriptor{Start: grid.At(0, 0), End: grid.At(1, 0)}},
	}
	_, err := Reconstruct(overlap, 2, 1)
	assert.ErrorIs(t, err, ErrOverlap)

	outside := Index{"a": {Single(grid.At(5, 0))}}
	_, err = Reconstruct(outside, 2, 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestReconstruct_MalformedInput(t *testing.T) {
	tests := []struct {
		name       string
		idx        Index
		rows, cols int
		expected   error
	}{
		{
			name:     "bottom-up range",
			idx:      Index{"x": {RangeDescriptor{Start: grid.At(3, 0), End: grid.At(1, 0)}}},
			rows:     4,
			cols:     1,
			expected: ErrInvalidRange,
		},
		{
			name:     "range spanning columns",
			idx:      Index{"x": {RangeDescriptor{Start: grid.At(0, 0), End: grid.At(1, 3)}}},
			rows:     2,
			cols:     4,
			expected: ErrInvalidRange,
		},
		{name: "negative rows", idx: Index{}, rows: -1, cols: 2, expected: ErrOutOfBounds},
		{name: "negative cols", idx: Index{}, rows: 2, cols: -1, expected: ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = Reconstruct(tt.idx, tt.rows, tt.cols)
			})
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestRangeDescriptor_Invalid(t *testing.T) {
	inverted := RangeDescriptor{Start: grid.At(3, 0), End: grid.At(1, 0)}
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidRange)
	assert.Equal(t, 0, inverted.Len())
	assert.Empty(t, inverted.Coordinates())

	diagonal := RangeDescriptor{Start: grid.At(0, 0), End: grid.At(1, 3)}
	assert.ErrorIs(t, diagonal.Validate(), ErrInvalidRange)
	assert.Empty(t, diagonal.Coordinates())

	assert.NoError(t, Single(grid.At(2, 2)).Validate())
}

func TestAggregate(t *testing.T) {
	g := grid.MustNew([][]string{
		{"Category", "Value"},
		{"Date", "2024-01-15"},
		{"Date", "01/15/2024"},
		{"Currency", "$1,234.56"},
		{"Integer", "42"},
		{"Integer", "1000"},
		{"Year", "2024"},
		{"Text", ""},
	})

	groups := Aggregate(g)
	byKey := make(map[string]AggregateGroup)
	for _, grp := range groups {
		byKey[grp.Key.String()] = grp
	}

	date := byKey["Date"]
	assert.Equal(t, classify.Date, date.Key.Category)
	assert.Equal(t, "B2:B3", Join(date.Ranges))
	assert.Equal(t, []string{"2024-01-15", "01/15/2024"}, date.Samples)

	integers := byKey["Integer"]
	assert.Equal(t, 2, integers.Count)
	assert.Equal(t, "B5:B6", Join(integers.Ranges))

	assert.Equal(t, "B7", Join(byKey["Year"].Ranges))

	text := byKey[`"Date"`]
	assert.Equal(t, classify.Text, text.Key.Category)
	assert.Equal(t, "A2:A3", Join(text.Ranges))
	assert.Empty(t, text.Samples)

	_, hasEmpty := byKey["Empty"]
	assert.False(t, hasEmpty)

	for i := 1; i < len(groups); i++ {
		assert.Less(t, groups[i-1].Key.String(), groups[i].Key.String())
	}
}

func TestAggregate_SamplesCapped(t *testing.T) {
	g := grid.MustNew([][]string{{"1"}, {"2"}, {"3"}, {"4"}, {"5"}})
	groups := Aggregate(g)

	require.Len(t, groups, 1)
	assert.Equal(t, 5, groups[0].Count)
	assert.Equal(t, []string{"1", "2", "3"}, groups[0].Samples)
	assert.Equal(t, "A1:A5", Join(groups[0].Ranges))
}
