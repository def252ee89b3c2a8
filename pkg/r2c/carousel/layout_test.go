package carousel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeLayoutCapacity(t *testing.T) {
	for _, five := range []bool{false, true} {
		for n := 0; n <= 40; n++ {
			layout := ComputeLayout(n, five)

			require.Positive(t, layout.Columns)
			require.Positive(t, layout.Rows)
			require.Equal(t, layout.Capacity(), layout.MaxItems)
			require.GreaterOrEqual(t, layout.Capacity(), min(n, layout.MaxItems), "n=%d five=%v", n, five)

			truncated := TruncateOptions(make([]Option, n), layout)
			require.LessOrEqual(t, len(truncated), layout.Capacity(), "n=%d five=%v", n, five)
			require.Equal(t, min(n, layout.MaxItems), len(truncated))
		}
	}
}

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		five    bool
		columns int
		rows    int
		single  bool
		kept    int
	}{
		{"empty", 0, false, 3, 1, true, 0},
		{"negative", -4, true, 3, 1, true, 0},
		{"three", 3, true, 3, 1, true, 3},
		{"four", 4, true, 4, 2, false, 4},
		{"eight", 8, true, 4, 2, false, 8},
		{"ten five columns", 10, true, 5, 2, false, 10},
		{"twelve four columns", 12, false, 4, 2, false, 8},
		{"eleven five columns", 11, true, 5, 2, false, 10},
		{"nine four columns", 9, false, 4, 2, false, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := ComputeLayout(tt.count, tt.five)
			require.Equal(t, tt.columns, layout.Columns)
			require.Equal(t, tt.rows, layout.Rows)
			require.Equal(t, tt.single, layout.IsSingleRow)

			p := NewPage(PageSpec{Options: make([]Option, max(tt.count, 0)), UseFiveColumns: tt.five})
			require.Equal(t, tt.kept, p.Len())
			require.Equal(t, -1, p.SelectedIndex)
		})
	}
}

func TestNewPageCopiesOptions(t *testing.T) {
	options := []Option{{Name: "a"}, {Name: "b"}}
	p := NewPage(PageSpec{Title: "Launch", Options: options, EmptyMessage: "none"})

	options[0].Name = "changed"

	require.Equal(t, "a", p.Options[0].Name)
	require.Equal(t, "Launch", p.Title)
	require.Equal(t, "none", p.EmptyMessage)
}

func TestPageGeometry(t *testing.T) {
	p := NewPage(PageSpec{Options: make([]Option, 6)})

	require.Equal(t, 4, p.Columns)
	require.Equal(t, 1, p.LastRow())
	require.Equal(t, 4, p.ColumnsInRow(0))
	require.Equal(t, 2, p.ColumnsInRow(1))
	require.Equal(t, 0, p.ColumnsInRow(2))
	require.Equal(t, 1, p.RowOf(5))
	require.Equal(t, 1, p.ColumnOf(5))

	empty := NewPage(PageSpec{})
	require.True(t, empty.IsEmpty())
	require.Equal(t, 0, empty.LastRow())
	_, ok := empty.Selected()
	require.False(t, ok)
}
