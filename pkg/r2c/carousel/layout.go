package carousel

// Grid shape thresholds. These are fixed by product design, not derived from data.
const (
	singleRowMaxItems = 3
	twoRowMaxItems    = 8

	singleRowColumns = 3
	twoRowColumns    = 4
	fourColumns      = 4
	fiveColumns      = 5
	gridRows         = 2
)

// Layout is the grid shape of one page.
type Layout struct {
	Columns     int
	Rows        int
	IsSingleRow bool
	MaxItems    int // capacity of the grid; options beyond it are dropped
}

// Capacity returns Columns * Rows.
func (l Layout) Capacity() int {
	return l.Columns * l.Rows
}

// ComputeLayout picks the grid shape for a page holding itemCount options.
// Negative counts are treated as zero. An empty page gets the single-row shape
// and the renderer is expected to show the page's empty message instead.
func ComputeLayout(itemCount int, useFiveColumns bool) Layout {
	if itemCount < 0 {
		itemCount = 0
	}

	maxColumns := fourColumns
	if useFiveColumns {
		maxColumns = fiveColumns
	}

	switch {
	case itemCount <= singleRowMaxItems:
		return Layout{
			Columns:     singleRowColumns,
			Rows:        1,
			IsSingleRow: true,
			MaxItems:    singleRowColumns,
		}
	case itemCount <= twoRowMaxItems:
		return Layout{
			Columns:  twoRowColumns,
			Rows:     gridRows,
			MaxItems: twoRowColumns * gridRows,
		}
	default:
		return Layout{
			Columns:  maxColumns,
			Rows:     gridRows,
			MaxItems: maxColumns * gridRows,
		}
	}
}

// TruncateOptions drops the tail of options that does not fit the layout.
// Losing the tail is an accepted policy, not an error.
func TruncateOptions(options []Option, layout Layout) []Option {
	if len(options) <= layout.MaxItems {
		return options
	}
	return options[:layout.MaxItems]
}
