package carousel

// IconRef is an opaque handle the renderer attaches to an option.
// The navigation core never reads it.
type IconRef any

// Option is a single selectable entry on a page.
// Index is the stable index assigned by the loader (for example the hekate
// entry number) and is independent of the display position.
type Option struct {
	Name   string
	Index  int
	Action func()
	Icon   IconRef
}

// PageSpec is the construction-time description of a page as produced by the
// option loading collaborator.
type PageSpec struct {
	Title          string
	Options        []Option
	UseFiveColumns bool
	EmptyMessage   string
}

// Page is one screen of options arranged in a grid. The layout fields are
// computed once in NewPage and never change afterwards.
type Page struct {
	Title         string
	Options       []Option
	EmptyMessage  string
	Columns       int
	Rows          int
	IsSingleRow   bool
	SelectedIndex int // -1 means nothing is highlighted
}

// NewPage builds a page from its PageSpec, computing its layout and truncating the
// options to the grid capacity. The option slice is copied.
func NewPage(spec PageSpec) *Page {
	layout := ComputeLayout(len(spec.Options), spec.UseFiveColumns)
	options := TruncateOptions(spec.Options, layout)

	return &Page{
		Title:         spec.Title,
		Options:       append([]Option(nil), options...),
		EmptyMessage:  spec.EmptyMessage,
		Columns:       layout.Columns,
		Rows:          layout.Rows,
		IsSingleRow:   layout.IsSingleRow,
		SelectedIndex: -1,
	}
}

// Len returns the number of options on the page.
func (p *Page) Len() int {
	return len(p.Options)
}

// IsEmpty reports whether the page has no options.
func (p *Page) IsEmpty() bool {
	return len(p.Options) == 0
}

// HasSelection reports whether SelectedIndex addresses an option.
func (p *Page) HasSelection() bool {
	return p.SelectedIndex >= 0 && p.SelectedIndex < len(p.Options)
}

// Selected returns the highlighted option, if any.
func (p *Page) Selected() (Option, bool) {
	if !p.HasSelection() {
		return Option{}, false
	}
	return p.Options[p.SelectedIndex], true
}

// RowOf returns the row of a display index.
func (p *Page) RowOf(index int) int {
	if p.Columns == 0 {
		return 0
	}
	return index / p.Columns
}

// ColumnOf returns the column of a display index.
func (p *Page) ColumnOf(index int) int {
	if p.Columns == 0 {
		return 0
	}
	return index % p.Columns
}

// LastRow is the last row that holds at least one option.
func (p *Page) LastRow() int {
	if p.Columns == 0 || len(p.Options) == 0 {
		return 0
	}
	return (len(p.Options) - 1) / p.Columns
}

// ColumnsInRow returns how many options occupy the given row.
func (p *Page) ColumnsInRow(row int) int {
	remaining := len(p.Options) - row*p.Columns
	if remaining <= 0 {
		return 0
	}
	if remaining > p.Columns {
		return p.Columns
	}
	return remaining
}
