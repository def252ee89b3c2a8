package carousel

// NoColumn is the LastColumn value meaning no column has been remembered.
const NoColumn = -1

// NavigationMemory remembers where the user left a page when a directional
// move crossed a page boundary. It is written only on such a crossing and read
// each time a page is entered.
type NavigationMemory struct {
	LastColumn        int
	PreviousPageIndex int
}

// SelectionStateMachine owns the highlighted index of every page.
type SelectionStateMachine struct {
	pages  []*Page
	memory NavigationMemory
	emit   func(Event)
}

// NewSelectionStateMachine creates a machine over pages. emit receives a
// SelectionChanged for every effective change and may be nil.
func NewSelectionStateMachine(pages []*Page, emit func(Event)) *SelectionStateMachine {
	if emit == nil {
		emit = func(Event) {}
	}
	return &SelectionStateMachine{
		pages:  pages,
		memory: NavigationMemory{LastColumn: NoColumn},
		emit:   emit,
	}
}

// Memory returns a copy of the current navigation memory.
func (s *SelectionStateMachine) Memory() NavigationMemory {
	return s.memory
}

func (s *SelectionStateMachine) page(pageIndex int) *Page {
	if pageIndex < 0 || pageIndex >= len(s.pages) {
		return nil
	}
	return s.pages[pageIndex]
}

// SelectedIndex returns the highlighted index of a page, or -1.
func (s *SelectionStateMachine) SelectedIndex(pageIndex int) int {
	p := s.page(pageIndex)
	if p == nil {
		return -1
	}
	return p.SelectedIndex
}

// SetSelection highlights index on a page. -1 clears the highlight. Setting
// the index that is already selected, or an index outside the page, changes
// nothing and emits nothing. It reports whether the selection changed.
func (s *SelectionStateMachine) SetSelection(pageIndex, index int) bool {
	p := s.page(pageIndex)
	if p == nil {
		return false
	}
	if index < -1 || index >= p.Len() {
		return false
	}
	if p.SelectedIndex == index {
		return false
	}

	p.SelectedIndex = index
	s.emit(SelectionChanged{PageIndex: pageIndex, SelectedIndex: index})
	return true
}

// Move applies a directional move to the given page. When the move leaves the
// page through its top or bottom row and the neighbouring page exists, the
// column is remembered and the returned step is -1 or +1; the caller is then
// responsible for requesting the transition. The source page keeps its
// selection in that case.
func (s *SelectionStateMachine) Move(pageIndex int, dir Direction, canGoPrevious, canGoNext bool) (step int) {
	p := s.page(pageIndex)
	if p == nil || p.IsEmpty() {
		return 0
	}

	index := p.SelectedIndex
	if !p.HasSelection() {
		s.SetSelection(pageIndex, 0)
		return 0
	}

	n := p.Len()
	c := p.Columns

	switch dir {
	case DirectionLeft:
		if index > 0 {
			s.SetSelection(pageIndex, index-1)
		}
	case DirectionRight:
		if index < n-1 {
			s.SetSelection(pageIndex, index+1)
		}
	case DirectionUp:
		if p.RowOf(index) > 0 {
			s.SetSelection(pageIndex, index-c)
			return 0
		}
		if canGoPrevious {
			s.remember(pageIndex, p.ColumnOf(index))
			return -1
		}
	case DirectionDown:
		if p.RowOf(index) < p.LastRow() {
			s.SetSelection(pageIndex, min(index+c, n-1))
			return 0
		}
		if canGoNext {
			s.remember(pageIndex, p.ColumnOf(index))
			return 1
		}
	}

	return 0
}

func (s *SelectionStateMachine) remember(pageIndex, column int) {
	s.memory = NavigationMemory{
		LastColumn:        column,
		PreviousPageIndex: pageIndex,
	}
}

// EnterPage resets the selection of a newly shown page and, when a column is
// remembered, highlights the matching cell: row 0 when moving forward, the
// last occupied row when moving back. The memory is left in place.
func (s *SelectionStateMachine) EnterPage(pageIndex int) {
	p := s.page(pageIndex)
	if p == nil {
		return
	}

	target := -1
	if s.memory.LastColumn >= 0 && !p.IsEmpty() {
		target = s.preservedTarget(p, pageIndex)
	}

	s.SetSelection(pageIndex, target)
}

func (s *SelectionStateMachine) preservedTarget(p *Page, pageIndex int) int {
	n := p.Len()
	c := p.Columns
	if c == 0 || n == 0 {
		return 0
	}

	row := p.LastRow()
	if pageIndex > s.memory.PreviousPageIndex {
		row = 0
	}

	column := min(s.memory.LastColumn, p.ColumnsInRow(row)-1)
	target := row*c + max(column, 0)

	return max(0, min(target, n-1))
}

// Selected returns the highlighted option of a page.
func (s *SelectionStateMachine) Selected(pageIndex int) (Option, bool) {
	p := s.page(pageIndex)
	if p == nil {
		return Option{}, false
	}
	return p.Selected()
}
