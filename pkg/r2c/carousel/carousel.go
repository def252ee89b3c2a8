// Package carousel is the navigation core of the reboot menu: a horizontally
// paginated set of option grids driven by keys, wheel steps and drags.
//
// The core is a synchronous reducer. Every call mutates state on the caller's
// goroutine and notifies subscribers before it returns. Rendering, animation
// and asset loading live elsewhere; the renderer only reads state, listens for
// events and reports when a page transition animation has finished.
package carousel

import (
	"log/slog"
	"sync"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
)

// Settings configures a Carousel.
type Settings struct {
	Aggregator AggregatorSettings

	// Immediate completes page transitions as soon as they are accepted.
	// Frontends without an animation set this.
	Immediate bool

	// InvertScroll maps a positive wheel or drag sign to the next page
	// instead of the previous one.
	InvertScroll bool

	Logger *slog.Logger
}

// State is a snapshot of the observable navigation state.
type State struct {
	PageIndex     int
	SelectedIndex int
	CanGoPrevious bool
	CanGoNext     bool
	InTransition  bool
}

type subscription struct {
	id int
	fn func(Event)
}

// Carousel composes the input aggregator, selection state machine,
// pagination controller and activation dispatcher over a fixed set of pages.
type Carousel struct {
	pages      []*Page
	input      *InputAggregator
	selection  *SelectionStateMachine
	pagination *PaginationController
	activation *ActivationDispatcher

	immediate    bool
	invertScroll bool
	logger       *slog.Logger

	subMu       sync.Mutex
	subscribers []subscription
	nextSubID   int
}

// New builds pages from specs and wires the navigation pipeline. The first
// page is current and nothing is highlighted. Zero specs give an inert
// carousel.
func New(specs []PageSpec, settings Settings) *Carousel {
	pages := make([]*Page, 0, len(specs))
	for _, spec := range specs {
		pages = append(pages, NewPage(spec))
	}

	logger := settings.Logger
	if logger == nil {
		logger = logging.GetInternalLogger()
	}

	c := &Carousel{
		pages:        pages,
		input:        NewInputAggregatorWithSettings(settings.Aggregator),
		pagination:   NewPaginationController(len(pages)),
		immediate:    settings.Immediate,
		invertScroll: settings.InvertScroll,
		logger:       logger,
	}
	c.selection = NewSelectionStateMachine(pages, c.emit)
	c.activation = NewActivationDispatcher(c.emit)

	logger.Debug("carousel created", "pages", len(pages))

	return c
}

// Subscribe registers fn for every event. The returned function removes it.
func (c *Carousel) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers = append(c.subscribers, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			defer c.subMu.Unlock()
			for i, s := range c.subscribers {
				if s.id == id {
					c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

func (c *Carousel) emit(e Event) {
	c.subMu.Lock()
	subs := make([]subscription, len(c.subscribers))
	copy(subs, c.subscribers)
	c.subMu.Unlock()

	for _, s := range subs {
		s.fn(e)
	}
}

// Handle feeds one raw input event through the aggregator and applies the
// resulting intent, if any.
func (c *Carousel) Handle(event InputEvent) {
	intent, ok := c.input.Process(event)
	if !ok {
		return
	}
	c.Apply(intent)
}

// Apply executes a normalized intent. Moves and activations are ignored while
// a page transition is in flight.
func (c *Carousel) Apply(intent Intent) {
	if len(c.pages) == 0 {
		return
	}

	switch intent.Kind {
	case IntentMove:
		if c.pagination.InTransition() {
			return
		}
		current := c.pagination.Current()
		step := c.selection.Move(current, intent.Direction, c.pagination.CanGoPrevious(), c.pagination.CanGoNext())
		if step != 0 {
			c.logger.Debug("selection crossed page boundary",
				"page", current,
				"direction", intent.Direction.String(),
				"column", c.selection.Memory().LastColumn)
			c.requestPage(step)
		}
	case IntentPageChange:
		c.requestPage(c.stepForSign(intent.Sign))
	case IntentActivate:
		if c.pagination.InTransition() {
			return
		}
		c.activateSelected()
	}
}

// Positive wheel and drag signs go back a page unless inverted.
func (c *Carousel) stepForSign(sign int) int {
	if c.invertScroll {
		return sign
	}
	return -sign
}

func (c *Carousel) requestPage(step int) bool {
	from, to, ok := c.pagination.Request(step)
	if !ok {
		c.logger.Debug("page change refused", "step", step, "in_transition", c.pagination.InTransition())
		return false
	}

	c.emit(TransitionStarted{From: from, To: to})

	if c.immediate {
		c.CompleteTransition()
	}
	return true
}

// GoNext requests a transition to the next page, as a next button would.
func (c *Carousel) GoNext() bool {
	return c.requestPage(1)
}

// GoPrevious requests a transition to the previous page.
func (c *Carousel) GoPrevious() bool {
	return c.requestPage(-1)
}

// CompleteTransition commits the in-flight transition: the new page becomes
// current, its selection is reset or column-preserved, and PageChanged is
// emitted. It reports whether a transition was committed.
func (c *Carousel) CompleteTransition() bool {
	to, ok := c.pagination.Complete()
	if !ok {
		return false
	}

	c.input.Reset()
	c.activation.Release()

	c.emit(PageChanged{
		PageIndex:     to,
		CanGoPrevious: c.pagination.CanGoPrevious(),
		CanGoNext:     c.pagination.CanGoNext(),
	})

	c.selection.EnterPage(to)

	c.logger.Debug("page changed", "page", to, "selected", c.selection.SelectedIndex(to))
	return true
}

// AbandonTransition reopens the transition gate without changing page.
func (c *Carousel) AbandonTransition() {
	if c.pagination.InTransition() {
		c.logger.Debug("page transition abandoned")
	}
	c.pagination.Abandon()
}

// SetSelection highlights index on the current page. Re-selecting the current
// index emits nothing.
func (c *Carousel) SetSelection(index int) bool {
	if len(c.pages) == 0 {
		return false
	}
	return c.selection.SetSelection(c.pagination.Current(), index)
}

// Activate fires the highlighted option of the current page. Nothing happens
// when no option is highlighted.
func (c *Carousel) Activate() bool {
	if len(c.pages) == 0 || c.pagination.InTransition() {
		return false
	}
	return c.activateSelected()
}

// ActivateAt highlights and fires the option at index on the current page, as
// a tap on its button would.
func (c *Carousel) ActivateAt(index int) bool {
	if len(c.pages) == 0 || c.pagination.InTransition() {
		return false
	}
	p := c.pages[c.pagination.Current()]
	if index < 0 || index >= p.Len() {
		return false
	}
	c.SetSelection(index)
	return c.activateSelected()
}

func (c *Carousel) activateSelected() bool {
	option, ok := c.selection.Selected(c.pagination.Current())
	if !ok {
		return false
	}
	c.logger.Debug("option activated", "name", option.Name, "index", option.Index)
	c.activation.Activate(option)
	return true
}

// ReleasePress clears the pressed feedback of the last activated option.
func (c *Carousel) ReleasePress() {
	c.activation.Release()
}

// Pressed returns the option currently drawn as pressed.
func (c *Carousel) Pressed() (Option, bool) {
	return c.activation.Pressed()
}

// Selectable returns the itemIndex-th selectable option of a page.
func (c *Carousel) Selectable(pageIndex, itemIndex int) (Option, bool) {
	if pageIndex < 0 || pageIndex >= len(c.pages) {
		return Option{}, false
	}
	p := c.pages[pageIndex]
	if itemIndex < 0 || itemIndex >= p.Len() {
		return Option{}, false
	}
	return p.Options[itemIndex], true
}

// Len returns the number of pages.
func (c *Carousel) Len() int {
	return len(c.pages)
}

// Page returns the page at index.
func (c *Carousel) Page(index int) (*Page, bool) {
	if index < 0 || index >= len(c.pages) {
		return nil, false
	}
	return c.pages[index], true
}

// CurrentPage returns the current page, or false when there are no pages.
func (c *Carousel) CurrentPage() (*Page, bool) {
	return c.Page(c.pagination.Current())
}

func (c *Carousel) CurrentPageIndex() int {
	return c.pagination.Current()
}

// SelectedIndex returns the highlighted index of the current page, or -1.
func (c *Carousel) SelectedIndex() int {
	return c.selection.SelectedIndex(c.pagination.Current())
}

func (c *Carousel) CanGoPrevious() bool {
	return c.pagination.CanGoPrevious()
}

func (c *Carousel) CanGoNext() bool {
	return c.pagination.CanGoNext()
}

func (c *Carousel) InTransition() bool {
	return c.pagination.InTransition()
}

// PendingPage returns the target of the in-flight transition.
func (c *Carousel) PendingPage() (int, bool) {
	return c.pagination.Pending()
}

// Memory returns the current column-preservation memory.
func (c *Carousel) Memory() NavigationMemory {
	return c.selection.Memory()
}

// IsDragging reports whether a pointer press is being tracked.
func (c *Carousel) IsDragging() bool {
	return c.input.IsDragging()
}

// State returns a snapshot of the observable state.
func (c *Carousel) State() State {
	return State{
		PageIndex:     c.pagination.Current(),
		SelectedIndex: c.SelectedIndex(),
		CanGoPrevious: c.pagination.CanGoPrevious(),
		CanGoNext:     c.pagination.CanGoNext(),
		InTransition:  c.pagination.InTransition(),
	}
}
