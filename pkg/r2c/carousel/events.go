package carousel

// Key is a discrete navigation key.
type Key int

const (
	KeyUp Key = iota + 1
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	default:
		return "unknown"
	}
}

// Point is a pointer position in renderer units.
type Point struct {
	X float64
	Y float64
}

// InputEvent is a raw input event accepted by Carousel.Handle.
type InputEvent interface {
	inputEvent()
}

// KeyEvent is a single key-down.
type KeyEvent struct {
	Key Key
}

// WheelEvent is one scroll-wheel step. Positive DeltaY scrolls up.
type WheelEvent struct {
	DeltaX float64
	DeltaY float64
}

// PointerDown starts a drag gesture.
type PointerDown struct {
	Point Point
}

// PointerUp ends a drag gesture.
type PointerUp struct {
	Point Point
}

func (KeyEvent) inputEvent()    {}
func (WheelEvent) inputEvent()  {}
func (PointerDown) inputEvent() {}
func (PointerUp) inputEvent()   {}

// Event is a notification emitted to subscribers after a state change.
type Event interface {
	event()
}

// SelectionChanged reports a new highlighted index on a page.
type SelectionChanged struct {
	PageIndex     int
	SelectedIndex int
}

// PageChanged reports a completed page transition.
type PageChanged struct {
	PageIndex     int
	CanGoPrevious bool
	CanGoNext     bool
}

// TransitionStarted reports that a page transition has been accepted and the
// renderer may animate it. The page index changes once the transition completes.
type TransitionStarted struct {
	From int
	To   int
}

// OptionActivated reports that an option's action has been invoked.
type OptionActivated struct {
	Option Option
}

// OptionPressFeedback reports the transient pressed state of an option.
type OptionPressFeedback struct {
	Option  Option
	Pressed bool
}

func (SelectionChanged) event()    {}
func (PageChanged) event()         {}
func (TransitionStarted) event()   {}
func (OptionActivated) event()     {}
func (OptionPressFeedback) event() {}
