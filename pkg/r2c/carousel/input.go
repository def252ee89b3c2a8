package carousel

import (
	"math"
	"time"
)

// Default gesture thresholds.
const (
	DefaultScrollThreshold = 2.0
	DefaultScrollWindow    = 500 * time.Millisecond
	DefaultDragThreshold   = 42.0
)

// IntentKind classifies a normalized navigation intent.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentMove
	IntentPageChange
	IntentActivate
)

func (k IntentKind) String() string {
	switch k {
	case IntentMove:
		return "move"
	case IntentPageChange:
		return "page_change"
	case IntentActivate:
		return "activate"
	default:
		return "none"
	}
}

// Source identifies the raw input channel an intent came from.
type Source int

const (
	SourceKey Source = iota
	SourceWheel
	SourceDrag
)

func (s Source) String() string {
	switch s {
	case SourceWheel:
		return "wheel"
	case SourceDrag:
		return "drag"
	default:
		return "key"
	}
}

// Intent is the output of the InputAggregator.
// For IntentMove, Direction is set. For IntentPageChange, Sign is the raw sign
// (+1 or -1) of the wheel accumulation or the dominant drag delta, and Axis is
// set for drags.
type Intent struct {
	Kind      IntentKind
	Direction Direction
	Sign      int
	Axis      Axis
	Source    Source
}

// AggregatorSettings configures gesture thresholds. Zero values fall back to
// the defaults.
type AggregatorSettings struct {
	ScrollThreshold float64
	ScrollWindow    time.Duration
	DragThreshold   float64
	Clock           func() time.Time
}

// InputAggregator turns keys, wheel deltas and drags into discrete intents.
// It is not safe for concurrent use; feed it from the event loop.
type InputAggregator struct {
	scrollThreshold float64
	scrollWindow    time.Duration
	dragThreshold   float64
	now             func() time.Time

	accumulated  float64
	windowStart  time.Time
	scrollActive bool
	dragStart    Point
	dragTracking bool
}

// NewInputAggregator creates an aggregator with the default thresholds.
func NewInputAggregator() *InputAggregator {
	return NewInputAggregatorWithSettings(AggregatorSettings{})
}

// NewInputAggregatorWithSettings creates an aggregator with custom thresholds.
func NewInputAggregatorWithSettings(settings AggregatorSettings) *InputAggregator {
	ia := &InputAggregator{
		scrollThreshold: settings.ScrollThreshold,
		scrollWindow:    settings.ScrollWindow,
		dragThreshold:   settings.DragThreshold,
		now:             settings.Clock,
	}
	if ia.scrollThreshold <= 0 {
		ia.scrollThreshold = DefaultScrollThreshold
	}
	if ia.scrollWindow <= 0 {
		ia.scrollWindow = DefaultScrollWindow
	}
	if ia.dragThreshold <= 0 {
		ia.dragThreshold = DefaultDragThreshold
	}
	if ia.now == nil {
		ia.now = time.Now
	}
	return ia
}

// Process converts one raw event into at most one intent.
// The boolean result is false when the event produced nothing.
func (ia *InputAggregator) Process(event InputEvent) (Intent, bool) {
	switch e := event.(type) {
	case KeyEvent:
		return ia.processKey(e)
	case WheelEvent:
		return ia.processWheel(e)
	case PointerDown:
		ia.processPointerDown(e)
		return Intent{}, false
	case PointerUp:
		return ia.processPointerUp(e)
	}
	return Intent{}, false
}

func (ia *InputAggregator) processKey(e KeyEvent) (Intent, bool) {
	switch e.Key {
	case KeyUp:
		return Intent{Kind: IntentMove, Direction: DirectionUp, Source: SourceKey}, true
	case KeyDown:
		return Intent{Kind: IntentMove, Direction: DirectionDown, Source: SourceKey}, true
	case KeyLeft:
		return Intent{Kind: IntentMove, Direction: DirectionLeft, Source: SourceKey}, true
	case KeyRight:
		return Intent{Kind: IntentMove, Direction: DirectionRight, Source: SourceKey}, true
	case KeyEnter:
		return Intent{Kind: IntentActivate, Source: SourceKey}, true
	}
	return Intent{}, false
}

func (ia *InputAggregator) processWheel(e WheelEvent) (Intent, bool) {
	delta := e.DeltaX + e.DeltaY
	if delta == 0 || math.IsNaN(delta) {
		return Intent{}, false
	}

	now := ia.now()

	// A stale window is discarded and this delta opens a fresh gesture.
	if !ia.scrollActive || now.Sub(ia.windowStart) > ia.scrollWindow {
		ia.accumulated = 0
		ia.windowStart = now
		ia.scrollActive = true
	}

	ia.accumulated += delta

	if math.Abs(ia.accumulated) < ia.scrollThreshold {
		return Intent{}, false
	}

	sign := signOf(ia.accumulated)
	ia.ResetScroll()

	return Intent{Kind: IntentPageChange, Sign: sign, Source: SourceWheel}, true
}

func (ia *InputAggregator) processPointerDown(e PointerDown) {
	if ia.dragTracking {
		return
	}
	ia.dragStart = e.Point
	ia.dragTracking = true
}

func (ia *InputAggregator) processPointerUp(e PointerUp) (Intent, bool) {
	if !ia.dragTracking {
		return Intent{}, false
	}

	start := ia.dragStart
	ia.ResetDrag()

	dx := e.Point.X - start.X
	dy := e.Point.Y - start.Y

	if math.Hypot(dx, dy) < ia.dragThreshold {
		return Intent{}, false
	}

	if math.Abs(dx) > math.Abs(dy) {
		return Intent{Kind: IntentPageChange, Sign: signOf(dx), Axis: AxisHorizontal, Source: SourceDrag}, true
	}
	return Intent{Kind: IntentPageChange, Sign: signOf(dy), Axis: AxisVertical, Source: SourceDrag}, true
}

// IsDragging reports whether a press has been seen without a release.
func (ia *InputAggregator) IsDragging() bool {
	return ia.dragTracking
}

// DragStart returns the recorded press point while a drag is tracked.
func (ia *InputAggregator) DragStart() (Point, bool) {
	return ia.dragStart, ia.dragTracking
}

// ResetScroll clears the wheel accumulator and window.
func (ia *InputAggregator) ResetScroll() {
	ia.accumulated = 0
	ia.windowStart = time.Time{}
	ia.scrollActive = false
}

// ResetDrag forgets any tracked press.
func (ia *InputAggregator) ResetDrag() {
	ia.dragStart = Point{}
	ia.dragTracking = false
}

// Reset clears all gesture state.
func (ia *InputAggregator) Reset() {
	ia.ResetScroll()
	ia.ResetDrag()
}

func signOf(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
