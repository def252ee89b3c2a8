package carousel

import (
	"go.uber.org/atomic"
)

// PaginationController owns the current page index and gates transitions so
// only one is in flight at a time. The gate and indices are atomic so an
// animation goroutine may complete or abandon a transition.
type PaginationController struct {
	count    int
	current  *atomic.Int32
	pending  *atomic.Int32
	inFlight *atomic.Bool
}

// NewPaginationController creates a controller over count pages starting at
// page 0.
func NewPaginationController(count int) *PaginationController {
	if count < 0 {
		count = 0
	}
	return &PaginationController{
		count:    count,
		current:  atomic.NewInt32(0),
		pending:  atomic.NewInt32(-1),
		inFlight: atomic.NewBool(false),
	}
}

// Count returns the number of pages.
func (pc *PaginationController) Count() int {
	return pc.count
}

// Current returns the current page index. With zero pages it is 0 and no
// page exists at it.
func (pc *PaginationController) Current() int {
	return int(pc.current.Load())
}

func (pc *PaginationController) CanGoPrevious() bool {
	return pc.count > 0 && pc.Current() > 0
}

func (pc *PaginationController) CanGoNext() bool {
	return pc.count > 0 && pc.Current() < pc.count-1
}

// InTransition reports whether a transition has been accepted and not yet
// completed or abandoned.
func (pc *PaginationController) InTransition() bool {
	return pc.inFlight.Load()
}

// Pending returns the target of the in-flight transition.
func (pc *PaginationController) Pending() (int, bool) {
	if !pc.inFlight.Load() {
		return 0, false
	}
	return int(pc.pending.Load()), true
}

// GoNext requests a transition to the next page.
func (pc *PaginationController) GoNext() (from, to int, ok bool) {
	return pc.Request(1)
}

// GoPrevious requests a transition to the previous page.
func (pc *PaginationController) GoPrevious() (from, to int, ok bool) {
	return pc.Request(-1)
}

// Request accepts a one-page transition in the direction of step's sign and
// closes the gate. It is refused when a transition is already in flight, when
// step is zero, or when there is no page in that direction.
func (pc *PaginationController) Request(step int) (from, to int, ok bool) {
	switch {
	case step > 0:
		if !pc.CanGoNext() {
			return 0, 0, false
		}
		step = 1
	case step < 0:
		if !pc.CanGoPrevious() {
			return 0, 0, false
		}
		step = -1
	default:
		return 0, 0, false
	}

	if !pc.inFlight.CompareAndSwap(false, true) {
		return 0, 0, false
	}

	from = pc.Current()
	to = from + step
	pc.pending.Store(int32(to))

	return from, to, true
}

// Complete commits the in-flight transition and reopens the gate. A target
// that no longer addresses a page is abandoned instead.
func (pc *PaginationController) Complete() (int, bool) {
	if !pc.inFlight.Load() {
		return pc.Current(), false
	}

	to := int(pc.pending.Load())
	if to < 0 || to >= pc.count {
		pc.Abandon()
		return pc.Current(), false
	}

	pc.current.Store(int32(to))
	pc.pending.Store(-1)
	pc.inFlight.Store(false)

	return to, true
}

// Abandon reopens the gate without changing the current page.
func (pc *PaginationController) Abandon() {
	pc.pending.Store(-1)
	pc.inFlight.Store(false)
}
