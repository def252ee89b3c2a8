package internal

import (
	"time"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/constants"
)

// DirectionalInput repeats a held d-pad direction so holding a direction
// walks the carousel grid.
type DirectionalInput struct {
	held struct {
		up, down, left, right bool
	}
	lastRepeatTime time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
	hasRepeated    bool
	now            func() time.Time
}

// NewDirectionalInput uses the default repeat timing.
func NewDirectionalInput() DirectionalInput {
	return NewDirectionalInputWithTiming(constants.KeyRepeatDelay, constants.KeyRepeatInterval)
}

func NewDirectionalInputWithTiming(delay, interval time.Duration) DirectionalInput {
	return newDirectionalInput(delay, interval, time.Now)
}

func newDirectionalInput(delay, interval time.Duration, now func() time.Time) DirectionalInput {
	return DirectionalInput{
		repeatDelay:    delay,
		repeatInterval: interval,
		lastRepeatTime: now(),
		now:            now,
	}
}

// SetHeld updates the held state of the direction mapped to button. It
// reports whether the button is a direction.
func (d *DirectionalInput) SetHeld(button constants.VirtualButton, held bool) bool {
	var slot *bool
	switch button {
	case constants.VirtualButtonUp:
		slot = &d.held.up
	case constants.VirtualButtonDown:
		slot = &d.held.down
	case constants.VirtualButtonLeft:
		slot = &d.held.left
	case constants.VirtualButtonRight:
		slot = &d.held.right
	default:
		return false
	}

	*slot = held
	if held {
		// The press itself is handled by the caller; repeats start after the delay.
		d.lastRepeatTime = d.now()
		d.hasRepeated = false
	} else {
		d.hasRepeated = false
	}
	return true
}

// IsHeld returns true if any direction is currently held.
func (d *DirectionalInput) IsHeld() bool {
	return d.held.up || d.held.down || d.held.left || d.held.right
}

// HeldDirection returns the held direction. Up wins over down, down over
// left, left over right.
func (d *DirectionalInput) HeldDirection() carousel.Direction {
	switch {
	case d.held.up:
		return carousel.DirectionUp
	case d.held.down:
		return carousel.DirectionDown
	case d.held.left:
		return carousel.DirectionLeft
	case d.held.right:
		return carousel.DirectionRight
	}
	return carousel.DirectionNone
}

// Update is called once per frame and returns the direction to repeat, or
// DirectionNone.
func (d *DirectionalInput) Update() carousel.Direction {
	now := d.now()
	if !d.IsHeld() {
		d.lastRepeatTime = now
		d.hasRepeated = false
		return carousel.DirectionNone
	}

	threshold := d.repeatInterval
	if !d.hasRepeated {
		threshold = d.repeatDelay
	}

	if now.Sub(d.lastRepeatTime) >= threshold {
		d.lastRepeatTime = now
		d.hasRepeated = true
		return d.HeldDirection()
	}

	return carousel.DirectionNone
}

// Reset clears all held directions, e.g. when a page transition starts.
func (d *DirectionalInput) Reset() {
	d.held.up = false
	d.held.down = false
	d.held.left = false
	d.held.right = false
	d.hasRepeated = false
	d.lastRepeatTime = d.now()
}

// KeyFor maps a virtual button to the carousel key it stands for.
func KeyFor(button constants.VirtualButton) (carousel.Key, bool) {
	switch button {
	case constants.VirtualButtonUp:
		return carousel.KeyUp, true
	case constants.VirtualButtonDown:
		return carousel.KeyDown, true
	case constants.VirtualButtonLeft:
		return carousel.KeyLeft, true
	case constants.VirtualButtonRight:
		return carousel.KeyRight, true
	case constants.VirtualButtonA, constants.VirtualButtonStart:
		return carousel.KeyEnter, true
	}
	return 0, false
}

// KeyForDirection maps a repeated direction back to its key.
func KeyForDirection(d carousel.Direction) (carousel.Key, bool) {
	switch d {
	case carousel.DirectionUp:
		return carousel.KeyUp, true
	case carousel.DirectionDown:
		return carousel.KeyDown, true
	case carousel.DirectionLeft:
		return carousel.KeyLeft, true
	case carousel.DirectionRight:
		return carousel.KeyRight, true
	}
	return 0, false
}
