package internal

import (
	"fmt"
	"log/slog"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/constants"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
)

var (
	globalInputProcessor *Processor
	gameControllers      []*sdl.GameController
	rawJoysticks         []*sdl.Joystick
)

// Source is the physical channel a button event came from.
type Source int

const (
	SourceKeyboard Source = iota
	SourceController
	SourceJoystick
	SourceHatSwitch
)

// Event is a virtual button press or release.
type Event struct {
	Button  constants.VirtualButton
	Pressed bool
	Source  Source
	RawCode int
}

// InitInputProcessor opens every attached controller and installs the
// process-wide processor.
func InitInputProcessor() {
	logger := logging.GetInternalLogger()
	globalInputProcessor = NewInputProcessor(GetInputMapping(), logger)

	numJoysticks := sdl.NumJoysticks()
	logger.Debug("Detecting controllers", "joystick_count", numJoysticks)

	for i := 0; i < numJoysticks; i++ {
		if sdl.IsGameController(i) {
			controller := sdl.GameControllerOpen(i)
			if controller == nil {
				logger.Error("Failed to open game controller", "index", i)
				continue
			}
			logger.Debug("Opened game controller", "index", i, "name", controller.Name())
			gameControllers = append(gameControllers, controller)
			continue
		}

		joystick := sdl.JoystickOpen(i)
		if joystick == nil {
			logger.Debug("Failed to open raw joystick", "index", i)
			continue
		}
		logger.Debug("Opened raw joystick", "index", i, "name", joystick.Name())
		rawJoysticks = append(rawJoysticks, joystick)
	}
}

func GetInputProcessor() *Processor {
	return globalInputProcessor
}

func CloseAllControllers() {
	for _, controller := range gameControllers {
		if controller != nil {
			controller.Close()
		}
	}
	for _, joystick := range rawJoysticks {
		if joystick != nil {
			joystick.Close()
		}
	}
	gameControllers = nil
	rawJoysticks = nil
}

// Processor turns SDL button, hat and axis events into virtual button events.
type Processor struct {
	mapping    *InputMapping
	axisStates map[uint8]int8  // -1, 0 or 1 per axis
	hatStates  map[uint8]uint8 // last hat position per hat
	eventQueue []*Event
	logger     *slog.Logger
}

func NewInputProcessor(mapping *InputMapping, logger *slog.Logger) *Processor {
	if mapping == nil {
		mapping = DefaultInputMapping()
	}
	if logger == nil {
		logger = logging.GetInternalLogger()
	}
	return &Processor{
		mapping:    mapping,
		axisStates: make(map[uint8]int8),
		hatStates:  make(map[uint8]uint8),
		logger:     logger,
	}
}

// Pending returns an event queued by a previous hat change, if any.
func (ip *Processor) Pending() *Event {
	if len(ip.eventQueue) == 0 {
		return nil
	}
	evt := ip.eventQueue[0]
	ip.eventQueue = ip.eventQueue[1:]
	return evt
}

// ProcessSDLEvent maps one SDL event. It returns nil for unmapped input.
// A hat moving straight from one direction to another yields the release
// now and queues the press; call Pending to collect it.
func (ip *Processor) ProcessSDLEvent(event sdl.Event) *Event {
	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return nil
		}
		if button, ok := ip.mapping.KeyboardMap[e.Keysym.Sym]; ok {
			return &Event{Button: button, Pressed: e.Type == sdl.KEYDOWN, Source: SourceKeyboard, RawCode: int(e.Keysym.Sym)}
		}
		ip.logger.Debug("Keyboard input not mapped", "key_code", int(e.Keysym.Sym))

	case *sdl.ControllerButtonEvent:
		if button, ok := ip.mapping.ControllerButtonMap[sdl.GameControllerButton(e.Button)]; ok {
			return &Event{Button: button, Pressed: e.Type == sdl.CONTROLLERBUTTONDOWN, Source: SourceController, RawCode: int(e.Button)}
		}
		ip.logger.Debug("Controller button not mapped", "button_code", e.Button)

	case *sdl.JoyButtonEvent:
		if button, ok := ip.mapping.JoystickButtonMap[e.Button]; ok {
			return &Event{Button: button, Pressed: e.Type == sdl.JOYBUTTONDOWN, Source: SourceJoystick, RawCode: int(e.Button)}
		}
		ip.logger.Debug("Joy button not mapped", "button_code", fmt.Sprintf("JoyButton%d", e.Button))

	case *sdl.JoyHatEvent:
		return ip.processHat(e.Hat, e.Value)

	case *sdl.ControllerAxisEvent:
		return ip.processAxis(e.Axis, e.Value, SourceController)

	case *sdl.JoyAxisEvent:
		return ip.processAxis(e.Axis, e.Value, SourceJoystick)
	}
	return nil
}

func (ip *Processor) processHat(hat, value uint8) *Event {
	previous := ip.hatStates[hat]
	ip.hatStates[hat] = value

	if previous == value {
		return nil
	}

	var release, press *Event
	if previous != sdl.HAT_CENTERED {
		if button, ok := ip.mapping.JoystickHatMap[previous]; ok {
			release = &Event{Button: button, Pressed: false, Source: SourceHatSwitch, RawCode: int(previous)}
		}
	}
	if value != sdl.HAT_CENTERED {
		if button, ok := ip.mapping.JoystickHatMap[value]; ok {
			press = &Event{Button: button, Pressed: true, Source: SourceHatSwitch, RawCode: int(value)}
		} else {
			ip.logger.Debug("Joy hat not mapped", "hat_value", value)
		}
	}

	switch {
	case release != nil && press != nil:
		ip.eventQueue = append(ip.eventQueue, press)
		return release
	case release != nil:
		return release
	default:
		return press
	}
}

func (ip *Processor) processAxis(axis uint8, value int16, source Source) *Event {
	config, ok := ip.mapping.JoystickAxisMap[axis]
	if !ok {
		return nil
	}

	previous := ip.axisStates[axis]
	var next int8
	switch {
	case value > config.Threshold:
		next = 1
	case value < -config.Threshold:
		next = -1
	}

	if next == previous {
		return nil
	}
	ip.axisStates[axis] = next

	var release, press *Event
	switch previous {
	case 1:
		release = &Event{Button: config.PositiveButton, Pressed: false, Source: source, RawCode: int(axis)}
	case -1:
		release = &Event{Button: config.NegativeButton, Pressed: false, Source: source, RawCode: int(axis)}
	}
	switch next {
	case 1:
		press = &Event{Button: config.PositiveButton, Pressed: true, Source: source, RawCode: int(axis)}
	case -1:
		press = &Event{Button: config.NegativeButton, Pressed: true, Source: source, RawCode: int(axis)}
	}

	if release != nil && press != nil {
		ip.eventQueue = append(ip.eventQueue, press)
		return release
	}
	if release != nil {
		return release
	}
	return press
}

// PointerEvent converts wheel, mouse and touch events into carousel input.
// Finger coordinates are normalised by SDL and scaled to width and height.
// Mouse events synthesised from touches are dropped so a tap is seen once.
func PointerEvent(event sdl.Event, width, height int32) (carousel.InputEvent, bool) {
	switch e := event.(type) {
	case *sdl.MouseWheelEvent:
		dx, dy := float64(e.X), float64(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dx, dy = -dx, -dy
		}
		if dx == 0 && dy == 0 {
			return nil, false
		}
		return carousel.WheelEvent{DeltaX: dx, DeltaY: dy}, true

	case *sdl.MouseButtonEvent:
		if e.Which == sdl.TOUCH_MOUSEID || e.Button != sdl.BUTTON_LEFT {
			return nil, false
		}
		p := carousel.Point{X: float64(e.X), Y: float64(e.Y)}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			return carousel.PointerDown{Point: p}, true
		}
		return carousel.PointerUp{Point: p}, true

	case *sdl.TouchFingerEvent:
		p := carousel.Point{X: float64(e.X) * float64(width), Y: float64(e.Y) * float64(height)}
		switch e.Type {
		case sdl.FINGERDOWN:
			return carousel.PointerDown{Point: p}, true
		case sdl.FINGERUP:
			return carousel.PointerUp{Point: p}, true
		}
	}
	return nil, false
}
