package internal

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/constants"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestDirectionalRepeat(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	d := newDirectionalInput(300*time.Millisecond, 100*time.Millisecond, clock.Now)

	require.Equal(t, carousel.DirectionNone, d.Update())

	require.True(t, d.SetHeld(constants.VirtualButtonDown, true))
	require.False(t, d.SetHeld(constants.VirtualButtonA, true))

	clock.Advance(299 * time.Millisecond)
	require.Equal(t, carousel.DirectionNone, d.Update())

	clock.Advance(time.Millisecond)
	require.Equal(t, carousel.DirectionDown, d.Update())

	clock.Advance(99 * time.Millisecond)
	require.Equal(t, carousel.DirectionNone, d.Update())

	clock.Advance(time.Millisecond)
	require.Equal(t, carousel.DirectionDown, d.Update())

	d.SetHeld(constants.VirtualButtonDown, false)
	clock.Advance(time.Second)
	require.Equal(t, carousel.DirectionNone, d.Update())
}

func TestDirectionalPriorityAndReset(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	d := newDirectionalInput(10*time.Millisecond, 10*time.Millisecond, clock.Now)

	d.SetHeld(constants.VirtualButtonRight, true)
	d.SetHeld(constants.VirtualButtonUp, true)
	require.Equal(t, carousel.DirectionUp, d.HeldDirection())

	d.Reset()
	require.False(t, d.IsHeld())
	clock.Advance(time.Second)
	require.Equal(t, carousel.DirectionNone, d.Update())
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		button constants.VirtualButton
		want   carousel.Key
		ok     bool
	}{
		{constants.VirtualButtonUp, carousel.KeyUp, true},
		{constants.VirtualButtonRight, carousel.KeyRight, true},
		{constants.VirtualButtonA, carousel.KeyEnter, true},
		{constants.VirtualButtonStart, carousel.KeyEnter, true},
		{constants.VirtualButtonB, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.button.String(), func(t *testing.T) {
			got, ok := KeyFor(tt.button)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}

	key, ok := KeyForDirection(carousel.DirectionLeft)
	require.True(t, ok)
	require.Equal(t, carousel.KeyLeft, key)
}

func newTestProcessor() *Processor {
	return NewInputProcessor(DefaultInputMapping(), logging.Discard())
}

func TestProcessKeyboard(t *testing.T) {
	ip := newTestProcessor()

	evt := ip.ProcessSDLEvent(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_RETURN}})
	require.NotNil(t, evt)
	require.Equal(t, constants.VirtualButtonA, evt.Button)
	require.True(t, evt.Pressed)
	require.Equal(t, SourceKeyboard, evt.Source)

	evt = ip.ProcessSDLEvent(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Sym: sdl.K_RETURN}})
	require.NotNil(t, evt)
	require.False(t, evt.Pressed)

	require.Nil(t, ip.ProcessSDLEvent(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Sym: sdl.K_UP}}))
	require.Nil(t, ip.ProcessSDLEvent(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_F12}}))
}

func TestProcessHatDirectionChange(t *testing.T) {
	ip := newTestProcessor()

	evt := ip.ProcessSDLEvent(&sdl.JoyHatEvent{Hat: 0, Value: sdl.HAT_UP})
	require.Equal(t, constants.VirtualButtonUp, evt.Button)
	require.True(t, evt.Pressed)
	require.Nil(t, ip.Pending())

	evt = ip.ProcessSDLEvent(&sdl.JoyHatEvent{Hat: 0, Value: sdl.HAT_LEFT})
	require.Equal(t, constants.VirtualButtonUp, evt.Button)
	require.False(t, evt.Pressed)

	queued := ip.Pending()
	require.NotNil(t, queued)
	require.Equal(t, constants.VirtualButtonLeft, queued.Button)
	require.True(t, queued.Pressed)

	evt = ip.ProcessSDLEvent(&sdl.JoyHatEvent{Hat: 0, Value: sdl.HAT_CENTERED})
	require.Equal(t, constants.VirtualButtonLeft, evt.Button)
	require.False(t, evt.Pressed)

	require.Nil(t, ip.ProcessSDLEvent(&sdl.JoyHatEvent{Hat: 0, Value: sdl.HAT_CENTERED}))
}

func TestProcessAxis(t *testing.T) {
	ip := newTestProcessor()

	require.Nil(t, ip.ProcessSDLEvent(&sdl.JoyAxisEvent{Axis: 0, Value: 1000}))

	evt := ip.ProcessSDLEvent(&sdl.JoyAxisEvent{Axis: 0, Value: 30000})
	require.Equal(t, constants.VirtualButtonRight, evt.Button)
	require.True(t, evt.Pressed)

	require.Nil(t, ip.ProcessSDLEvent(&sdl.JoyAxisEvent{Axis: 0, Value: 32000}))

	evt = ip.ProcessSDLEvent(&sdl.JoyAxisEvent{Axis: 0, Value: -30000})
	require.Equal(t, constants.VirtualButtonRight, evt.Button)
	require.False(t, evt.Pressed)
	queued := ip.Pending()
	require.Equal(t, constants.VirtualButtonLeft, queued.Button)
	require.True(t, queued.Pressed)

	evt = ip.ProcessSDLEvent(&sdl.ControllerAxisEvent{Axis: 1, Value: -20000})
	require.Equal(t, constants.VirtualButtonUp, evt.Button)
	require.Equal(t, SourceController, evt.Source)

	require.Nil(t, ip.ProcessSDLEvent(&sdl.JoyAxisEvent{Axis: 5, Value: 30000}))
}

func TestPointerEvent(t *testing.T) {
	e, ok := PointerEvent(&sdl.MouseWheelEvent{Y: 1}, 100, 100)
	require.True(t, ok)
	require.Equal(t, carousel.WheelEvent{DeltaY: 1}, e)

	e, ok = PointerEvent(&sdl.MouseWheelEvent{Y: 1, Direction: sdl.MOUSEWHEEL_FLIPPED}, 100, 100)
	require.True(t, ok)
	require.Equal(t, carousel.WheelEvent{DeltaY: -1}, e)

	_, ok = PointerEvent(&sdl.MouseWheelEvent{}, 100, 100)
	require.False(t, ok)

	e, ok = PointerEvent(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 10, Y: 20}, 100, 100)
	require.True(t, ok)
	require.Equal(t, carousel.PointerDown{Point: carousel.Point{X: 10, Y: 20}}, e)

	_, ok = PointerEvent(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_RIGHT}, 100, 100)
	require.False(t, ok)

	_, ok = PointerEvent(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, Which: sdl.TOUCH_MOUSEID}, 100, 100)
	require.False(t, ok)

	e, ok = PointerEvent(&sdl.TouchFingerEvent{Type: sdl.FINGERUP, X: 0.5, Y: 0.25}, 1280, 720)
	require.True(t, ok)
	require.Equal(t, carousel.PointerUp{Point: carousel.Point{X: 640, Y: 180}}, e)
}

func TestInputMappingJSON(t *testing.T) {
	data, err := DefaultInputMapping().ToJSON()
	require.NoError(t, err)

	mapping, err := LoadInputMappingFromBytes(data)
	require.NoError(t, err)
	require.Equal(t, constants.VirtualButtonA, mapping.KeyboardMap[sdl.K_RETURN])
	require.Equal(t, constants.VirtualButtonDown, mapping.JoystickAxisMap[1].PositiveButton)
	require.Equal(t, constants.VirtualButtonLeft, mapping.JoystickHatMap[sdl.HAT_LEFT])

	_, err = LoadInputMappingFromBytes([]byte("{"))
	require.Error(t, err)
}

func TestInputMappingDefaultThreshold(t *testing.T) {
	mapping, err := LoadInputMappingFromBytes([]byte(`{"joystick_axis_map": {"2": {"positive_button": 4, "negative_button": 3}}}`))
	require.NoError(t, err)
	require.Equal(t, defaultAxisThreshold, mapping.JoystickAxisMap[2].Threshold)
	require.Equal(t, constants.VirtualButtonRight, mapping.JoystickAxisMap[2].PositiveButton)
}

func TestScaleFactor(t *testing.T) {
	require.Equal(t, float32(1), ScaleFactor(1024))
	require.Equal(t, float32(0.5), ScaleFactor(512))
	require.Equal(t, float32(1.75), ScaleFactor(2048))
	require.Equal(t, 28, CalculateFontSizeForResolution(28, 1024))
}

func TestColors(t *testing.T) {
	require.Equal(t, sdl.Color{R: 0x12, G: 0x34, B: 0x56, A: 255}, HexToColor(0x123456))

	black := sdl.Color{A: 255}
	white := sdl.Color{R: 255, G: 255, B: 255, A: 255}
	require.Equal(t, black, Mix(black, white, -1))
	require.Equal(t, white, Mix(black, white, 2))
	require.Equal(t, uint8(128), Mix(black, white, 0.5).R)
}

func TestPaddingInset(t *testing.T) {
	p := Padding{Top: 1, Right: 2, Bottom: 3, Left: 4}
	require.Equal(t, sdl.Rect{X: 14, Y: 21, W: 94, H: 46}, p.Inset(sdl.Rect{X: 10, Y: 20, W: 100, H: 50}))
	require.Equal(t, int32(0), UniformPadding(10).Inset(sdl.Rect{W: 5, H: 5}).W)
	require.Equal(t, UniformPadding(20), UniformPadding(10).Scaled(2))
}

type fakeKeySource struct {
	events chan *evdev.InputEvent
	once   sync.Once
}

func newFakeKeySource() *fakeKeySource {
	return &fakeKeySource{events: make(chan *evdev.InputEvent)}
}

func (f *fakeKeySource) ReadOne() (*evdev.InputEvent, error) {
	ev, ok := <-f.events
	if !ok {
		return nil, io.EOF
	}
	return ev, nil
}

func (f *fakeKeySource) Close() error {
	f.once.Do(func() { close(f.events) })
	return nil
}

func (f *fakeKeySource) key(code evdev.EvCode, value int32) {
	f.events <- &evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}
}

func TestPowerButtonLongPress(t *testing.T) {
	src := newFakeKeySource()
	fired := make(chan struct{}, 1)

	pb := startPowerButton(src, PowerButtonConfig{
		LongPress:   20 * time.Millisecond,
		OnLongPress: func() { fired <- struct{}{} },
	}, logging.Discard())

	src.key(evdev.KEY_POWER, 1)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("long press did not fire")
	}

	src.key(evdev.KEY_POWER, 0)
	require.NoError(t, pb.Close())
	require.NoError(t, pb.Close())
}

func TestPowerButtonShortPressIgnored(t *testing.T) {
	src := newFakeKeySource()
	var fired bool
	var mu sync.Mutex

	pb := startPowerButton(src, PowerButtonConfig{
		LongPress: time.Hour,
		OnLongPress: func() {
			mu.Lock()
			fired = true
			mu.Unlock()
		},
	}, logging.Discard())

	src.key(evdev.KEY_VOLUMEUP, 1)
	src.key(evdev.KEY_POWER, 1)
	src.key(evdev.KEY_POWER, 0)
	require.NoError(t, pb.Close())

	mu.Lock()
	defer mu.Unlock()
	require.False(t, fired)
	require.False(t, pb.disarm())
}

func TestFontCandidates(t *testing.T) {
	t.Setenv(constants.FallbackFontEnvVar, "/tmp/fallback.ttf")
	got := FontCandidates("/theme.ttf")
	require.Equal(t, "/theme.ttf", got[0])
	require.Equal(t, "/tmp/fallback.ttf", got[1])
	require.Greater(t, len(got), 2)

}
