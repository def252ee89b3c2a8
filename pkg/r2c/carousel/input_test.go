package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestAggregator() (*InputAggregator, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewInputAggregatorWithSettings(AggregatorSettings{Clock: clock.Now}), clock
}

func TestKeysPassThrough(t *testing.T) {
	ia := NewInputAggregator()

	tests := []struct {
		key  Key
		kind IntentKind
		dir  Direction
	}{
		{KeyUp, IntentMove, DirectionUp},
		{KeyDown, IntentMove, DirectionDown},
		{KeyLeft, IntentMove, DirectionLeft},
		{KeyRight, IntentMove, DirectionRight},
		{KeyEnter, IntentActivate, DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			intent, ok := ia.Process(KeyEvent{Key: tt.key})
			require.True(t, ok)
			require.Equal(t, tt.kind, intent.Kind)
			require.Equal(t, tt.dir, intent.Direction)
			require.Equal(t, SourceKey, intent.Source)
		})
	}

	_, ok := ia.Process(KeyEvent{Key: Key(99)})
	require.False(t, ok)
}

func TestWheelAccumulatesToThreshold(t *testing.T) {
	ia, clock := newTestAggregator()

	_, ok := ia.Process(WheelEvent{DeltaY: 1.0})
	require.False(t, ok)

	clock.Advance(100 * time.Millisecond)
	intent, ok := ia.Process(WheelEvent{DeltaY: 1.0})
	require.True(t, ok)
	require.Equal(t, IntentPageChange, intent.Kind)
	require.Equal(t, 1, intent.Sign)
	require.Equal(t, SourceWheel, intent.Source)

	// The accumulator restarts after firing.
	clock.Advance(10 * time.Millisecond)
	_, ok = ia.Process(WheelEvent{DeltaY: 1.0})
	require.False(t, ok)
}

func TestWheelSumsBothAxes(t *testing.T) {
	ia, _ := newTestAggregator()

	intent, ok := ia.Process(WheelEvent{DeltaX: -1.5, DeltaY: -0.5})
	require.True(t, ok)
	require.Equal(t, -1, intent.Sign)

	_, ok = ia.Process(WheelEvent{DeltaX: 1, DeltaY: -1})
	require.False(t, ok)
}

func TestWheelStaleWindowRestarts(t *testing.T) {
	ia, clock := newTestAggregator()

	_, ok := ia.Process(WheelEvent{DeltaY: 1.0})
	require.False(t, ok)

	clock.Advance(600 * time.Millisecond)
	_, ok = ia.Process(WheelEvent{DeltaY: 1.0})
	require.False(t, ok, "slow scroll must not fire")

	clock.Advance(100 * time.Millisecond)
	intent, ok := ia.Process(WheelEvent{DeltaY: 1.0})
	require.True(t, ok)
	require.Equal(t, 1, intent.Sign)
}

func TestWheelWindowBoundaryIsInclusive(t *testing.T) {
	ia, clock := newTestAggregator()

	ia.Process(WheelEvent{DeltaY: -1.0})
	clock.Advance(DefaultScrollWindow)

	intent, ok := ia.Process(WheelEvent{DeltaY: -1.0})
	require.True(t, ok)
	require.Equal(t, -1, intent.Sign)
}

func TestWheelFiresOncePerCrossing(t *testing.T) {
	ia, _ := newTestAggregator()

	fired := 0
	for range 7 {
		if _, ok := ia.Process(WheelEvent{DeltaY: 1.0}); ok {
			fired++
		}
	}
	require.Equal(t, 3, fired)
}

func TestWheelIgnoresZero(t *testing.T) {
	ia, _ := newTestAggregator()

	_, ok := ia.Process(WheelEvent{})
	require.False(t, ok)
	require.Zero(t, ia.accumulated)
	require.False(t, ia.scrollActive)
}

func TestDrag(t *testing.T) {
	tests := []struct {
		name string
		from Point
		to   Point
		fire bool
		sign int
		axis Axis
	}{
		{"vertical down", Point{0, 0}, Point{0, 60}, true, 1, AxisVertical},
		{"short", Point{0, 0}, Point{0, 10}, false, 0, AxisNone},
		{"horizontal left", Point{100, 100}, Point{50, 110}, true, -1, AxisHorizontal},
		{"exact threshold", Point{0, 0}, Point{42, 0}, true, 1, AxisHorizontal},
		{"diagonal tie is vertical", Point{0, 0}, Point{-40, -40}, true, -1, AxisVertical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ia := NewInputAggregator()

			_, ok := ia.Process(PointerDown{Point: tt.from})
			require.False(t, ok, "press never fires")
			require.True(t, ia.IsDragging())

			intent, ok := ia.Process(PointerUp{Point: tt.to})
			require.Equal(t, tt.fire, ok)
			require.False(t, ia.IsDragging())
			if tt.fire {
				require.Equal(t, IntentPageChange, intent.Kind)
				require.Equal(t, tt.sign, intent.Sign)
				require.Equal(t, tt.axis, intent.Axis)
				require.Equal(t, SourceDrag, intent.Source)
			}
		})
	}
}

func TestDragKeepsFirstPress(t *testing.T) {
	ia := NewInputAggregator()

	ia.Process(PointerDown{Point: Point{0, 0}})
	ia.Process(PointerDown{Point: Point{0, 55}})

	start, ok := ia.DragStart()
	require.True(t, ok)
	require.Equal(t, Point{0, 0}, start)

	intent, ok := ia.Process(PointerUp{Point: Point{0, 60}})
	require.True(t, ok)
	require.Equal(t, AxisVertical, intent.Axis)
}

func TestReleaseWithoutPress(t *testing.T) {
	ia := NewInputAggregator()

	_, ok := ia.Process(PointerUp{Point: Point{500, 500}})
	require.False(t, ok)
}

func TestCustomThresholds(t *testing.T) {
	ia := NewInputAggregatorWithSettings(AggregatorSettings{ScrollThreshold: 1, DragThreshold: 5})

	_, ok := ia.Process(WheelEvent{DeltaY: 1})
	require.True(t, ok)

	ia.Process(PointerDown{})
	_, ok = ia.Process(PointerUp{Point: Point{0, 6}})
	require.True(t, ok)
}
