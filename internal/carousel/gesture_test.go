package carousel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwipe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end float64
		threshold  float64
		want       Direction
	}{
		{"left swipe steps forward", 200, 100, 0, DirectionNext},
		{"right swipe steps back", 100, 200, 0, DirectionPrev},
		{"exactly threshold is a tap", 150, 100, 50, DirectionNone},
		{"short drag", 100, 80, 50, DirectionNone},
		{"custom threshold", 100, 20, 100, DirectionNone},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Swipe(tt.start, tt.end, tt.threshold))
		})
	}
}

func TestGestureUsesLastMoveAndRearms(t *testing.T) {
	t.Parallel()

	var g Gesture
	g.Start(200)
	g.Move(150)
	g.Move(100)
	require.Equal(t, DirectionNext, g.End())

	// Re-armed: a second end without a new start is not a swipe.
	require.Equal(t, DirectionNone, g.End())

	g.Start(100)
	g.Move(180)
	require.Equal(t, DirectionPrev, g.End())

	g.Start(100)
	g.Move(130)
	require.Equal(t, DirectionNone, g.End())
}

func TestGestureTapWithoutMove(t *testing.T) {
	t.Parallel()

	g := NewGesture(DefaultSwipeThreshold)
	g.Move(10)
	require.Equal(t, DirectionNone, g.End())

	g.Start(300)
	require.Equal(t, DirectionNone, g.End())
}

func TestGestureDrivesNavigator(t *testing.T) {
	t.Parallel()

	nav, clk, _ := newManual(t, 3)
	g := NewGesture(0)
	g.Start(200)
	g.Move(100)
	nav.Step(g.End())
	clk.Advance(DefaultTransitionDelay)
	require.Equal(t, 1, nav.Cursor())
}
