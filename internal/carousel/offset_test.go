package carousel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOffsetNavigatorBounds(t *testing.T) {
	t.Parallel()

	o := NewOffset(1000, 400, 0)
	require.False(t, o.CanStepPrev())
	require.True(t, o.CanStepNext())
	require.Equal(t, 600, o.MaxOffset())

	o.StepNext()
	require.Equal(t, DefaultScrollStep, o.Offset())
	require.True(t, o.CanStepPrev())

	o.StepNext()
	require.Equal(t, 600, o.Offset())
	require.False(t, o.CanStepNext())

	o.StepNext()
	require.Equal(t, 600, o.Offset())

	o.Step(DirectionPrev)
	require.Equal(t, 300, o.Offset())
	o.Step(DirectionNone)
	require.Equal(t, 300, o.Offset())
}

func TestOffsetNavigatorScrollToClamps(t *testing.T) {
	t.Parallel()

	o := NewOffset(1000, 400, 250)
	o.ScrollTo(-5)
	require.Zero(t, o.Offset())
	o.ScrollTo(10_000)
	require.Equal(t, 600, o.Offset())
	o.StepPrev()
	require.Equal(t, 350, o.Offset())
}

func TestOffsetNavigatorContentFitsViewport(t *testing.T) {
	t.Parallel()

	o := NewOffset(300, 1200, 0)
	require.False(t, o.CanStepPrev())
	require.False(t, o.CanStepNext())
	o.StepNext()
	require.Zero(t, o.Offset())
}
