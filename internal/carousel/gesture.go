package carousel

// DefaultSwipeThreshold is the minimum horizontal travel, in pixels, that
// counts as a swipe.
const DefaultSwipeThreshold = 50

// Swipe classifies a horizontal gesture from start to end. Travel to the left
// past threshold steps forward.
func Swipe(start, end, threshold float64) Direction {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	distance := start - end
	switch {
	case distance > threshold:
		return DirectionNext
	case distance < -threshold:
		return DirectionPrev
	default:
		return DirectionNone
	}
}

// Gesture tracks one touch sequence at a time. The zero value is armed and
// uses DefaultSwipeThreshold.
type Gesture struct {
	Threshold float64

	startX  float64
	endX    float64
	started bool
	moved   bool
}

func NewGesture(threshold float64) *Gesture {
	return &Gesture{Threshold: threshold}
}

func (g *Gesture) Start(x float64) {
	g.startX = x
	g.started = true
	g.moved = false
}

func (g *Gesture) Move(x float64) {
	if !g.started {
		return
	}
	g.endX = x
	g.moved = true
}

// End classifies the gesture and re-arms the tracker.
func (g *Gesture) End() Direction {
	defer g.reset()
	if !g.started || !g.moved {
		return DirectionNone
	}
	return Swipe(g.startX, g.endX, g.Threshold)
}

func (g *Gesture) reset() {
	g.startX, g.endX = 0, 0
	g.started, g.moved = false, false
}
