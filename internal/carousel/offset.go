package carousel

// DefaultScrollStep is how far a rail scrolls per step, in pixels.
const DefaultScrollStep = 300

// OffsetNavigator tracks a rail's horizontal scroll position. It is not safe
// for concurrent use.
type OffsetNavigator struct {
	offset   int
	content  int
	viewport int
	step     int
}

// NewOffset returns a navigator at offset zero. A non-positive step selects
// DefaultScrollStep.
func NewOffset(contentWidth, viewportWidth, step int) *OffsetNavigator {
	if step <= 0 {
		step = DefaultScrollStep
	}
	return &OffsetNavigator{content: contentWidth, viewport: viewportWidth, step: step}
}

func (o *OffsetNavigator) Offset() int { return o.offset }

// MaxOffset is the furthest the rail can scroll.
func (o *OffsetNavigator) MaxOffset() int {
	if m := o.content - o.viewport; m > 0 {
		return m
	}
	return 0
}

func (o *OffsetNavigator) CanStepPrev() bool { return o.offset > 0 }

func (o *OffsetNavigator) CanStepNext() bool { return o.offset < o.content-o.viewport }

func (o *OffsetNavigator) StepPrev() { o.ScrollTo(o.offset - o.step) }

func (o *OffsetNavigator) StepNext() { o.ScrollTo(o.offset + o.step) }

// Step moves one step in dir.
func (o *OffsetNavigator) Step(dir Direction) {
	switch dir {
	case DirectionNext:
		o.StepNext()
	case DirectionPrev:
		o.StepPrev()
	}
}

// ScrollTo records an offset reported by the client, clamped to the rail.
func (o *OffsetNavigator) ScrollTo(offset int) {
	switch {
	case offset < 0:
		offset = 0
	case offset > o.MaxOffset():
		offset = o.MaxOffset()
	}
	o.offset = offset
}
