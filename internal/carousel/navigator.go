// Package carousel implements cursor navigation for image carousels and
// product rails: wraparound stepping with a two-phase hide/reveal transition,
// optional auto-advance, swipe gestures, and offset-based rail scrolling.
package carousel

import (
	"errors"
	"sync"
	"time"
)

const (
	DefaultTransitionDelay = 300 * time.Millisecond
	DefaultAutoAdvance     = 4 * time.Second
)

var (
	ErrOutOfRange = errors.New("carousel: index out of range")
	ErrClosed     = errors.New("carousel: navigator closed")
)

// Stepper is the contract shared by index and offset navigators.
type Stepper interface {
	CanStepPrev() bool
	CanStepNext() bool
	StepPrev()
	StepNext()
}

// Direction of a step.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionNext
	DirectionPrev
)

func (d Direction) String() string {
	switch d {
	case DirectionNext:
		return "next"
	case DirectionPrev:
		return "prev"
	default:
		return "none"
	}
}

// ParseDirection maps "next"/"prev" to a Direction; anything else is DirectionNone.
func ParseDirection(s string) Direction {
	switch s {
	case "next":
		return DirectionNext
	case "prev":
		return DirectionPrev
	default:
		return DirectionNone
	}
}

// Phase of the transition state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTransitioning
)

func (p Phase) String() string {
	if p == PhaseTransitioning {
		return "transitioning"
	}
	return "idle"
}

// Snapshot is a consistent view of a navigator. Cursor is the committed
// index; Target is where a running transition will land.
type Snapshot struct {
	Cursor    int
	Target    int
	Length    int
	Visible   bool
	Phase     Phase
	Direction Direction
}

// Next returns the cursor after a forward step over n items.
func Next(c, n int) int {
	if n <= 0 {
		return 0
	}
	return (c + 1) % n
}

// Prev returns the cursor after a backward step over n items.
func Prev(c, n int) int {
	if n <= 0 {
		return 0
	}
	if c <= 0 {
		return n - 1
	}
	return c - 1
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithTransitionDelay sets the hide/reveal delay. Zero commits immediately.
func WithTransitionDelay(d time.Duration) Option {
	return func(n *Navigator) {
		if d >= 0 {
			n.delay = d
		}
	}
}

// WithAutoAdvance enables stepping forward every d while idle.
func WithAutoAdvance(d time.Duration) Option {
	return func(n *Navigator) {
		if d > 0 {
			n.interval = d
		}
	}
}

func WithClock(c Clock) Option {
	return func(n *Navigator) {
		if c != nil {
			n.clock = c
		}
	}
}

// WithOnChange registers a callback for every state change. It runs with the
// navigator locked and must not call back into the navigator.
func WithOnChange(fn func(Snapshot)) Option {
	return func(n *Navigator) {
		n.onChange = fn
	}
}

// WithStart sets the initial cursor. Out of range values are ignored.
func WithStart(i int) Option {
	return func(n *Navigator) {
		n.start = i
	}
}

// Navigator owns a cursor over a fixed number of items.
type Navigator struct {
	mu       sync.Mutex
	length   int
	start    int
	cursor   int
	target   int
	visible  bool
	phase    Phase
	dir      Direction
	delay    time.Duration
	interval time.Duration
	clock    Clock
	onChange func(Snapshot)

	reveal    Timer
	revealGen uint64
	auto      Timer
	autoGen   uint64
	closed    bool
}

// New returns an idle, visible navigator over length items.
func New(length int, opts ...Option) *Navigator {
	if length < 0 {
		length = 0
	}
	n := &Navigator{
		length:  length,
		visible: true,
		delay:   DefaultTransitionDelay,
		clock:   RealClock(),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.start > 0 && n.start < length {
		n.cursor = n.start
	}
	n.target = n.cursor

	n.mu.Lock()
	n.armAutoLocked()
	n.mu.Unlock()
	return n
}

func (n *Navigator) Snapshot() Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshotLocked()
}

func (n *Navigator) Cursor() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cursor
}

func (n *Navigator) Len() int { return n.length }

func (n *Navigator) Empty() bool { return n.length == 0 }

func (n *Navigator) CanStepPrev() bool { return n.canStep() }

func (n *Navigator) CanStepNext() bool { return n.canStep() }

func (n *Navigator) canStep() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return !n.closed && n.length > 1
}

func (n *Navigator) StepNext() { n.Step(DirectionNext) }

func (n *Navigator) StepPrev() { n.Step(DirectionPrev) }

// Step starts a transition one item in dir. A step during a running
// transition chains from that transition's target.
func (n *Navigator) Step(dir Direction) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stepLocked(dir)
	n.armAutoLocked()
}

// JumpTo starts a transition to index i. Jumping to the current target does
// nothing.
func (n *Navigator) JumpTo(i int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return ErrClosed
	}
	if i < 0 || i >= n.length {
		return ErrOutOfRange
	}
	if i == n.target {
		return nil
	}
	dir := DirectionNext
	if i < n.target {
		dir = DirectionPrev
	}
	n.beginLocked(i, dir)
	n.armAutoLocked()
	return nil
}

// Close cancels pending timers. Later calls to Close are no-ops and steps
// after Close have no effect.
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	n.revealGen++
	n.autoGen++
	if n.reveal != nil {
		n.reveal.Stop()
		n.reveal = nil
	}
	if n.auto != nil {
		n.auto.Stop()
		n.auto = nil
	}
}

func (n *Navigator) stepLocked(dir Direction) {
	if n.closed || n.length == 0 {
		return
	}
	var to int
	switch dir {
	case DirectionNext:
		to = Next(n.target, n.length)
	case DirectionPrev:
		to = Prev(n.target, n.length)
	default:
		return
	}
	if to == n.target {
		return
	}
	n.beginLocked(to, dir)
}

func (n *Navigator) beginLocked(to int, dir Direction) {
	n.revealGen++
	if n.reveal != nil {
		n.reveal.Stop()
		n.reveal = nil
	}
	n.target = to
	n.dir = dir
	n.visible = false
	n.phase = PhaseTransitioning
	n.emitLocked()

	if n.delay <= 0 {
		n.commitLocked()
		return
	}
	gen := n.revealGen
	n.reveal = n.clock.AfterFunc(n.delay, func() { n.finish(gen) })
}

func (n *Navigator) finish(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed || gen != n.revealGen {
		return
	}
	n.reveal = nil
	n.commitLocked()
}

func (n *Navigator) commitLocked() {
	n.cursor = n.target
	n.visible = true
	n.phase = PhaseIdle
	n.emitLocked()
}

func (n *Navigator) armAutoLocked() {
	if n.closed || n.interval <= 0 || n.length < 2 {
		return
	}
	n.autoGen++
	if n.auto != nil {
		n.auto.Stop()
	}
	gen := n.autoGen
	n.auto = n.clock.AfterFunc(n.interval, func() { n.tick(gen) })
}

func (n *Navigator) tick(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed || gen != n.autoGen {
		return
	}
	n.auto = nil
	if n.phase == PhaseIdle {
		n.stepLocked(DirectionNext)
	}
	n.armAutoLocked()
}

func (n *Navigator) emitLocked() {
	if n.onChange != nil {
		n.onChange(n.snapshotLocked())
	}
}

func (n *Navigator) snapshotLocked() Snapshot {
	return Snapshot{
		Cursor:    n.cursor,
		Target:    n.target,
		Length:    n.length,
		Visible:   n.visible,
		Phase:     n.phase,
		Direction: n.dir,
	}
}
