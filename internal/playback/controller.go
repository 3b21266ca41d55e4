// Package playback drives a bubble sort step sequence over time.
//
// A [Controller] owns the session: the generated array, the presented
// snapshot, size and speed settings, and the Idle/Sorting/Paused/Sorted state
// machine. While sorting it pulls one step per scheduler tick and publishes
// it to a [Listener].
//
// # Thread Safety
//
// Controller is NOT safe for concurrent use. Every method, and every
// callback armed on its scheduler, must run on the scheduler's owner
// goroutine (a clock.Loop or the bubbletea update loop).
package playback

import (
	"fmt"
	"time"

	"github.com/san-kum/bubblesort/internal/clock"
	"github.com/san-kum/bubblesort/internal/sorting"
	"go.uber.org/zap"
)

type Controller struct {
	sched    clock.Scheduler
	gen      *sorting.Generator
	listener Listener
	log      *zap.Logger

	arraySize int
	speed     int

	initial   []sorting.Element
	presented []sorting.Element
	swapCount int
	state     RunState
	cursor    *sorting.Sequence
	current   *sorting.Step

	pull     clock.Timer
	flourish []clock.Timer
	closed   bool
}

type Option func(*Controller)

func WithGenerator(g *sorting.Generator) Option {
	return func(c *Controller) { c.gen = g }
}

// WithListener adds a listener; it may be given more than once.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		if l == nil {
			return
		}
		if m, ok := c.listener.(multiListener); ok {
			c.listener = append(m, l)
			return
		}
		if _, ok := c.listener.(NopListener); ok {
			c.listener = l
			return
		}
		c.listener = multiListener{c.listener, l}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

func WithArraySize(n int) Option {
	return func(c *Controller) { c.arraySize = n }
}

func WithSpeed(s int) Option {
	return func(c *Controller) { c.speed = s }
}

// WithInitialArray starts the session on arr instead of a random array.
// Element states are reset to Default.
func WithInitialArray(arr []sorting.Element) Option {
	return func(c *Controller) { c.initial = sorting.WithState(arr, sorting.Default) }
}

// New returns an Idle controller holding a freshly generated array.
func New(sched clock.Scheduler, opts ...Option) (*Controller, error) {
	if sched == nil {
		return nil, ErrNoScheduler
	}
	c := &Controller{
		sched:     sched,
		listener:  NopListener{},
		log:       zap.NewNop(),
		arraySize: DefaultArraySize,
		speed:     DefaultSpeed,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.gen == nil {
		c.gen = sorting.NewGenerator(time.Now().UnixNano())
	}
	if c.initial != nil {
		c.arraySize = len(c.initial)
	}
	if !ValidArraySize(c.arraySize) {
		return nil, fmt.Errorf("%w: %d", ErrArraySize, c.arraySize)
	}
	if !ValidSpeed(c.speed) {
		return nil, fmt.Errorf("%w: %d", ErrSpeed, c.speed)
	}
	if c.initial == nil {
		c.initial = c.gen.Array(c.arraySize)
	}
	c.presented = sorting.Clone(c.initial)
	return c, nil
}

func (c *Controller) State() RunState { return c.state }
func (c *Controller) SwapCount() int  { return c.swapCount }
func (c *Controller) ArraySize() int  { return c.arraySize }
func (c *Controller) Speed() int      { return c.speed }

// Delay is the pause before the next scheduled pull.
func (c *Controller) Delay() time.Duration {
	d, _ := DelayForSpeed(c.speed)
	return d
}

// Presented returns a copy of the array currently on display.
func (c *Controller) Presented() []sorting.Element { return sorting.Clone(c.presented) }

// Initial returns a copy of the array as generated.
func (c *Controller) Initial() []sorting.Element { return sorting.Clone(c.initial) }

// CurrentStep returns the last applied step, or false when none is live.
func (c *Controller) CurrentStep() (sorting.Step, bool) {
	if c.current == nil {
		return sorting.Step{}, false
	}
	return *c.current, true
}

// HighlightedLine is the pseudocode line to highlight: the current step's
// line while sorting, the return statement once sorted, 0 otherwise.
func (c *Controller) HighlightedLine() int {
	if c.state == Sorted {
		return sorting.LineReturn
	}
	if c.current != nil {
		return c.current.CodeLine
	}
	return 0
}

// Start begins sorting the presented array. It is ignored unless Idle.
func (c *Controller) Start() {
	if c.closed || c.state != Idle {
		return
	}
	c.swapCount = 0
	c.cursor = sorting.Produce(c.presented)
	c.setState(Sorting)
	c.log.Debug("sort started",
		zap.Int("size", len(c.presented)),
		zap.Int("speed", c.speed))
	c.runNextStep()
}

// Pause cancels the pending pull and keeps the cursor. Ignored unless
// Sorting.
func (c *Controller) Pause() {
	if c.closed || c.state != Sorting {
		return
	}
	c.cancelPull()
	c.setState(Paused)
}

// Resume continues from the next unconsumed step at the current speed.
// Ignored unless Paused.
func (c *Controller) Resume() {
	if c.closed || c.state != Paused {
		return
	}
	c.setState(Sorting)
	c.runNextStep()
}

// Toggle performs whichever of Start, Pause or Resume applies.
func (c *Controller) Toggle() {
	switch c.state {
	case Idle:
		c.Start()
	case Sorting:
		c.Pause()
	case Paused:
		c.Resume()
	}
}

// Reset returns to Idle with the initial array, from any state.
func (c *Controller) Reset() {
	if c.closed {
		return
	}
	c.cancelAll()
	c.cursor = nil
	c.current = nil
	c.swapCount = 0
	c.presented = sorting.WithState(c.initial, sorting.Default)
	c.setState(Idle)
}

// GenerateNewArray replaces the initial array and resets. Ignored while
// Sorting.
func (c *Controller) GenerateNewArray() {
	if c.closed || c.state == Sorting {
		return
	}
	c.initial = c.gen.Array(c.arraySize)
	c.log.Debug("new array", zap.Ints("values", sorting.Values(c.initial)))
	c.Reset()
}

// SetArraySize changes the size and regenerates the array. It reports
// whether the size was accepted; it is refused while Sorting or out of
// bounds.
func (c *Controller) SetArraySize(n int) bool {
	if c.closed || c.state == Sorting || !ValidArraySize(n) {
		return false
	}
	if n == c.arraySize {
		return true
	}
	c.arraySize = n
	c.GenerateNewArray()
	return true
}

// SetSpeed changes the delay used for the next scheduled pull. An already
// scheduled pull keeps its delay. It is refused while Sorting or out of
// bounds.
func (c *Controller) SetSpeed(s int) bool {
	if c.closed || c.state == Sorting || !ValidSpeed(s) {
		return false
	}
	c.speed = s
	return true
}

// Close cancels every pending callback. The controller ignores all commands
// afterwards.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.cancelAll()
	c.cursor = nil
	c.closed = true
}

func (c *Controller) runNextStep() {
	c.pull = nil
	if c.state != Sorting {
		return
	}
	if c.cursor == nil {
		c.log.Error("abandoning pull", zap.Error(ErrNoCursor))
		return
	}

	step, ok := c.cursor.Next()
	if !ok {
		c.finish()
		return
	}

	c.current = &step
	c.presented = sorting.Clone(step.Array)
	c.swapCount = step.SwapCount
	c.listener.StepApplied(step)
	if step.Sound != sorting.SoundNone {
		c.listener.Sound(step.Sound)
	}
	c.pull = c.sched.AfterFunc(c.Delay(), c.runNextStep)
}

func (c *Controller) finish() {
	c.cursor = nil
	c.current = nil
	c.presented = sorting.WithState(c.presented, sorting.Sorted)
	c.log.Debug("sort finished", zap.Int("swaps", c.swapCount))
	c.setState(Sorted)
	c.startFlourish()
}

func (c *Controller) cancelPull() {
	if c.pull != nil {
		c.pull.Stop()
		c.pull = nil
	}
}

func (c *Controller) cancelAll() {
	c.cancelPull()
	c.cancelFlourish()
}

func (c *Controller) setState(s RunState) {
	c.state = s
	c.listener.StateChanged(s)
}
