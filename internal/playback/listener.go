package playback

import "github.com/san-kum/bubblesort/internal/sorting"

// Listener receives the controller's outbound notifications. Callbacks run
// on the scheduler's goroutine and must not mutate the values they receive.
type Listener interface {
	// StepApplied is called after a step's snapshot became the presented
	// array.
	StepApplied(step sorting.Step)
	// Sound is called for steps tagged with an audio cue.
	Sound(s sorting.Sound)
	// Flourish is called for each element highlighted by the completion
	// flourish.
	Flourish(index, total int)
	// StateChanged is called after every transition, and after Reset or a
	// new array even when the state stays Idle.
	StateChanged(s RunState)
}

// NopListener ignores every notification. Embed it to implement only part
// of Listener.
type NopListener struct{}

func (NopListener) StepApplied(sorting.Step) {}
func (NopListener) Sound(sorting.Sound)      {}
func (NopListener) Flourish(int, int)        {}
func (NopListener) StateChanged(RunState)    {}

type multiListener []Listener

func (m multiListener) StepApplied(step sorting.Step) {
	for _, l := range m {
		l.StepApplied(step)
	}
}

func (m multiListener) Sound(s sorting.Sound) {
	for _, l := range m {
		l.Sound(s)
	}
}

func (m multiListener) Flourish(index, total int) {
	for _, l := range m {
		l.Flourish(index, total)
	}
}

func (m multiListener) StateChanged(s RunState) {
	for _, l := range m {
		l.StateChanged(s)
	}
}
