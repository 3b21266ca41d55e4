package sorting

import "iter"

// resume points between two emitted steps
type phase uint8

const (
	phaseStart phase = iota
	phaseAfterInitial
	phaseAfterPassStart
	phaseAfterCompare
	phaseAfterDecide
	phaseAfterSwapping
	phaseAfterSwapped
	phaseAfterPassEnd
	phaseAfterNoSwap
	phaseAfterShortCircuit
	phaseDone
)

// Sequence is a one-shot iterator over the steps of a bubble sort. The loop
// counters live in the struct so each call to Next resumes exactly where the
// previous call stopped.
type Sequence struct {
	arr       []Element
	n         int
	i, j      int
	swapped   bool
	swapCount int
	phase     phase
}

// Produce returns the step sequence for sorting arr. arr is copied, so later
// changes by the caller do not affect the sequence.
func Produce(arr []Element) *Sequence {
	c := Clone(arr)
	return &Sequence{arr: c, n: len(c)}
}

// Done reports whether the sequence is exhausted.
func (s *Sequence) Done() bool { return s.phase == phaseDone }

// Next returns the next step. The second result is false once the sequence
// is exhausted, and stays false.
func (s *Sequence) Next() (Step, bool) {
	switch s.phase {
	case phaseStart:
		s.phase = phaseAfterInitial
		return s.emit(nil, false, NoBoundary, LineStart, SoundNone), true

	case phaseAfterInitial:
		s.i = 0
		return s.outer(), true

	case phaseAfterPassStart:
		s.swapped = false
		s.j = 0
		return s.inner(), true

	case phaseAfterCompare:
		s.arr[s.j].State = Comparing
		s.arr[s.j+1].State = Comparing
		if s.arr[s.j].Value > s.arr[s.j+1].Value {
			s.phase = phaseAfterDecide
			return s.emit(s.pair(), false, s.boundary(), LineCompare, SoundNone), true
		}
		s.endComparison()
		return s.inner(), true

	case phaseAfterDecide:
		s.swapped = true
		s.swapCount++
		s.arr[s.j].State = Swapping
		s.arr[s.j+1].State = Swapping
		s.phase = phaseAfterSwapping
		return s.emit(s.pair(), true, s.boundary(), LineSwap, SoundNone), true

	case phaseAfterSwapping:
		s.arr[s.j], s.arr[s.j+1] = s.arr[s.j+1], s.arr[s.j]
		s.phase = phaseAfterSwapped
		return s.emit(s.pair(), true, s.boundary(), LineSwap, SoundSwap), true

	case phaseAfterSwapped:
		s.endComparison()
		return s.inner(), true

	case phaseAfterPassEnd:
		if !s.swapped {
			s.phase = phaseAfterNoSwap
			return s.emit(nil, false, s.boundary(), LinePassEnd, SoundNone), true
		}
		s.i++
		return s.outer(), true

	case phaseAfterNoSwap:
		for k := 0; k < s.n-s.i; k++ {
			s.arr[k].State = Sorted
		}
		s.phase = phaseAfterShortCircuit
		return s.emit(nil, false, 0, LineShortCircuit, SoundNone), true

	case phaseAfterShortCircuit:
		return s.final(), true
	}
	return Step{}, false
}

// All adapts the sequence for range-over-func. Breaking out of the loop
// leaves the sequence positioned after the last yielded step.
func (s *Sequence) All() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for {
			step, ok := s.Next()
			if !ok || !yield(step) {
				return
			}
		}
	}
}

// Collect drains the sequence.
func (s *Sequence) Collect() []Step {
	var steps []Step
	for step := range s.All() {
		steps = append(steps, step)
	}
	return steps
}

// outer is the head of the pass loop.
func (s *Sequence) outer() Step {
	if s.i < s.n-1 {
		s.phase = phaseAfterPassStart
		return s.emit(nil, false, s.boundary(), LineOuterLoop, SoundNone)
	}
	return s.final()
}

// inner is the head of the comparison loop.
func (s *Sequence) inner() Step {
	if s.j < s.n-s.i-1 {
		s.phase = phaseAfterCompare
		return s.emit(s.pair(), false, s.boundary(), LineInnerLoop, SoundNone)
	}
	s.arr[s.n-s.i-1].State = Sorted
	s.phase = phaseAfterPassEnd
	return s.emit(nil, false, s.boundary(), LinePassEnd, SoundPassComplete)
}

func (s *Sequence) final() Step {
	for k := range s.arr {
		s.arr[k].State = Sorted
	}
	s.phase = phaseDone
	return s.emit(nil, false, 0, LineDone, SoundNone)
}

// endComparison clears the pair's highlight. The right element keeps its
// state when it is the last of the unsorted region, which is marked Sorted
// right after the inner loop.
func (s *Sequence) endComparison() {
	s.arr[s.j].State = Default
	if s.j+1 < s.n-s.i-1 {
		s.arr[s.j+1].State = Default
	}
	s.j++
}

func (s *Sequence) boundary() int { return s.n - s.i }

func (s *Sequence) pair() []int { return []int{s.j, s.j + 1} }

func (s *Sequence) emit(comparing []int, swapped bool, sortedIndex, line int, sound Sound) Step {
	return Step{
		Array:       Clone(s.arr),
		Comparing:   comparing,
		Swapped:     swapped,
		SortedIndex: sortedIndex,
		CodeLine:    line,
		SwapCount:   s.swapCount,
		Sound:       sound,
	}
}
