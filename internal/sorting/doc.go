// Package sorting instruments bubble sort as a sequence of discrete steps.
//
// The package has no side effects: [Produce] copies the caller's array and
// returns a [Sequence] that yields one [Step] per call to [Sequence.Next].
// Each step carries a full snapshot of the array plus the metadata a
// renderer needs to animate it:
//
//   - [Step.Comparing]: the adjacent pair under inspection
//   - [Step.CodeLine]: the line of [Pseudocode] being executed
//   - [Step.SwapCount]: swaps performed so far
//   - [Step.Sound]: the audio cue attached to the step, if any
//
// # Example
//
//	gen := sorting.NewGenerator(42)
//	seq := sorting.Produce(gen.Array(10))
//	for step := range seq.All() {
//		fmt.Println(step.CodeLine, sorting.Values(step.Array))
//	}
//
// A Sequence is single-use. To replay a sort, call Produce again.
package sorting
