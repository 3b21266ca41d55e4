package sorting

// Sound tags a step that should trigger an audio cue.
type Sound uint8

const (
	SoundNone Sound = iota
	SoundSwap
	SoundPassComplete
)

func (s Sound) String() string {
	switch s {
	case SoundSwap:
		return "swap"
	case SoundPassComplete:
		return "passComplete"
	default:
		return ""
	}
}

// NoBoundary is the SortedIndex of steps taken before the first pass.
const NoBoundary = -1

// Step is one observable instant of the sort. Array is owned by the step and
// is never shared with another step.
type Step struct {
	Array []Element
	// Comparing is nil or the adjacent pair {j, j+1}.
	Comparing []int
	Swapped   bool
	// SortedIndex is the index from which elements are in final position,
	// or NoBoundary.
	SortedIndex int
	CodeLine    int
	SwapCount   int
	Sound       Sound
}

// Pseudocode is the listing that Step.CodeLine indexes into (1-based).
var Pseudocode = []string{
	"function bubbleSort(arr) {",
	"  for (let i = 0; i < arr.length - 1; i++) {",
	"    let swapped = false;",
	"    for (let j = 0; j < arr.length - i - 1; j++) {",
	"      if (arr[j] > arr[j + 1]) {",
	"        [arr[j], arr[j+1]] = [arr[j+1], arr[j]];",
	"        swapped = true;",
	"      }",
	"    }",
	"    if (!swapped) break;",
	"  }",
	"  return arr;",
	"}",
}

// Code lines emitted by the sequence.
const (
	LineStart        = 1
	LineOuterLoop    = 2
	LineInnerLoop    = 4
	LineCompare      = 5
	LineSwap         = 6
	LinePassEnd      = 9
	LineShortCircuit = 10
	LineReturn       = 12
	LineDone         = 13
)
