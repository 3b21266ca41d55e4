package sorting

import "math/rand"

// ElementState describes how an element is drawn at a given step.
type ElementState uint8

const (
	Default ElementState = iota
	Comparing
	Swapping
	Sorted
	FinalHighlight
)

func (s ElementState) String() string {
	switch s {
	case Default:
		return "default"
	case Comparing:
		return "comparing"
	case Swapping:
		return "swapping"
	case Sorted:
		return "sorted"
	case FinalHighlight:
		return "final"
	default:
		return "unknown"
	}
}

// Element is one value in the array. ID is stable for the element's lifetime
// and travels with it when it is swapped.
type Element struct {
	ID    int
	Value int
	State ElementState
}

const (
	ValueMin = 10
	ValueMax = 99
)

// Clone returns a deep copy of arr.
func Clone(arr []Element) []Element {
	c := make([]Element, len(arr))
	copy(c, arr)
	return c
}

// WithState returns a copy of arr with every element set to st.
func WithState(arr []Element, st ElementState) []Element {
	c := Clone(arr)
	for i := range c {
		c[i].State = st
	}
	return c
}

func Values(arr []Element) []int {
	v := make([]int, len(arr))
	for i, e := range arr {
		v[i] = e.Value
	}
	return v
}

func IDs(arr []Element) []int {
	ids := make([]int, len(arr))
	for i, e := range arr {
		ids[i] = e.ID
	}
	return ids
}

// Inversions counts pairs i<j with values[i] > values[j]. Bubble sort
// performs exactly this many swaps.
func Inversions(values []int) int {
	n := 0
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			if values[i] > values[j] {
				n++
			}
		}
	}
	return n
}

// Generator creates arrays with fresh element ids. It owns its random
// source and id counter, so two generators with the same seed produce
// identical arrays.
type Generator struct {
	rng    *rand.Rand
	nextID int
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Array returns size elements with random values in [ValueMin, ValueMax].
func (g *Generator) Array(size int) []Element {
	if size < 0 {
		size = 0
	}
	arr := make([]Element, size)
	for i := range arr {
		arr[i] = Element{
			ID:    g.id(),
			Value: ValueMin + g.rng.Intn(ValueMax-ValueMin+1),
		}
	}
	return arr
}

// FromValues wraps values in Default elements with fresh ids.
func (g *Generator) FromValues(values []int) []Element {
	arr := make([]Element, len(values))
	for i, v := range values {
		arr[i] = Element{ID: g.id(), Value: v}
	}
	return arr
}

func (g *Generator) id() int {
	id := g.nextID
	g.nextID++
	return id
}
