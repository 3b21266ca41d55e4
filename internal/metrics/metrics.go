package metrics

import "github.com/san-kum/bubblesort/internal/sorting"

// Metric accumulates a figure over the steps of one sort.
type Metric interface {
	Name() string
	Observe(step sorting.Step)
	Value() float64
	Reset()
}

type Steps struct{ count int }

func NewSteps() *Steps { return &Steps{} }

func (s *Steps) Name() string              { return "steps" }
func (s *Steps) Observe(step sorting.Step) { s.count++ }
func (s *Steps) Value() float64            { return float64(s.count) }
func (s *Steps) Reset()                    { s.count = 0 }

// Comparisons counts adjacent pairs inspected.
type Comparisons struct{ count int }

func NewComparisons() *Comparisons { return &Comparisons{} }

func (c *Comparisons) Name() string { return "comparisons" }

func (c *Comparisons) Observe(step sorting.Step) {
	if step.CodeLine == sorting.LineInnerLoop {
		c.count++
	}
}

func (c *Comparisons) Value() float64 { return float64(c.count) }
func (c *Comparisons) Reset()         { c.count = 0 }

type Swaps struct{ count int }

func NewSwaps() *Swaps { return &Swaps{} }

func (s *Swaps) Name() string { return "swaps" }

func (s *Swaps) Observe(step sorting.Step) {
	if step.SwapCount > s.count {
		s.count = step.SwapCount
	}
}

func (s *Swaps) Value() float64 { return float64(s.count) }
func (s *Swaps) Reset()         { s.count = 0 }

// Passes counts outer-loop iterations started.
type Passes struct{ count int }

func NewPasses() *Passes { return &Passes{} }

func (p *Passes) Name() string { return "passes" }

func (p *Passes) Observe(step sorting.Step) {
	if step.CodeLine == sorting.LineOuterLoop {
		p.count++
	}
}

func (p *Passes) Value() float64 { return float64(p.count) }
func (p *Passes) Reset()         { p.count = 0 }

func Default() []Metric {
	return []Metric{NewSteps(), NewComparisons(), NewSwaps(), NewPasses()}
}

// Observe feeds step to every metric.
func Observe(ms []Metric, step sorting.Step) {
	for _, m := range ms {
		m.Observe(step)
	}
}

func Reset(ms []Metric) {
	for _, m := range ms {
		m.Reset()
	}
}

func Snapshot(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Collect drains seq through fresh default metrics.
func Collect(seq *sorting.Sequence) map[string]float64 {
	ms := Default()
	for step := range seq.All() {
		Observe(ms, step)
	}
	return Snapshot(ms)
}
