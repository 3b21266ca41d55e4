package viz

import (
	"github.com/san-kum/bubblesort/internal/metrics"
	"github.com/san-kum/bubblesort/internal/playback"
	"github.com/san-kum/bubblesort/internal/sorting"
)

const historyCapacity = 600

// tracker records per-run counters and the swap history plotted in the
// stats panel. It is cleared whenever the controller returns to Idle.
type tracker struct {
	playback.NopListener
	metrics []metrics.Metric
	swaps   []float64
}

func newTracker() *tracker {
	return &tracker{metrics: metrics.Default()}
}

func (t *tracker) StepApplied(step sorting.Step) {
	metrics.Observe(t.metrics, step)
	t.swaps = append(t.swaps, float64(step.SwapCount))
	if len(t.swaps) > historyCapacity {
		t.swaps = t.swaps[len(t.swaps)-historyCapacity:]
	}
}

func (t *tracker) StateChanged(s playback.RunState) {
	if s == playback.Idle {
		metrics.Reset(t.metrics)
		t.swaps = t.swaps[:0]
	}
}

func (t *tracker) snapshot() map[string]float64 { return metrics.Snapshot(t.metrics) }
