// Package experiment measures bubble sort across many random arrays.
//
// A [Sweep] runs a Monte Carlo batch of trials for every array size in a
// range. Trials run in parallel, each on its own seeded generator, so a
// sweep with a fixed seed is reproducible regardless of scheduling.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/san-kum/bubblesort/internal/metrics"
	"github.com/san-kum/bubblesort/internal/sorting"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var (
	ErrSizeRange = errors.New("experiment: invalid size range")
	ErrTrials    = errors.New("experiment: trials must be positive")
	ErrMismatch  = errors.New("experiment: swap count differs from inversion count")
)

// Sweep describes a batch of trials per array size.
type Sweep struct {
	Name    string `yaml:"name"`
	MinSize int    `yaml:"min_size"`
	MaxSize int    `yaml:"max_size"`
	Trials  int    `yaml:"trials"`
	Seed    int64  `yaml:"seed"`
	// Workers caps concurrent trials; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

func DefaultSweep() *Sweep {
	return &Sweep{
		Name:    "default",
		MinSize: 5,
		MaxSize: 25,
		Trials:  100,
		Seed:    1,
	}
}

// LoadSweep reads a sweep from a YAML file on top of the defaults.
func LoadSweep(path string) (*Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sw := DefaultSweep()
	if err := yaml.Unmarshal(data, sw); err != nil {
		return nil, fmt.Errorf("experiment: parse %s: %w", path, err)
	}
	return sw, nil
}

func (s *Sweep) Validate() error {
	if s.MinSize < 0 || s.MaxSize < s.MinSize {
		return fmt.Errorf("%w: %d..%d", ErrSizeRange, s.MinSize, s.MaxSize)
	}
	if s.Trials <= 0 {
		return fmt.Errorf("%w: %d", ErrTrials, s.Trials)
	}
	return nil
}

// Trial is the outcome of sorting one random array.
type Trial struct {
	Size       int
	Seed       int64
	Inversions int
	Metrics    map[string]float64
}

// SizeStats summarizes the trials of one array size.
type SizeStats struct {
	Size           int
	Trials         int
	MeanSwaps      float64
	MinSwaps       float64
	MaxSwaps       float64
	MeanComparison float64
	MeanPasses     float64
	MeanSteps      float64
}

// Run executes every trial and returns per-size statistics in size order.
// It fails if any trial's swap count is not its inversion count.
func (s *Sweep) Run(ctx context.Context) ([]SizeStats, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	sizes := s.MaxSize - s.MinSize + 1
	trials := make([]Trial, sizes*s.Trials)

	g, ctx := errgroup.WithContext(ctx)
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for i := range trials {
		idx := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			size := s.MinSize + idx/s.Trials
			t, err := RunTrial(size, s.Seed+int64(idx))
			trials[idx] = t
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := make([]SizeStats, sizes)
	for k := range stats {
		stats[k] = summarize(s.MinSize+k, trials[k*s.Trials:(k+1)*s.Trials])
	}
	return stats, nil
}

// RunTrial sorts one array of the given size drawn from seed.
func RunTrial(size int, seed int64) (Trial, error) {
	arr := sorting.NewGenerator(seed).Array(size)
	t := Trial{
		Size:       size,
		Seed:       seed,
		Inversions: sorting.Inversions(sorting.Values(arr)),
		Metrics:    metrics.Collect(sorting.Produce(arr)),
	}
	if int(t.Metrics["swaps"]) != t.Inversions {
		return t, fmt.Errorf("%w: size %d seed %d: %v swaps, %d inversions",
			ErrMismatch, size, seed, t.Metrics["swaps"], t.Inversions)
	}
	return t, nil
}

func summarize(size int, trials []Trial) SizeStats {
	st := SizeStats{Size: size, Trials: len(trials)}
	if len(trials) == 0 {
		return st
	}
	st.MinSwaps = trials[0].Metrics["swaps"]
	st.MaxSwaps = st.MinSwaps
	for _, t := range trials {
		swaps := t.Metrics["swaps"]
		st.MeanSwaps += swaps
		st.MeanComparison += t.Metrics["comparisons"]
		st.MeanPasses += t.Metrics["passes"]
		st.MeanSteps += t.Metrics["steps"]
		if swaps < st.MinSwaps {
			st.MinSwaps = swaps
		}
		if swaps > st.MaxSwaps {
			st.MaxSwaps = swaps
		}
	}
	n := float64(len(trials))
	st.MeanSwaps /= n
	st.MeanComparison /= n
	st.MeanPasses /= n
	st.MeanSteps /= n
	return st
}
