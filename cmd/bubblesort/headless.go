package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/san-kum/bubblesort/internal/audio"
	"github.com/san-kum/bubblesort/internal/clock"
	"github.com/san-kum/bubblesort/internal/config"
	"github.com/san-kum/bubblesort/internal/metrics"
	"github.com/san-kum/bubblesort/internal/playback"
	"github.com/san-kum/bubblesort/internal/sorting"
	"github.com/san-kum/bubblesort/internal/storage"
	"go.uber.org/zap"
)

// stepLogger logs playback as it happens and keeps the trace for saving.
type stepLogger struct {
	playback.NopListener
	log     *zap.Logger
	metrics []metrics.Metric
	steps   []sorting.Step
	sorted  chan struct{}
}

func newStepLogger(log *zap.Logger) *stepLogger {
	return &stepLogger{
		log:     log,
		metrics: metrics.Default(),
		sorted:  make(chan struct{}),
	}
}

func (l *stepLogger) StepApplied(step sorting.Step) {
	metrics.Observe(l.metrics, step)
	l.steps = append(l.steps, step)
	l.log.Info("step",
		zap.Int("index", len(l.steps)-1),
		zap.Int("line", step.CodeLine),
		zap.Ints("comparing", step.Comparing),
		zap.Int("swaps", step.SwapCount),
		zap.Int("sorted_from", step.SortedIndex),
		zap.Ints("values", sorting.Values(step.Array)))
}

func (l *stepLogger) Sound(s sorting.Sound) {
	l.log.Debug("sound", zap.Stringer("cue", s))
}

func (l *stepLogger) Flourish(index, total int) {
	l.log.Debug("flourish", zap.Int("index", index), zap.Int("total", total))
}

func (l *stepLogger) StateChanged(s playback.RunState) {
	l.log.Info("state", zap.Stringer("state", s))
	if s == playback.Sorted {
		close(l.sorted)
	}
}

// runHeadless plays one full sort on an event loop at the configured speed.
func runHeadless(ctx context.Context, cfg *config.Config, log *zap.Logger, save bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	loop := clock.NewLoop()
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()

	seed := seedOf(cfg)
	steps := newStepLogger(log)
	popts := append(playbackOptions(cfg, seed, log), playback.WithListener(steps))
	if cfg.Sound {
		synth, err := audio.Open(log)
		switch {
		case errors.Is(err, audio.ErrUnavailable):
			log.Debug("sound disabled", zap.Error(err))
		case err != nil:
			return err
		default:
			defer synth.Close()
			popts = append(popts, playback.WithListener(synth))
		}
	}

	var (
		ctrl    *playback.Controller
		initial []sorting.Element
		err     error
	)
	if doErr := loop.Do(ctx, func() {
		ctrl, err = playback.New(loop, popts...)
		if err != nil {
			return
		}
		initial = ctrl.Initial()
		ctrl.Start()
	}); doErr != nil {
		return doErr
	}
	if err != nil {
		return err
	}
	defer loop.Do(context.Background(), ctrl.Close)

	select {
	case <-steps.sorted:
	case err := <-loopDone:
		return err
	}
	if err := waitFlourish(ctx, loop, ctrl); err != nil {
		return err
	}

	summary := metrics.Snapshot(steps.metrics)
	log.Info("sorted",
		zap.Ints("initial", sorting.Values(initial)),
		zap.Float64("comparisons", summary["comparisons"]),
		zap.Float64("swaps", summary["swaps"]),
		zap.Float64("passes", summary["passes"]),
		zap.Float64("steps", summary["steps"]))

	if !save {
		return nil
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(&storage.Trace{
		Seed:    seed,
		Speed:   cfg.Speed,
		Initial: initial,
		Steps:   steps.steps,
		Metrics: summary,
	})
	if err != nil {
		return err
	}
	fmt.Printf("saved run: %s\n", runID)
	return nil
}

// waitFlourish lets the completion flourish finish so its tones play out.
func waitFlourish(ctx context.Context, loop *clock.Loop, ctrl *playback.Controller) error {
	ticker := time.NewTicker(playback.FlourishInterval)
	defer ticker.Stop()
	for {
		busy := false
		if err := loop.Do(ctx, func() { busy = ctrl.Flourishing() }); err != nil {
			return err
		}
		if !busy {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
