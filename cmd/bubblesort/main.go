package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bubblesort/internal/audio"
	"github.com/san-kum/bubblesort/internal/config"
	"github.com/san-kum/bubblesort/internal/experiment"
	"github.com/san-kum/bubblesort/internal/logging"
	"github.com/san-kum/bubblesort/internal/metrics"
	"github.com/san-kum/bubblesort/internal/playback"
	"github.com/san-kum/bubblesort/internal/sorting"
	"github.com/san-kum/bubblesort/internal/storage"
	"github.com/san-kum/bubblesort/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	opts      settings
	saveRun   bool
	jsonOut   bool
	plotRows  = 10
	sweepFile string
	sweepCfg  = experiment.DefaultSweep()
)

// main registers the commands and runs the interactive visualizer when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "bubblesort",
		Short:        "step-by-step bubble sort visualizer",
		SilenceUsage: true,
		RunE:         runTUI,
	}
	opts.register(rootCmd.PersistentFlags())

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "play a sort without the TUI, logging every step",
		Args:  cobra.NoArgs,
		RunE:  runPlayback,
	}
	runCmd.Flags().BoolVar(&saveRun, "save", false, "store the trace in the data directory")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "produce the full step trace and store it",
		Args:  cobra.NoArgs,
		RunE:  traceRun,
	}
	traceCmd.Flags().BoolVar(&jsonOut, "json", false, "write the trace to stdout as JSON instead")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot swap count and sorted region of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotRows, "height", 10, "plot height")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "measure swaps and comparisons over many random arrays",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepFile, "file", "", "sweep definition (yaml)")
	sweepCmd.Flags().IntVar(&sweepCfg.MinSize, "min", sweepCfg.MinSize, "smallest array size")
	sweepCmd.Flags().IntVar(&sweepCfg.MaxSize, "max", sweepCfg.MaxSize, "largest array size")
	sweepCmd.Flags().IntVar(&sweepCfg.Trials, "trials", sweepCfg.Trials, "trials per size")
	sweepCmd.Flags().IntVar(&sweepCfg.Workers, "workers", 0, "concurrent trials (0 = GOMAXPROCS)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tSPEED\tVALUES")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				values := "random"
				if len(p.Values) > 0 {
					values = fmt.Sprint(p.Values)
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, p.ArraySize, p.Speed, values)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, traceCmd, listCmd, plotCmd, exportCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := opts.resolve(cmd.Flags())
	if err != nil {
		return err
	}

	// Console logs would tear the alt screen, so the TUI only logs to a file.
	log := zap.NewNop()
	if cfg.LogFile != "" {
		if log, err = logging.New(cfg.LogLevel, cfg.LogFile); err != nil {
			return err
		}
		defer log.Sync()
	}

	popts := playbackOptions(cfg, seedOf(cfg), log)
	if cfg.Sound {
		synth, err := audio.Open(log)
		switch {
		case errors.Is(err, audio.ErrUnavailable):
			log.Info("sound disabled", zap.Error(err))
		case err != nil:
			return err
		default:
			defer synth.Close()
			popts = append(popts, playback.WithListener(synth))
		}
	}

	return viz.Run(cfg.Theme, popts...)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.LogFile)
}

func runPlayback(cmd *cobra.Command, args []string) error {
	cfg, err := opts.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	return runHeadless(cmd.Context(), cfg, log, saveRun)
}

func traceRun(cmd *cobra.Command, args []string) error {
	cfg, err := opts.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	seed := seedOf(cfg)
	initial := initialArray(cfg, sorting.NewGenerator(seed))
	tr := &storage.Trace{
		Seed:    seed,
		Speed:   cfg.Speed,
		Initial: initial,
		Steps:   sorting.Produce(initial).Collect(),
		Metrics: metrics.Collect(sorting.Produce(initial)),
	}
	log.Debug("trace produced",
		zap.Int64("seed", seed),
		zap.Ints("initial", sorting.Values(initial)),
		zap.Int("steps", len(tr.Steps)))

	if jsonOut {
		return storage.WriteJSON(os.Stdout, tr)
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(tr)
	if err != nil {
		return err
	}
	fmt.Printf("saved run: %s (%d steps, %.0f swaps)\n", runID, len(tr.Steps), tr.Metrics["swaps"])
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := opts.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tSEED\tSTEPS\tSWAPS\tPASSES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.0f\t%.0f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Seed,
			run.Steps,
			run.Metrics["swaps"],
			run.Metrics["passes"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := opts.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}
	if len(steps) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("initial: %v\n", meta.Initial)
	fmt.Printf("steps: %d\n\n", len(steps))

	swaps := make([]float64, len(steps))
	settled := make([]float64, len(steps))
	for i, step := range steps {
		swaps[i] = float64(step.SwapCount)
		if step.SortedIndex != sorting.NoBoundary {
			settled[i] = float64(len(step.Array) - step.SortedIndex)
		}
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{swaps, "swap count"},
		{settled, "elements in final position"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(plotRows),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := opts.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}

	gen := sorting.NewGenerator(meta.Seed)
	return storage.WriteJSON(os.Stdout, &storage.Trace{
		Seed:    meta.Seed,
		Speed:   meta.Speed,
		Initial: gen.FromValues(meta.Initial),
		Steps:   steps,
		Metrics: meta.Metrics,
	})
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := opts.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	sw := sweepCfg
	if sweepFile != "" {
		if sw, err = experiment.LoadSweep(sweepFile); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("seed") || sw.Seed == 0 {
		sw.Seed = seedOf(cfg)
	}

	log.Info("sweep started",
		zap.String("name", sw.Name),
		zap.Int("min_size", sw.MinSize),
		zap.Int("max_size", sw.MaxSize),
		zap.Int("trials", sw.Trials),
		zap.Int64("seed", sw.Seed))

	stats, err := sw.Run(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tTRIALS\tSWAPS\tMIN\tMAX\tCOMPARISONS\tPASSES\tSTEPS")
	means := make([]float64, len(stats))
	for i, st := range stats {
		means[i] = st.MeanSwaps
		fmt.Fprintf(w, "%d\t%d\t%.1f\t%.0f\t%.0f\t%.1f\t%.2f\t%.1f\n",
			st.Size, st.Trials, st.MeanSwaps, st.MinSwaps, st.MaxSwaps,
			st.MeanComparison, st.MeanPasses, st.MeanSteps)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(means) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(means,
			asciigraph.Height(plotRows),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("mean swaps, size %d..%d", sw.MinSize, sw.MaxSize)),
		))
	}
	return nil
}
