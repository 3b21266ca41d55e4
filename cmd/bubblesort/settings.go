package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/bubblesort/internal/config"
	"github.com/san-kum/bubblesort/internal/playback"
	"github.com/san-kum/bubblesort/internal/sorting"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type settings struct {
	configFile string
	preset     string
	dataDir    string
	size       int
	speed      int
	seed       int64
	values     string
	sound      bool
	logLevel   string
	logFile    string
	theme      string
}

func (s *settings) register(fs *pflag.FlagSet) {
	fs.StringVar(&s.configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&s.preset, "preset", "", "use preset configuration")
	fs.StringVar(&s.dataDir, "data", config.DefaultDataDir, "data directory")
	fs.IntVar(&s.size, "size", config.DefaultArraySize, "array size (5-25)")
	fs.IntVar(&s.speed, "speed", config.DefaultSpeed, "playback speed (1-5)")
	fs.Int64Var(&s.seed, "seed", 0, "random seed (0 seeds from the clock)")
	fs.StringVar(&s.values, "values", "", "comma separated initial values")
	fs.BoolVar(&s.sound, "sound", true, "play tones; a no-op unless built with -tags portaudio")
	fs.StringVar(&s.logLevel, "log-level", config.DefaultLogLevel, "log level")
	fs.StringVar(&s.logFile, "log-file", "", "write JSON logs to this file")
	fs.StringVar(&s.theme, "theme", config.DefaultTheme, "color theme")
}

// resolve layers defaults, the preset, the config file and explicitly set
// flags, in that order.
func (s *settings) resolve(fs *pflag.FlagSet) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.preset != "" {
		cfg = config.GetPreset(s.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (have %s)", s.preset, strings.Join(config.ListPresets(), ", "))
		}
	}
	if s.configFile != "" {
		loaded, err := config.LoadOver(s.configFile, cfg)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if fs.Changed("size") {
		cfg.ArraySize = s.size
		cfg.Values = nil
	}
	if fs.Changed("speed") {
		cfg.Speed = s.speed
	}
	if fs.Changed("seed") {
		cfg.Seed = s.seed
	}
	if fs.Changed("values") {
		values, err := parseValues(s.values)
		if err != nil {
			return nil, err
		}
		cfg.Values = values
		cfg.ArraySize = len(values)
	}
	if fs.Changed("sound") {
		cfg.Sound = s.sound
	}
	if fs.Changed("data") {
		cfg.DataDir = s.dataDir
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = s.logLevel
	}
	if fs.Changed("log-file") {
		cfg.LogFile = s.logFile
	}
	if fs.Changed("theme") {
		cfg.Theme = s.theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseValues(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", f, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func seedOf(cfg *config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func initialArray(cfg *config.Config, gen *sorting.Generator) []sorting.Element {
	if len(cfg.Values) > 0 {
		return gen.FromValues(cfg.Values)
	}
	return gen.Array(cfg.ArraySize)
}

func playbackOptions(cfg *config.Config, seed int64, log *zap.Logger) []playback.Option {
	gen := sorting.NewGenerator(seed)
	return []playback.Option{
		playback.WithGenerator(gen),
		playback.WithLogger(log),
		playback.WithSpeed(cfg.Speed),
		playback.WithInitialArray(initialArray(cfg, gen)),
	}
}
