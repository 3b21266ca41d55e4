package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultArraySize = 10
	DefaultSpeed     = 3
	DefaultDataDir   = ".bubblesort"
	DefaultLogLevel  = "info"
	DefaultTheme     = "ocean"

	MinArraySize = 5
	MaxArraySize = 25
	MinSpeed     = 1
	MaxSpeed     = 5
)

var (
	ErrArraySize = errors.New("config: array_size out of bounds")
	ErrSpeed     = errors.New("config: speed out of bounds")
)

type Config struct {
	ArraySize int    `yaml:"array_size"`
	Speed     int    `yaml:"speed"`
	// Seed fixes the array generator; 0 means seed from the clock.
	Seed      int64  `yaml:"seed"`
	Sound     bool   `yaml:"sound"`
	DataDir   string `yaml:"data_dir"`
	LogLevel  string `yaml:"log_level"`
	LogFile   string `yaml:"log_file"`
	Theme     string `yaml:"theme"`
	// Values, when set, replaces the random initial array.
	Values    []int  `yaml:"values,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		ArraySize: DefaultArraySize,
		Speed:     DefaultSpeed,
		Sound:     true,
		DataDir:   DefaultDataDir,
		LogLevel:  DefaultLogLevel,
		Theme:     DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base; keys missing from the file
// keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	cfg.Values = append([]int(nil), base.Values...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	size := c.ArraySize
	if len(c.Values) > 0 {
		size = len(c.Values)
	}
	if size < MinArraySize || size > MaxArraySize {
		return fmt.Errorf("%w: %d", ErrArraySize, size)
	}
	if c.Speed < MinSpeed || c.Speed > MaxSpeed {
		return fmt.Errorf("%w: %d", ErrSpeed, c.Speed)
	}
	return nil
}
