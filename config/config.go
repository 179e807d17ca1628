// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Genetic    GeneticConfig    `yaml:"genetic"`
	Neural     NeuralConfig     `yaml:"neural"`
	Food       FoodConfig       `yaml:"food"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	SpeedMode  SpeedModeConfig  `yaml:"speed_mode"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds board parameters.
type WorldConfig struct {
	BoardSize int `yaml:"board_size"` // cells per side
	MaxMoves  int `yaml:"max_moves"`  // moves allowed between meals
}

// PopulationConfig holds population parameters.
type PopulationConfig struct {
	Size int `yaml:"size"`
}

// GeneticConfig holds evolutionary operator parameters.
type GeneticConfig struct {
	CrossoverRate  float64 `yaml:"crossover_rate"`
	MutationRate   float64 `yaml:"mutation_rate"`
	MutationScale  float64 `yaml:"mutation_scale"`  // multiplier on each noise draw
	ClampMutation  bool    `yaml:"clamp_mutation"`  // clamp mutated values to [-clamp_limit, clamp_limit]
	ClampLimit     float64 `yaml:"clamp_limit"`
	Selection      string  `yaml:"selection"`       // score | fitness | tournament
	Crossover      string  `yaml:"crossover"`       // paired | uniform
	TournamentSize int     `yaml:"tournament_size"`
}

// NeuralConfig holds controller network parameters.
type NeuralConfig struct {
	HiddenLayers []int  `yaml:"hidden_layers"` // e.g. [8]; empty = single 8->4 layer
	InitSampler  string `yaml:"init_sampler"`  // irwin_hall | normal
}

// FoodConfig holds food placement parameters.
type FoodConfig struct {
	MaxAttempts int `yaml:"max_attempts"` // random draws before the free-cell scan
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow      int `yaml:"perf_window"`       // ticks averaged by the perf collector
	PerfLogInterval int `yaml:"perf_log_interval"` // generations between perf logs (0 = never)
}

// SpeedModeConfig holds fast-forward parameters.
type SpeedModeConfig struct {
	TicksPerFrame int `yaml:"ticks_per_frame"`
	Generations   int `yaml:"generations"` // stop after this many generations (0 = unlimited)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run.
func (c *Config) Validate() error {
	if c.World.BoardSize <= 0 {
		return fmt.Errorf("%w: world.board_size must be positive, got %d", ErrInvalid, c.World.BoardSize)
	}
	if c.World.MaxMoves <= 0 {
		return fmt.Errorf("%w: world.max_moves must be positive, got %d", ErrInvalid, c.World.MaxMoves)
	}
	if c.Population.Size <= 0 {
		return fmt.Errorf("%w: population.size must be positive, got %d", ErrInvalid, c.Population.Size)
	}
	if c.Genetic.CrossoverRate < 0 || c.Genetic.CrossoverRate > 1 {
		return fmt.Errorf("%w: genetic.crossover_rate must be in [0,1], got %v", ErrInvalid, c.Genetic.CrossoverRate)
	}
	if c.Genetic.MutationRate < 0 || c.Genetic.MutationRate > 1 {
		return fmt.Errorf("%w: genetic.mutation_rate must be in [0,1], got %v", ErrInvalid, c.Genetic.MutationRate)
	}
	if c.Genetic.ClampMutation && c.Genetic.ClampLimit <= 0 {
		return fmt.Errorf("%w: genetic.clamp_limit must be positive when clamping, got %v", ErrInvalid, c.Genetic.ClampLimit)
	}
	for _, h := range c.Neural.HiddenLayers {
		if h <= 0 {
			return fmt.Errorf("%w: neural.hidden_layers entries must be positive, got %d", ErrInvalid, h)
		}
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Neural.HiddenLayers = append([]int(nil), c.Neural.HiddenLayers...)
	return &clone
}
