package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/snakes/config"
)

// RunInfo describes the parameters of a run. It is written once to run.csv.
type RunInfo struct {
	Seed           int64   `csv:"seed"`
	PopulationSize int     `csv:"population_size"`
	BoardSize      int     `csv:"board_size"`
	MaxMoves       int     `csv:"max_moves"`
	CrossoverRate  float64 `csv:"crossover_rate"`
	MutationRate   float64 `csv:"mutation_rate"`
	Selection      string  `csv:"selection"`
	Crossover      string  `csv:"crossover"`
	HiddenLayers   string  `csv:"hidden_layers"`
}

// NewRunInfo builds the run description from a configuration.
func NewRunInfo(cfg *config.Config, seed int64) RunInfo {
	return RunInfo{
		Seed:           seed,
		PopulationSize: cfg.Population.Size,
		BoardSize:      cfg.World.BoardSize,
		MaxMoves:       cfg.World.MaxMoves,
		CrossoverRate:  cfg.Genetic.CrossoverRate,
		MutationRate:   cfg.Genetic.MutationRate,
		Selection:      cfg.Genetic.Selection,
		Crossover:      cfg.Genetic.Crossover,
		HiddenLayers:   fmt.Sprint(cfg.Neural.HiddenLayers),
	}
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir            string
	generationFile *os.File
	perfFile       *os.File

	// Track if headers have been written
	generationHeaderWritten bool
	perfHeaderWritten       bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "generations.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating generations.csv: %w", err)
	}
	om.generationFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.generationFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteRunInfo writes the single-row run.csv.
func (om *OutputManager) WriteRunInfo(info RunInfo) error {
	if om == nil {
		return nil
	}

	f, err := os.Create(filepath.Join(om.dir, "run.csv"))
	if err != nil {
		return fmt.Errorf("creating run.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal([]RunInfo{info}, f); err != nil {
		return fmt.Errorf("writing run info: %w", err)
	}
	return nil
}

// WriteGeneration appends a generation record to generations.csv.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}

	records := []GenerationStats{stats}

	if !om.generationHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.generationFile); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
		om.generationHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.generationFile); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
	}

	return nil
}

// WritePerf appends a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, generation int) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(generation)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.generationFile != nil {
		if err := om.generationFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		om.generationFile = nil
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		om.perfFile = nil
	}

	return firstErr
}
