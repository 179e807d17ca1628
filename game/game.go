// Package game runs snake populations: World holds the simulation and
// evolution state, Game drives it headless or in a raylib window.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/snakes/camera"
	"github.com/pthm-cable/snakes/config"
	"github.com/pthm-cable/snakes/renderer"
	"github.com/pthm-cable/snakes/telemetry"
	"github.com/pthm-cable/snakes/ui"
)

// historyLimit caps the per-generation scores kept for the HUD chart.
const historyLimit = 500

// Options configures a Game.
type Options struct {
	Seed           int64 // 0 = time based
	Headless       bool
	LogStats       bool
	OutputDir      string // CSV and config snapshot; empty disables output
	StepsPerUpdate int    // ticks per Update/UpdateHeadless call
	SpeedMode      bool   // start in speed mode

	// Config overrides the global configuration when set.
	Config *config.Config

	// StatsCallback is invoked at the end of every generation.
	StatsCallback func(telemetry.GenerationStats)
}

// Game drives a World and its telemetry, and in graphical mode its window.
type Game struct {
	cfg   *config.Config
	world *World
	seed  int64

	perf          *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.GenerationStats)

	headless       bool
	stepsPerUpdate int
	speedMode      bool
	paused         bool
	finished       bool
	tick           int64

	bestHistory []float64
	avgHistory  []float64

	// Graphical mode only
	grid          *camera.Grid
	boardRenderer *renderer.BoardRenderer
	hud           *ui.HUD
	controls      *ui.Controls
	screenWidth   float32
	screenHeight  float32
	hoverSlot     int
}

// NewGameWithOptions creates a game from opts.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:            cfg,
		seed:           seed,
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		speedMode:      opts.SpeedMode,
		hoverSlot:      -1,
	}

	wopts, err := WorldOptionsFromConfig(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	wopts.OnGeneration = g.handleGeneration
	wopts.Perf = g.perf

	g.world, err = NewWorld(wopts)
	if err != nil {
		return nil, err
	}

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if dir := g.outputManager.Dir(); dir != "" {
		slog.Info("writing output", "dir", dir)
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}
	if err := g.outputManager.WriteRunInfo(telemetry.NewRunInfo(cfg, seed)); err != nil {
		slog.Error("failed to write run info", "error", err)
	}

	if !g.headless {
		g.screenWidth = float32(cfg.Screen.Width)
		g.screenHeight = float32(cfg.Screen.Height)
		g.grid = camera.NewGrid(g.world.PopulationSize(), g.world.BoardSize(), 0, 0,
			camera.Fit(g.screenWidth, g.screenHeight, panelWidth))
		g.boardRenderer = renderer.NewBoardRenderer()
		g.hud = ui.NewHUD()
		g.controls = ui.NewControls()
	}

	return g, nil
}

// UpdateHeadless runs StepsPerUpdate ticks without touching raylib.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate && !g.finished; i++ {
		g.step()
	}
}

// Update handles input and runs this frame's ticks. Speed mode runs
// speed_mode.ticks_per_frame ticks instead of StepsPerUpdate.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	steps := g.stepsPerUpdate
	if g.speedMode {
		steps = g.cfg.SpeedMode.TicksPerFrame
	}
	for i := 0; i < steps && !g.finished; i++ {
		g.step()
	}
}

// step advances the world one tick. A replay finishes when its snake dies.
func (g *Game) step() {
	if g.finished {
		return
	}

	g.world.Step()
	g.tick++

	if g.world.Replaying() && !g.world.AnyAlive() {
		g.finished = true
		if b, ok := g.world.Best(); ok {
			slog.Info("replay finished",
				"score", g.world.BestScore(),
				"recorded_score", b.Score,
				"ticks", g.world.Ticks(),
			)
		}
	}
}

// ReplayBest switches to replaying the best snake recorded so far.
func (g *Game) ReplayBest() error {
	if err := g.world.PrepareReplay(); err != nil {
		return err
	}
	g.speedMode = false
	g.finished = false
	if g.grid != nil {
		g.grid.SetSlots(g.world.PopulationSize())
	}
	return nil
}

// SetSpeedMode switches speed mode on or off.
func (g *Game) SetSpeedMode(on bool) {
	g.speedMode = on
}

// SpeedMode reports whether speed mode is active.
func (g *Game) SpeedMode() bool {
	return g.speedMode
}

// World returns the simulated world.
func (g *Game) World() *World {
	return g.world
}

// Tick returns the number of ticks run since the game started.
func (g *Game) Tick() int64 {
	return g.tick
}

// Generation returns the number of completed generations.
func (g *Game) Generation() int {
	return g.world.Generation()
}

// Finished reports whether a replay has ended.
func (g *Game) Finished() bool {
	return g.finished
}

// Seed returns the seed of the game's random stream.
func (g *Game) Seed() int64 {
	return g.seed
}

// Perf returns the tick performance collector.
func (g *Game) Perf() *telemetry.PerfCollector {
	return g.perf
}

// Unload flushes and closes output files.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
