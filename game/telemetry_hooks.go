package game

import (
	"log/slog"

	"github.com/pthm-cable/snakes/telemetry"
)

// handleGeneration is the world's generation callback: it records history,
// forwards stats, logs and writes CSV rows.
func (g *Game) handleGeneration(stats telemetry.GenerationStats) {
	g.bestHistory = appendCapped(g.bestHistory, float64(stats.BestScore))
	g.avgHistory = appendCapped(g.avgHistory, stats.AvgScore)

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
	}

	if err := g.outputManager.WriteGeneration(stats); err != nil {
		slog.Error("failed to write generation", "error", err)
	}

	if every := g.cfg.Telemetry.PerfLogInterval; every > 0 && stats.Generation%every == 0 {
		perfStats := g.perf.Stats()
		if g.logStats {
			perfStats.LogStats()
		}
		if err := g.outputManager.WritePerf(perfStats, stats.Generation); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	// Speed mode runs a fixed number of generations, then drops back to
	// normal speed.
	if g.speedMode && g.cfg.SpeedMode.Generations > 0 && stats.Generation >= g.cfg.SpeedMode.Generations {
		g.speedMode = false
		slog.Info("speed mode finished", "generation", stats.Generation)
	}
}

func appendCapped(values []float64, v float64) []float64 {
	values = append(values, v)
	if len(values) > historyLimit {
		values = values[len(values)-historyLimit:]
	}
	return values
}
