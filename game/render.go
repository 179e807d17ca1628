package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakes/ui"
)

// panelWidth is the width of the HUD column right of the boards.
const panelWidth = 320

// Draw renders the boards, the HUD and the buttons.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 15, G: 18, B: 24, A: 255})

	g.boardRenderer.Draw(g.world, g.grid, g.hoverSlot)

	x := int32(g.grid.X + g.grid.Size)
	w := int32(g.screenWidth) - x
	if w > panelWidth {
		w = panelWidth
	}
	h := int32(g.screenHeight)

	y := g.hud.Draw(x, 0, w, h, g.hudData())

	pad := g.hud.Theme().Padding
	actions := g.controls.Draw(x+pad, y, w-2*pad, ui.ControlsState{
		SpeedMode: g.speedMode,
		Paused:    g.paused,
		CanReplay: g.world.best != nil && !g.world.Replaying(),
	})
	g.apply(actions)

	g.hud.DrawControls(x+pad, h, "[Space] pause  [S] speed  [B] best  [</>] steps")

	rl.EndDrawing()
	g.perf.RecordFrame()
}

// hudData collects the panel contents from the world.
func (g *Game) hudData() ui.HUDData {
	alive := 0
	for _, s := range g.world.Population() {
		if s.Alive {
			alive++
		}
	}

	data := ui.HUDData{
		Generation:    g.world.CurrentGeneration(),
		Tick:          g.world.Ticks(),
		Alive:         alive,
		Population:    g.world.PopulationSize(),
		BestScore:     g.world.BestScore(),
		AvgScore:      g.world.AvgScore(),
		StepsPerFrame: g.stepsPerUpdate,
		SpeedMode:     g.speedMode,
		Paused:        g.paused,
		Replaying:     g.world.Replaying(),
		Finished:      g.finished,
		FPS:           rl.GetFPS(),
		TicksPerSec:   g.perf.Stats().TicksPerSecond,
		BestHistory:   g.bestHistory,
		AvgHistory:    g.avgHistory,
	}
	if g.speedMode {
		data.StepsPerFrame = g.cfg.SpeedMode.TicksPerFrame
	}

	if b := g.world.best; b != nil {
		data.HasBest = true
		data.BestEver = b.Score
		data.BestEverGen = b.Generation
	}

	if g.hoverSlot >= 0 && g.hoverSlot < g.world.PopulationSize() {
		s := g.world.Population()[g.hoverSlot]
		data.Hover = &ui.SnakeInfo{
			Slot:           g.hoverSlot,
			Alive:          s.Alive,
			Score:          s.Score,
			Length:         s.Len(),
			Lifetime:       s.Lifetime,
			RemainingMoves: s.RemainingMoves,
			MaxMoves:       s.MaxMoves,
		}
	}

	return data
}
