package game

import (
	"errors"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakes/camera"
	"github.com/pthm-cable/snakes/ui"
)

// maxStepsPerUpdate bounds the steps-per-frame control.
const maxStepsPerUpdate = 50

// handleInput processes keyboard input and reads the mouse position.
func (g *Game) handleInput() {
	g.handleResize()

	var a ui.Actions
	a.TogglePause = rl.IsKeyPressed(rl.KeySpace)
	a.ToggleSpeedMode = rl.IsKeyPressed(rl.KeyS)
	a.ReplayBest = rl.IsKeyPressed(rl.KeyB)
	a.Slower = rl.IsKeyPressed(rl.KeyComma)
	a.Faster = rl.IsKeyPressed(rl.KeyPeriod)
	g.apply(a)

	mouse := rl.GetMousePosition()
	if slot, ok := g.grid.SlotAt(mouse.X, mouse.Y); ok {
		g.hoverSlot = slot
	} else {
		g.hoverSlot = -1
	}
}

// apply performs keyboard or button actions.
func (g *Game) apply(a ui.Actions) {
	if a.TogglePause {
		g.paused = !g.paused
	}
	if a.ToggleSpeedMode && !g.world.Replaying() {
		g.speedMode = !g.speedMode
	}
	if a.Slower && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if a.Faster && g.stepsPerUpdate < maxStepsPerUpdate {
		g.stepsPerUpdate++
	}
	if a.ReplayBest && !g.world.Replaying() {
		if err := g.ReplayBest(); err != nil {
			if errors.Is(err, ErrNoBest) {
				slog.Info("no best snake to replay yet")
			} else {
				slog.Error("failed to start replay", "error", err)
			}
		}
	}
}

// handleResize checks for window resize and refits the board grid.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.grid.Resize(camera.Fit(w, h, panelWidth))
}
