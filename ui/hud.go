package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SnakeInfo describes the snake under the mouse.
type SnakeInfo struct {
	Slot           int
	Alive          bool
	Score          int
	Length         int
	Lifetime       int
	RemainingMoves int
	MaxMoves       int
}

// HUDData holds all the data needed to render the side panel.
type HUDData struct {
	Generation int // generation being evaluated
	Tick       int // ticks into the generation
	Alive      int
	Population int

	BestScore   int
	AvgScore    float64
	HasBest     bool
	BestEver    int
	BestEverGen int

	StepsPerFrame int
	SpeedMode     bool
	Paused        bool
	Replaying     bool
	Finished      bool
	FPS           int32
	TicksPerSec   float64

	// Per finished generation, oldest first
	BestHistory []float64
	AvgHistory  []float64

	Hover *SnakeInfo
}

// HUD renders the side panel.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Theme returns the theme shared by the HUD widgets.
func (h *HUD) Theme() Theme {
	return h.renderer.Theme
}

// Draw renders the panel at (x, y) and returns the Y below the last line.
func (h *HUD) Draw(x, y, width, height int32, data HUDData) int32 {
	r := h.renderer
	pad := r.Theme.Padding

	r.DrawPanel(x, y, width, height)
	x += pad
	y += pad
	inner := width - 2*pad

	title := "Genetic Snakes"
	if data.Replaying {
		title = "Best snake replay"
	}
	y = r.DrawSectionHeader(x, y, title)

	y = r.DrawLabelValue(x, y, "Generation", fmt.Sprintf("%d", data.Generation))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "Alive", fmt.Sprintf("%d/%d", data.Alive, data.Population))
	y = r.DrawLabelValue(x, y, "Best score", fmt.Sprintf("%d", data.BestScore))
	y = r.DrawLabelValue(x, y, "Avg score", fmt.Sprintf("%.2f", data.AvgScore))
	if data.HasBest {
		y = r.DrawLabelValue(x, y, "Best ever", fmt.Sprintf("%d (gen %d)", data.BestEver, data.BestEverGen))
	}
	y += pad

	y = r.DrawSectionHeader(x, y, "Speed")
	mode := fmt.Sprintf("%dx", data.StepsPerFrame)
	if data.SpeedMode {
		mode += " (speed mode)"
	}
	y = r.DrawLabelValue(x, y, "Steps/frame", mode)
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "Ticks/sec", fmt.Sprintf("%.0f", data.TicksPerSec))

	switch {
	case data.Finished:
		rl.DrawText("FINISHED", x, y, r.Theme.FontSize, rl.Orange)
		y += r.Theme.LineHeight
	case data.Paused:
		rl.DrawText("PAUSED", x, y, r.Theme.FontSize, rl.Yellow)
		y += r.Theme.LineHeight
	}
	y += pad

	if len(data.BestHistory) > 0 {
		y = r.DrawSectionHeader(x, y, "Scores per generation")
		y = r.DrawChart(x, y, inner, 120,
			Series{Values: data.BestHistory, Color: r.Theme.BestLine},
			Series{Values: data.AvgHistory, Color: r.Theme.AvgLine},
		)
	}

	if s := data.Hover; s != nil {
		y = r.DrawSectionHeader(x, y, fmt.Sprintf("Snake #%d", s.Slot))
		state := "alive"
		if !s.Alive {
			state = "dead"
		}
		y = r.DrawLabelValue(x, y, "State", state)
		y = r.DrawLabelValue(x, y, "Score", fmt.Sprintf("%d", s.Score))
		y = r.DrawLabelValue(x, y, "Length", fmt.Sprintf("%d", s.Length))
		y = r.DrawLabelValue(x, y, "Lifetime", fmt.Sprintf("%d", s.Lifetime))
		y = r.DrawBar(x, y, "Moves left", s.RemainingMoves, s.MaxMoves, inner)
		y += pad
	}

	return y
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(x, screenHeight int32, controls string) {
	rl.DrawText(controls, x, screenHeight-22, 12, rl.Gray)
}
