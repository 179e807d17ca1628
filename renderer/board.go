// Package renderer draws the snake boards with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakes/camera"
	"github.com/pthm-cable/snakes/components"
)

// Scene is the read-only view of a world the renderer needs.
type Scene interface {
	Population() []*components.Snake
	Foods() []components.Food
	BoardSize() int
}

// Palette holds board colors.
type Palette struct {
	TileLight rl.Color
	TileDark  rl.Color
	Food      rl.Color
	Highlight rl.Color

	// Alive snakes fade from HeadAlive to TailAlive along the body,
	// dead snakes from HeadDead to TailDead.
	HeadAlive, TailAlive rl.Color
	HeadDead, TailDead   rl.Color
}

// DefaultPalette returns the default board colors.
func DefaultPalette() Palette {
	return Palette{
		TileLight: rl.Color{R: 38, G: 52, B: 69, A: 255},
		TileDark:  rl.Color{R: 33, G: 42, B: 55, A: 255},
		Food:      rl.Color{R: 255, G: 0, B: 0, A: 255},
		Highlight: rl.Yellow,
		HeadAlive: rl.Color{R: 0, G: 255, B: 0, A: 255},
		TailAlive: rl.Color{R: 0, G: 105, B: 0, A: 255},
		HeadDead:  rl.Color{R: 150, G: 150, B: 150, A: 255},
		TailDead:  rl.Color{R: 100, G: 100, B: 100, A: 255},
	}
}

// BoardRenderer draws every slot of a Scene into a camera.Grid.
type BoardRenderer struct {
	Palette Palette
}

// NewBoardRenderer creates a renderer with the default palette.
func NewBoardRenderer() *BoardRenderer {
	return &BoardRenderer{Palette: DefaultPalette()}
}

// Draw renders tiles, snakes and food. highlight is the slot to outline,
// or -1 for none.
func (r *BoardRenderer) Draw(scene Scene, grid *camera.Grid, highlight int) {
	r.drawTiles(grid)

	pop := scene.Population()
	foods := scene.Foods()
	cell := grid.CellSize()

	for i, s := range pop {
		r.drawSnake(grid, i, s, cell)

		// Food of dead snakes is never eaten, so it is hidden.
		if s.Alive && i < len(foods) {
			x, y := grid.CellToScreen(i, foods[i].Position)
			rl.DrawRectangleV(rl.Vector2{X: x, Y: y}, rl.Vector2{X: cell, Y: cell}, r.Palette.Food)
		}
	}

	if highlight >= 0 && highlight < len(pop) {
		x, y := grid.TileOrigin(highlight)
		tile := grid.TileSize()
		rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: tile, Height: tile}, 2, r.Palette.Highlight)
	}
}

// drawTiles paints a checkerboard of mini-board backgrounds.
func (r *BoardRenderer) drawTiles(grid *camera.Grid) {
	tile := grid.TileSize()
	for row := 0; row < grid.Cols; row++ {
		for col := 0; col < grid.Cols; col++ {
			color := r.Palette.TileDark
			if (row+col)%2 == 1 {
				color = r.Palette.TileLight
			}
			rl.DrawRectangleV(
				rl.Vector2{X: grid.X + float32(col)*tile, Y: grid.Y + float32(row)*tile},
				rl.Vector2{X: tile, Y: tile},
				color,
			)
		}
	}
}

func (r *BoardRenderer) drawSnake(grid *camera.Grid, slot int, s *components.Snake, cell float32) {
	head, tail := r.Palette.HeadAlive, r.Palette.TailAlive
	if !s.Alive {
		head, tail = r.Palette.HeadDead, r.Palette.TailDead
	}

	// Draw tail first so the head stays on top when segments overlap.
	n := len(s.Body)
	for i := n - 1; i >= 0; i-- {
		x, y := grid.CellToScreen(slot, s.Body[i])
		rl.DrawRectangleV(rl.Vector2{X: x, Y: y}, rl.Vector2{X: cell, Y: cell}, SegmentColor(head, tail, i, n))
	}
}

// SegmentColor interpolates from head to tail for segment i of n.
func SegmentColor(head, tail rl.Color, i, n int) rl.Color {
	if n <= 1 {
		return head
	}
	t := float32(i) / float32(n-1)
	lerp := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*t)
	}
	return rl.Color{
		R: lerp(head.R, tail.R),
		G: lerp(head.G, tail.G),
		B: lerp(head.B, tail.B),
		A: lerp(head.A, tail.A),
	}
}
