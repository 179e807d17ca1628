// Package camera maps population slots and board cells to screen pixels.
package camera

import (
	"math"

	"github.com/pthm-cable/snakes/components"
)

// Grid lays out one square mini-board per population slot inside a square
// screen area, row by row.
type Grid struct {
	// Top-left corner and side length of the whole area in pixels
	X, Y, Size float32

	Slots     int // number of mini-boards
	BoardSize int // cells per board side
	Cols      int // tiles per row and column
}

// NewGrid creates a layout for slots boards of boardSize cells drawn in the
// size x size square at (x, y).
func NewGrid(slots, boardSize int, x, y, size float32) *Grid {
	g := &Grid{X: x, Y: y, Size: size, BoardSize: boardSize}
	g.SetSlots(slots)
	return g
}

// Fit returns the largest square that fits a viewport of w x h pixels once
// a side panel of panelW pixels is reserved on the right.
func Fit(w, h, panelW float32) float32 {
	avail := w - panelW
	if h < avail {
		avail = h
	}
	if avail < 0 {
		return 0
	}
	return avail
}

// SetSlots changes the number of boards, for example when switching to
// replay mode.
func (g *Grid) SetSlots(slots int) {
	if slots < 1 {
		slots = 1
	}
	g.Slots = slots
	g.Cols = int(math.Ceil(math.Sqrt(float64(slots))))
}

// Resize changes the side length of the whole area.
func (g *Grid) Resize(size float32) {
	g.Size = size
}

// TileSize returns the side length of one mini-board in pixels.
func (g *Grid) TileSize() float32 {
	return g.Size / float32(g.Cols)
}

// CellSize returns the side length of one board cell in pixels.
func (g *Grid) CellSize() float32 {
	if g.BoardSize <= 0 {
		return 0
	}
	return g.TileSize() / float32(g.BoardSize)
}

// TileOrigin returns the top-left pixel of the board for slot.
func (g *Grid) TileOrigin(slot int) (sx, sy float32) {
	tile := g.TileSize()
	col := slot % g.Cols
	row := slot / g.Cols
	return g.X + float32(col)*tile, g.Y + float32(row)*tile
}

// CellToScreen returns the top-left pixel of cell p on slot's board.
func (g *Grid) CellToScreen(slot int, p components.Point) (sx, sy float32) {
	ox, oy := g.TileOrigin(slot)
	cell := g.CellSize()
	return ox + float32(p.X)*cell, oy + float32(p.Y)*cell
}

// SlotAt returns the slot under a screen position, or false if the
// position lies outside every board.
func (g *Grid) SlotAt(sx, sy float32) (int, bool) {
	tile := g.TileSize()
	if tile <= 0 || sx < g.X || sy < g.Y {
		return 0, false
	}
	col := int((sx - g.X) / tile)
	row := int((sy - g.Y) / tile)
	if col >= g.Cols || row >= g.Cols {
		return 0, false
	}
	slot := row*g.Cols + col
	if slot >= g.Slots {
		return 0, false
	}
	return slot, true
}
