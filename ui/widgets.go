package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line and returns the new Y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws current/max as a progress bar.
func (r *Renderer) DrawBar(x, y int32, label string, current, max int, width int32) int32 {
	ratio := float32(0)
	if max > 0 {
		ratio = float32(current) / float32(max)
	}
	ratio = clamp01(ratio)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 60

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	color := r.Theme.BarFill
	if ratio < 0.25 {
		color = r.Theme.BarFillLow
	}
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*ratio), r.Theme.BarHeight, color)

	rl.DrawText(fmt.Sprintf("%d/%d", current, max), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// Series is one line of a chart.
type Series struct {
	Values []float64
	Color  rl.Color
}

// DrawChart plots series as polylines in a width x height box sharing one
// y axis that starts at zero. Returns the new Y.
func (r *Renderer) DrawChart(x, y, width, height int32, series ...Series) int32 {
	rl.DrawRectangle(x, y, width, height, r.Theme.BarBg)

	n := 0
	top := 1.0
	for _, s := range series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
		for _, v := range s.Values {
			if v > top {
				top = v
			}
		}
	}

	if n >= 2 {
		for _, s := range series {
			var prev rl.Vector2
			for i, v := range s.Values {
				pt := rl.Vector2{
					X: float32(x) + float32(width)*float32(i)/float32(n-1),
					Y: float32(y+height) - float32(height)*float32(v/top),
				}
				if i > 0 {
					rl.DrawLineV(prev, pt, s.Color)
				}
				prev = pt
			}
		}
	}

	rl.DrawText(fmt.Sprintf("%.0f", top), x+3, y+2, r.Theme.FontSize, r.Theme.LabelColor)
	return y + height + r.Theme.Padding
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
