package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gen2brain/raylib-go/raygui"
)

// Actions reports which buttons were clicked this frame.
type Actions struct {
	ToggleSpeedMode bool
	ReplayBest      bool
	TogglePause     bool
	Faster          bool
	Slower          bool
}

// Any reports whether any button was clicked.
func (a Actions) Any() bool {
	return a.ToggleSpeedMode || a.ReplayBest || a.TogglePause || a.Faster || a.Slower
}

// ControlsState is what the buttons need to choose labels and enablement.
type ControlsState struct {
	SpeedMode bool
	Paused    bool
	CanReplay bool // a best snake exists and no replay is running
}

// Controls draws the raygui button column.
type Controls struct {
	theme Theme
}

// NewControls creates the button column.
func NewControls() *Controls {
	return &Controls{theme: DefaultTheme()}
}

// Draw renders the buttons starting at (x, y) and returns the clicks.
func (c *Controls) Draw(x, y, width int32, state ControlsState) Actions {
	var a Actions
	h := float32(c.theme.ButtonHeight)
	gap := float32(c.theme.Padding) / 2
	fx, fy, fw := float32(x), float32(y), float32(width)

	speedLabel := "Speed mode"
	if state.SpeedMode {
		speedLabel = "Normal speed"
	}
	a.ToggleSpeedMode = raygui.Button(rl.Rectangle{X: fx, Y: fy, Width: fw, Height: h}, speedLabel)
	fy += h + gap

	pauseLabel := "Pause"
	if state.Paused {
		pauseLabel = "Resume"
	}
	a.TogglePause = raygui.Button(rl.Rectangle{X: fx, Y: fy, Width: fw, Height: h}, pauseLabel)
	fy += h + gap

	half := (fw - gap) / 2
	a.Slower = raygui.Button(rl.Rectangle{X: fx, Y: fy, Width: half, Height: h}, "Slower")
	a.Faster = raygui.Button(rl.Rectangle{X: fx + half + gap, Y: fy, Width: half, Height: h}, "Faster")
	fy += h + gap

	if !state.CanReplay {
		raygui.Disable()
	}
	a.ReplayBest = raygui.Button(rl.Rectangle{X: fx, Y: fy, Width: fw, Height: h}, "Replay best snake") && state.CanReplay
	raygui.Enable()

	return a
}
