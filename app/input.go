package app

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/telemetry"
)

// orbitSpeed is radians of camera rotation per pixel of mouse drag.
const orbitSpeed = 0.005

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.showPerf = !a.showPerf
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.perfCollector.StartPhase(telemetry.PhaseRegenerate)
		_ = a.Regenerate(context.Background(), a.editor.Commit())
		a.perfCollector.StartPhase(telemetry.PhaseInput)
	}

	a.handleCameraInput()
}

// handleCameraInput orbits with a left drag that starts outside the panel and
// zooms with the wheel or +/- keys.
func (a *App) handleCameraInput() {
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !a.panel.Contains(mouse) {
		a.dragging = true
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		a.dragging = false
	}
	if a.dragging {
		d := rl.GetMouseDelta()
		a.orbit.Rotate(float64(d.X)*orbitSpeed, float64(d.Y)*orbitSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !a.panel.Contains(mouse) {
		a.orbit.ZoomBy(1 - float64(wheel)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.orbit.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.orbit.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		a.orbit.Reset()
	}
}
