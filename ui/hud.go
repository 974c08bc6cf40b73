package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Generation   uint64
	Count        int
	Branches     int
	LastDuration time.Duration
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD in the top-right corner.
func (h *HUD) Draw(data HUDData) {
	x := data.ScreenWidth - 260

	rl.DrawText(data.Title, x, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Gen: %d | Points: %d | Arms: %d", data.Generation, data.Count, data.Branches),
		x, 35, 14, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Generated in %s | FPS: %d", data.LastDuration.Round(time.Millisecond/10), data.FPS),
		x, 53, 14, rl.LightGray,
	)
	if data.Paused {
		rl.DrawText("SPIN PAUSED", x, 71, 14, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y

	rl.DrawText("Frame", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("avg %s  max %s", stats.AvgFrame.Round(time.Microsecond), stats.MaxFrame.Round(time.Microsecond)), x, y, 12, rl.Yellow)
	y += 16

	for _, phase := range []string{telemetry.PhaseInput, telemetry.PhaseRegenerate, telemetry.PhaseScene, telemetry.PhaseDraw} {
		avg := stats.PhaseAvg[phase]
		pct := float64(0)
		if stats.AvgFrame > 0 {
			pct = float64(avg) / float64(stats.AvgFrame) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-12s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
