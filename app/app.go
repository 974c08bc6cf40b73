// Package app wires the generator, scene manager, renderer and UI into the
// galaxy viewer.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/camera"
	"github.com/pthm-cable/galaxy/config"
	"github.com/pthm-cable/galaxy/export"
	"github.com/pthm-cable/galaxy/galaxy"
	"github.com/pthm-cable/galaxy/renderer"
	"github.com/pthm-cable/galaxy/scene"
	"github.com/pthm-cable/galaxy/telemetry"
	"github.com/pthm-cable/galaxy/ui"
)

// App holds the complete viewer state.
type App struct {
	cfg    *config.Config
	opts   Options
	logger *slog.Logger

	world   *scene.World
	manager *scene.Manager
	editor  *ui.Editor

	// Graphical mode only
	gpu       *renderer.GPU
	galaxyR   *renderer.GalaxyRenderer
	orbit     *camera.Orbit
	panel     *ui.Panel
	hud       *ui.HUD
	perfPanel *ui.PerfPanel

	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	// State
	last        scene.Event
	regenerated int
	paused      bool
	showPerf    bool
	dragging    bool
}

// New creates the viewer. In graphical mode the raylib window must already
// be open.
func New(cfg *config.Config, opts Options) (*App, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Generator.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &App{
		cfg:           cfg,
		opts:          opts,
		logger:        slog.With("component", "app"),
		world:         scene.NewWorld(float32(cfg.Render.SpinRate)),
		editor:        ui.NewEditor(cfg.Derived.Params),
		perfCollector: telemetry.NewPerfCollector(120),
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	a.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	var res scene.Resources
	if opts.Headless {
		res = scene.NewMemResources()
	} else {
		a.gpu = renderer.NewGPU()
		a.galaxyR = renderer.NewGalaxyRenderer(a.gpu, float32(cfg.Camera.Fovy))
		c := cfg.Camera
		a.orbit = camera.New(c.Yaw, c.Pitch, c.Distance, c.MinDistance, c.MaxDistance, c.Damping)
		a.panel = ui.NewPanel(a.editor, 10, 10, 340)
		a.panel.SetVisible(cfg.Render.ShowPanel)
		a.hud = ui.NewHUD()
		a.perfPanel = ui.NewPerfPanel(int32(cfg.Screen.Width)-260, 100)
		res = a.gpu
	}

	gen := galaxy.NewGenerator(
		rand.New(rand.NewSource(seed)),
		galaxy.WithWorkers(cfg.Generator.Workers),
		galaxy.WithChunkSize(cfg.Generator.ChunkSize),
	)
	a.manager = scene.NewManager(gen, a.world, res, scene.WithObserver(a.onRegenerate))

	a.logger.Info("viewer created", "seed", seed, "headless", opts.Headless)
	return a, nil
}

// Regenerate replaces the live galaxy with one built from p. On failure the
// live galaxy and the editor's committed parameters are left as they were.
func (a *App) Regenerate(ctx context.Context, p galaxy.Params) error {
	_, err := a.manager.RegenerateContext(ctx, p)
	if err != nil {
		if live := a.manager.Live(); live != nil {
			a.editor.Revert(live.Cloud.Params())
		}
		if a.panel != nil {
			a.panel.SetStatus(err.Error(), true)
		}
		return err
	}
	if a.panel != nil {
		a.panel.SetStatus(fmt.Sprintf("generation %d ready", a.manager.Generation()), false)
	}
	return nil
}

// Start generates the initial galaxy from the configured parameters.
func (a *App) Start(ctx context.Context) error {
	return a.Regenerate(ctx, a.editor.Committed())
}

// Update advances one frame: input, any pending regeneration, spin and camera.
func (a *App) Update() {
	a.perfCollector.StartFrame()
	a.perfCollector.StartPhase(telemetry.PhaseInput)
	a.handleInput()

	dt := rl.GetFrameTime()
	a.perfCollector.StartPhase(telemetry.PhaseScene)
	if !a.paused {
		a.world.Update(dt)
	}
	a.orbit.Update(float64(dt))
}

// Draw renders one frame and closes the frame's timing sample.
func (a *App) Draw() {
	a.perfCollector.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	rl.ClearBackground(renderer.ToColor(a.cfg.Derived.Background))

	a.galaxyR.Draw(a.world, a.orbit)

	a.drawHUD()
	res := a.panel.Draw()

	rl.EndDrawing()

	if res.Action != ui.ActionNone {
		a.perfCollector.StartPhase(telemetry.PhaseRegenerate)
		_ = a.Regenerate(context.Background(), res.Params)
	}
	a.perfCollector.EndFrame()
}

func (a *App) drawHUD() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	data := ui.HUDData{
		Title:        "Galaxy",
		FPS:          rl.GetFPS(),
		Paused:       a.paused,
		ScreenWidth:  w,
		ScreenHeight: h,
		LastDuration: a.last.Duration,
	}
	if a.last.Cloud != nil {
		data.Generation = a.last.Cloud.Generation()
		data.Count = a.last.Cloud.Len()
		data.Branches = a.last.Cloud.Params().Branches
	}
	a.hud.Draw(data)
	a.hud.DrawControls(w, h, "Drag: orbit | Wheel: zoom | R: regenerate | Space: pause spin | Tab: panel | P: perf | Home: reset view")
	if a.showPerf {
		a.perfPanel.SetPosition(w-260, 100)
		a.perfPanel.Draw(a.perfCollector.Stats())
	}
}

// Unload releases the live galaxy, writes the export if one was requested and
// closes telemetry output.
func (a *App) Unload() error {
	var exportErr error
	if a.opts.Export != "" {
		if live := a.manager.Live(); live != nil {
			exportErr = export.SaveFile(a.opts.Export, live.Cloud)
			if exportErr == nil {
				a.logger.Info("galaxy exported", "path", a.opts.Export, "generation", live.Cloud.Generation())
			}
		}
	}

	a.manager.Close()
	if a.gpu != nil {
		a.gpu.Unload()
	}
	if a.gpu != nil {
		a.logger.Info("frame timing", "perf", a.perfCollector.Stats())
	}
	if err := a.outputManager.Close(); err != nil && exportErr == nil {
		return err
	}
	return exportErr
}

// Manager exposes the scene manager.
func (a *App) Manager() *scene.Manager {
	return a.manager
}
