// Command galaxytty previews a galaxy in the terminal as a top-down density
// map.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/galaxy/config"
	"github.com/pthm-cable/galaxy/galaxy"
	"github.com/pthm-cable/galaxy/scene"
)

const frameInterval = 50 * time.Millisecond

type preview struct {
	screen  tcell.Screen
	world   *scene.World
	manager *scene.Manager
	params  galaxy.Params
	status  string
}

func main() {
	config.LoadEnv()

	configPath := flag.String("config", config.GetEnv(config.EnvConfig, ""), "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", config.GetEnvInt64(config.EnvSeed, 0), "RNG seed (0 = time-based)")
	count := flag.Int("count", 50000, "Number of points")
	flag.Parse()

	// Logs would corrupt the screen; keep only errors, on stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	p := cfg.Derived.Params
	p.Count = *count

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "creating screen:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "initializing screen:", err)
		os.Exit(1)
	}
	defer screen.Fini()

	world := scene.NewWorld(float32(cfg.Render.SpinRate))
	pv := &preview{
		screen:  screen,
		world:   world,
		manager: scene.NewManager(galaxy.NewGenerator(rand.New(rand.NewSource(*seed))), world, scene.NewMemResources()),
		params:  p,
	}
	defer pv.manager.Close()

	pv.regenerate(p)
	pv.run()
}

func (pv *preview) regenerate(p galaxy.Params) {
	start := time.Now()
	if _, err := pv.manager.Regenerate(p); err != nil {
		pv.status = err.Error()
		return
	}
	pv.params = p
	pv.status = fmt.Sprintf("gen %d  %d pts  %d arms  spin %.2f  (%s)",
		pv.manager.Generation(), p.Count, p.Branches, p.Spin, time.Since(start).Round(time.Millisecond))
}

func (pv *preview) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := pv.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !pv.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			pv.world.Update(float32(now.Sub(last).Seconds()))
			last = now
			pv.draw()
		}
	}
}

func (pv *preview) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		p := pv.params
		switch ev.Rune() {
		case 'q':
			return false
		case '+', '=':
			p.Branches = min(p.Branches+1, 20)
		case '-':
			p.Branches = max(p.Branches-1, 1)
		case ']':
			p.Spin += 0.25
		case '[':
			p.Spin -= 0.25
		case 'r':
		default:
			return true
		}
		pv.regenerate(p)

	case *tcell.EventResize:
		pv.screen.Sync()
	}
	return true
}

func (pv *preview) draw() {
	pv.screen.Clear()
	w, h := pv.screen.Size()

	pv.world.Each(func(r *scene.Renderable, angle float32) {
		g := rasterize(r.Cloud, float64(angle), w, h-1)
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				c := g.Cells[y*g.W+x]
				ch, bright := g.glyph(c)
				if ch == ' ' {
					continue
				}
				color := galaxy.Color{R: c.R * bright, G: c.G * bright, B: c.B * bright}
				r8, g8, b8, _ := color.RGBA8()
				style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r8), int32(g8), int32(b8)))
				pv.screen.SetContent(x, y, ch, nil, style)
			}
		}
	})

	line := pv.status + "   +/- arms  [/] spin  r regenerate  q quit"
	for i, ch := range line {
		if i >= w {
			break
		}
		pv.screen.SetContent(i, h-1, ch, nil, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
	pv.screen.Show()
}
