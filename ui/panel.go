package ui

import (
	"fmt"
	"strconv"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/galaxy"
)

// Action is what the panel asks the caller to do after a frame.
type Action int

const (
	ActionNone       Action = iota
	ActionRegenerate        // Params holds a new commit
	ActionReset             // Params holds the startup parameters
)

// Result is returned by Panel.Draw.
type Result struct {
	Action Action
	Params galaxy.Params
}

// Panel draws sliders for every galaxy parameter with raygui. Values change
// live in the editor; a commit is produced when the mouse button is released
// after an edit or when Regenerate is pressed.
type Panel struct {
	renderer *Renderer
	editor   *Editor
	x, y     int32
	width    int32
	visible  bool
	status   string
	failed   bool
}

// NewPanel creates a panel over editor anchored at (x, y).
func NewPanel(editor *Editor, x, y, width int32) *Panel {
	return &Panel{
		renderer: NewRenderer(),
		editor:   editor,
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetVisible shows or hides the panel.
func (p *Panel) SetVisible(visible bool) {
	p.visible = visible
}

// Toggle switches panel visibility.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// SetStatus sets the line shown under the buttons.
func (p *Panel) SetStatus(text string, failed bool) {
	p.status = text
	p.failed = failed
}

// Contains reports whether the point is over the visible panel.
func (p *Panel) Contains(pt rl.Vector2) bool {
	if !p.visible {
		return false
	}
	return rl.CheckCollisionPointRec(pt, rl.Rectangle{
		X: float32(p.x), Y: float32(p.y),
		Width: float32(p.width), Height: float32(p.height()),
	})
}

func (p *Panel) height() int32 {
	t := p.renderer.Theme
	rows := int32(len(p.editor.Specs())) + 2*4 // specs, two colors with header and three channels
	return t.Padding*3 + t.LineHeight*(rows+1) + 30 + t.LineHeight
}

// Draw renders the panel and reports any commit.
func (p *Panel) Draw() Result {
	if !p.visible {
		return Result{}
	}
	t := p.renderer.Theme
	p.renderer.DrawPanel(p.x, p.y, p.width, p.height())

	x := p.x + t.Padding
	y := p.y + t.Padding
	sliderX := float32(x + t.LabelWidth)
	sliderW := float32(p.width - t.LabelWidth - t.Padding*2 - 50)

	y = p.renderer.DrawSectionHeader(x, y, "Galaxy")

	for _, spec := range p.editor.Specs() {
		cur := spec.Get(p.editor.Working())
		rl.DrawText(spec.Name, x, y, t.FontSize, t.LabelColor)
		v := gui.SliderBar(
			rl.Rectangle{X: sliderX, Y: float32(y), Width: sliderW, Height: float32(t.SliderHeight)},
			"", formatValue(spec, cur),
			float32(cur), float32(spec.Min), float32(spec.Max),
		)
		if float64(v) != float64(float32(cur)) {
			p.editor.Set(spec, float64(v))
		}
		y += t.LineHeight
	}

	y = p.colorSliders(x, y, sliderX, sliderW, "Inside", InsideColor, p.editor.Working().InsideColor)
	y = p.colorSliders(x, y, sliderX, sliderW, "Outside", OutsideColor, p.editor.Working().OutsideColor)

	res := Result{}
	y += t.Padding / 2
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 120, Height: 26}, "Regenerate") {
		res = Result{Action: ActionRegenerate, Params: p.editor.Commit()}
	}
	if gui.Button(rl.Rectangle{X: float32(x + 130), Y: float32(y), Width: 120, Height: 26}, "Reset") {
		res = Result{Action: ActionReset, Params: p.editor.ResetInitial()}
	}
	y += 30

	if p.status != "" {
		color := t.LabelColor
		if p.failed {
			color = t.ErrorColor
		}
		rl.DrawText(p.status, x, y, t.FontSize, color)
	}

	if res.Action == ActionNone && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		if params, ok := p.editor.Release(); ok {
			res = Result{Action: ActionRegenerate, Params: params}
		}
	}
	return res
}

func (p *Panel) colorSliders(x, y int32, sliderX, sliderW float32, label string, target ColorTarget, c galaxy.Color) int32 {
	t := p.renderer.Theme
	r, g, b, a := c.RGBA8()
	y = p.renderer.DrawColorSwatch(x, y, label, rl.Color{R: r, G: g, B: b, A: a})

	channels := []struct {
		name string
		ch   Channel
		v    float64
	}{
		{"R", ChannelR, c.R},
		{"G", ChannelG, c.G},
		{"B", ChannelB, c.B},
	}
	for _, chn := range channels {
		rl.DrawText("  "+chn.name, x, y, t.FontSize, t.LabelColor)
		v := gui.SliderBar(
			rl.Rectangle{X: sliderX, Y: float32(y), Width: sliderW, Height: float32(t.SliderHeight)},
			"", strconv.Itoa(int(chn.v*255+0.5)),
			float32(chn.v), 0, 1,
		)
		if float64(v) != float64(float32(chn.v)) {
			p.editor.SetColor(target, chn.ch, float64(v))
		}
		y += t.LineHeight
	}
	return y
}

func formatValue(spec galaxy.ParamSpec, v float64) string {
	if spec.Integer {
		return strconv.Itoa(int(v))
	}
	return fmt.Sprintf("%.3f", v)
}
