package ui

import (
	"math"

	"github.com/pthm-cable/galaxy/galaxy"
)

// ColorTarget selects which gradient endpoint a color edit applies to.
type ColorTarget int

const (
	InsideColor ColorTarget = iota
	OutsideColor
)

// Channel is one RGB component.
type Channel int

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
)

// Editor holds the parameter set being edited. Edits change a working copy
// and mark it dirty; the working copy becomes a commit only when the
// interaction ends (Release) or is forced (Commit). Dragging a slider
// therefore yields one regeneration, not one per frame.
type Editor struct {
	initial   galaxy.Params
	committed galaxy.Params
	working   galaxy.Params
	dirty     bool
	specs     []galaxy.ParamSpec
}

// NewEditor starts editing from p. p is also what ResetInitial returns to.
func NewEditor(p galaxy.Params) *Editor {
	return &Editor{initial: p, committed: p, working: p, specs: galaxy.Specs()}
}

// Specs returns the numeric parameters in display order.
func (e *Editor) Specs() []galaxy.ParamSpec {
	return e.specs
}

// Working returns the parameters as currently shown.
func (e *Editor) Working() galaxy.Params {
	return e.working
}

// Committed returns the last committed parameters.
func (e *Editor) Committed() galaxy.Params {
	return e.committed
}

// Dirty reports whether the working copy has uncommitted edits.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// Set applies a slider value, snapped to the parameter's step and clamped to
// its range. Returns whether the working copy changed.
func (e *Editor) Set(spec galaxy.ParamSpec, v float64) bool {
	v = spec.Snap(min(max(v, spec.Min), spec.Max))
	if math.Abs(v-spec.Get(e.working)) < spec.Step*1e-6 {
		return false
	}
	spec.Set(&e.working, v)
	e.dirty = true
	return true
}

// SetColor changes one channel of a gradient color. v is clamped to [0,1].
func (e *Editor) SetColor(target ColorTarget, ch Channel, v float64) bool {
	v = min(max(v, 0), 1)
	c := &e.working.InsideColor
	if target == OutsideColor {
		c = &e.working.OutsideColor
	}
	var field *float64
	switch ch {
	case ChannelR:
		field = &c.R
	case ChannelG:
		field = &c.G
	default:
		field = &c.B
	}
	if *field == v {
		return false
	}
	*field = v
	e.dirty = true
	return true
}

// Release ends an interaction. If there were edits it commits them and
// returns the new parameters with ok set.
func (e *Editor) Release() (p galaxy.Params, ok bool) {
	if !e.dirty {
		return e.committed, false
	}
	return e.Commit(), true
}

// Commit commits the working copy unconditionally.
func (e *Editor) Commit() galaxy.Params {
	e.working = e.working.Clamped()
	e.committed = e.working
	e.dirty = false
	return e.committed
}

// Reset replaces both copies with p and commits it.
func (e *Editor) Reset(p galaxy.Params) galaxy.Params {
	e.working = p
	return e.Commit()
}

// ResetInitial commits the parameters the editor was created with.
func (e *Editor) ResetInitial() galaxy.Params {
	return e.Reset(e.initial)
}

// Revert discards uncommitted edits, or rolls back to p after a commit the
// manager rejected.
func (e *Editor) Revert(p galaxy.Params) {
	e.committed = p
	e.working = p
	e.dirty = false
}
