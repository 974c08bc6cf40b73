package main

import (
	"math"

	"github.com/pthm-cable/galaxy/galaxy"
)

// ramp maps relative density to a glyph, sparse to dense.
var ramp = []rune(" .:-=+*#%@")

// cell is one terminal character of the top-down view.
type cell struct {
	Count   int
	R, G, B float64 // mean color of the points in the cell
}

// grid is a w by h raster of cells, row-major.
type grid struct {
	W, H  int
	Cells []cell
	Max   int
}

// rasterize projects cloud onto the x/z plane, rotated by angle about Y.
// Terminal cells are roughly twice as tall as wide, so one row covers two
// columns' worth of z.
func rasterize(cloud *galaxy.PointCloud, angle float64, w, h int) grid {
	if w < 1 || h < 1 {
		return grid{}
	}
	g := grid{W: w, H: h, Cells: make([]cell, w*h)}
	if cloud.Len() == 0 {
		return g
	}

	extent := cloud.Params().Radius * 1.1
	if extent <= 0 {
		extent = 1
	}
	// fit the disc into whichever axis is tighter
	scale := math.Min(float64(w)/4, float64(h)/2) / extent
	cx, cy := float64(w)/2, float64(h)/2
	sin, cos := math.Sincos(angle)

	pos, col := cloud.Positions(), cloud.Colors()
	for i := 0; i < cloud.Len(); i++ {
		i3 := i * 3
		x, z := float64(pos[i3]), float64(pos[i3+2])
		rx := x*cos + z*sin
		rz := -x*sin + z*cos

		c := int(cx + rx*scale*2)
		r := int(cy + rz*scale)
		if c < 0 || c >= w || r < 0 || r >= h {
			continue
		}
		k := r*w + c
		cl := &g.Cells[k]
		cl.Count++
		n := float64(cl.Count)
		cl.R += (float64(col[i3]) - cl.R) / n
		cl.G += (float64(col[i3+1]) - cl.G) / n
		cl.B += (float64(col[i3+2]) - cl.B) / n
		if cl.Count > g.Max {
			g.Max = cl.Count
		}
	}
	return g
}

// glyph returns the character and brightness for a cell on a log scale.
func (g grid) glyph(c cell) (rune, float64) {
	if c.Count == 0 || g.Max == 0 {
		return ' ', 0
	}
	t := math.Log1p(float64(c.Count)) / math.Log1p(float64(g.Max))
	idx := 1 + int(t*float64(len(ramp)-2)+0.5)
	idx = min(idx, len(ramp)-1)
	return ramp[idx], 0.35 + 0.65*t
}
