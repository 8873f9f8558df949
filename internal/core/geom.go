// Package core provides host-neutral building blocks for the terminal frontends:
// input actions, a colored character buffer and the world-to-cell projection.
// It does not import Bubble Tea so it can be tested on its own.
package core

import "math"

// Rect is an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clip returns the part of r inside a w by h screen.
func (r Rect) Clip(w, h int) Rect {
	x0, y0 := Clamp(r.X, 0, w), Clamp(r.Y, 0, h)
	x1, y1 := Clamp(r.Right(), 0, w), Clamp(r.Bottom(), 0, h)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Projection maps world units to screen cells. Origin is the world point
// drawn at cell (0, 0); Scale is cells per world unit on each axis.
type Projection struct {
	OriginX, OriginY float64
	ScaleX, ScaleY   float64
}

// Fit builds a projection that shows the world box starting at (x, y) of
// size w by h on a screen of cols by rows cells.
func Fit(x, y, w, h float64, cols, rows int) Projection {
	return Projection{
		OriginX: x,
		OriginY: y,
		ScaleX:  float64(cols) / w,
		ScaleY:  float64(rows) / h,
	}
}

// Cell returns the cell containing world point (x, y).
func (p Projection) Cell(x, y float64) (int, int) {
	return int(math.Floor((x - p.OriginX) * p.ScaleX)), int(math.Floor((y - p.OriginY) * p.ScaleY))
}

// Rect projects a world box onto cells. Any box with a positive size covers at least one cell.
func (p Projection) Rect(x, y, w, h float64) Rect {
	x0, y0 := p.Cell(x, y)
	x1 := int(math.Ceil((x + w - p.OriginX) * p.ScaleX))
	y1 := int(math.Ceil((y + h - p.OriginY) * p.ScaleY))
	return Rect{X: x0, Y: y0, W: max(x1-x0, 1), H: max(y1-y0, 1)}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
