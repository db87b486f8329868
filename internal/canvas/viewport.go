package canvas

// Point is a position in either screen or world space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a screen-space box, as reported by getBoundingClientRect.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ZoomLimits bounds the viewport scale and sets how far one wheel unit zooms.
type ZoomLimits struct {
	MinScale    float64 `json:"minScale"`
	MaxScale    float64 `json:"maxScale"`
	Sensitivity float64 `json:"sensitivity"`
}

// DefaultZoomLimits matches the frontend's historical behaviour.
var DefaultZoomLimits = ZoomLimits{MinScale: 0.1, MaxScale: 5, Sensitivity: 0.001}

// Clamp restricts scale to [MinScale, MaxScale].
func (l ZoomLimits) Clamp(scale float64) float64 {
	if scale < l.MinScale {
		return l.MinScale
	}
	if scale > l.MaxScale {
		return l.MaxScale
	}
	return scale
}

// Viewport is the pan+scale applied to world coordinates, plus the size of
// the visible area in screen pixels.
//
// All methods return a new value; a Viewport is never mutated in place.
type Viewport struct {
	PanX   float64 `json:"panX"`
	PanY   float64 `json:"panY"`
	Scale  float64 `json:"scale"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewViewport returns an untransformed viewport of the given size.
func NewViewport(width, height float64) Viewport {
	return Viewport{Scale: 1, Width: width, Height: height}
}

// Pan moves the viewport by a screen drag delta, 1:1 and undamped.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.PanX += dx
	v.PanY += dy
	return v
}

// Wheel applies a wheel event. Without a modifier the event is ignored and
// the viewport is returned unchanged.
func (v Viewport) Wheel(deltaY float64, modifier bool, limits ZoomLimits) Viewport {
	if !modifier {
		return v
	}
	v.Scale = limits.Clamp(v.Scale + (-deltaY)*limits.Sensitivity)
	return v
}

// Resize records a new visible size.
func (v Viewport) Resize(width, height float64) Viewport {
	v.Width = width
	v.Height = height
	return v
}

// Reset drops the pan and scale but keeps the size.
func (v Viewport) Reset() Viewport {
	return NewViewport(v.Width, v.Height)
}

// Center returns the world position at which a box with the given half
// extents appears centered in the viewport.
func (v Viewport) Center(halfWidth, halfHeight float64) Point {
	return Point{
		X: -v.PanX + v.Width/2 - halfWidth,
		Y: -v.PanY + v.Height/2 - halfHeight,
	}
}

// WorldToScreen maps a world point through the viewport transform.
func (v Viewport) WorldToScreen(p Point) Point {
	return Point{
		X: (p.X + v.PanX) * v.Scale,
		Y: (p.Y + v.PanY) * v.Scale,
	}
}

// ScreenToWorld is the inverse of WorldToScreen. A zero scale is treated as 1.
func (v Viewport) ScreenToWorld(p Point) Point {
	scale := v.Scale
	if scale == 0 {
		scale = 1
	}
	return Point{
		X: p.X/scale - v.PanX,
		Y: p.Y/scale - v.PanY,
	}
}

// DropPosition places a dropped item relative to the drop target's rect,
// shifted by the note's anchor offset. Pan and scale are not applied.
func DropPosition(screen Point, target Rect, offsetX, offsetY float64) Point {
	return Point{
		X: screen.X - target.Left - offsetX,
		Y: screen.Y - target.Top - offsetY,
	}
}
