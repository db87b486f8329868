package mcpserver

import (
	"math"

	"noteboard/internal/domain"
)

const (
	GridSize = 20.0 // placement grid for agent-created notes
	Padding  = 40.0 // 2 grid cells between notes
	MaxRowW  = 1600.0
)

// LayoutEngine places notes on the canvas so that notes created by an
// agent don't overlap existing ones. Every note has the same footprint.
type LayoutEngine struct {
	gridSize float64
	padding  float64
	maxRowW  float64
	noteW    float64
	noteH    float64
}

// NewLayoutEngine creates a LayoutEngine for notes of noteW x noteH.
func NewLayoutEngine(noteW, noteH float64) *LayoutEngine {
	if noteW <= 0 {
		noteW = 200
	}
	if noteH <= 0 {
		noteH = 100
	}
	return &LayoutEngine{
		gridSize: GridSize,
		padding:  Padding,
		maxRowW:  MaxRowW,
		noteW:    noteW,
		noteH:    noteH,
	}
}

// snap rounds v to the nearest grid point.
func (le *LayoutEngine) snap(v float64) float64 {
	return math.Round(v/le.gridSize) * le.gridSize
}

// rect is a simple axis-aligned bounding box.
type rect struct {
	x, y, w, h float64
}

func (a rect) intersects(b rect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

func (le *LayoutEngine) footprint(n domain.Note) rect {
	return rect{n.X, n.Y, le.noteW, le.noteH}
}

// NextPosition finds the first free grid slot, scanning rows top to bottom,
// that keeps a padded distance from every existing note.
func (le *LayoutEngine) NextPosition(existing []domain.Note) (float64, float64) {
	if len(existing) == 0 {
		return 0, 0
	}

	occupied := make([]rect, len(existing))
	for i, n := range existing {
		occ := le.footprint(n)
		occupied[i] = rect{
			x: occ.x - le.padding,
			y: occ.y - le.padding,
			w: occ.w + le.padding*2,
			h: occ.h + le.padding*2,
		}
	}

	// Notes may sit at negative coordinates; the scan only covers the
	// positive quadrant, which is always enough to find room.
	candidate := rect{w: le.noteW, h: le.noteH}
	for y := 0.0; y < 100000; y += le.gridSize {
		for x := 0.0; x+le.noteW <= le.maxRowW; x += le.gridSize {
			candidate.x = le.snap(x)
			candidate.y = le.snap(y)

			overlaps := false
			for _, occ := range occupied {
				if candidate.intersects(occ) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				return candidate.x, candidate.y
			}
		}
	}

	// Fallback: place below all existing notes
	maxY := 0.0
	for _, n := range existing {
		if n.Y+le.noteH > maxY {
			maxY = n.Y + le.noteH
		}
	}
	return 0, le.snap(maxY + le.padding)
}

// ArrangeGroup places notes in a grid starting from (startX, startY), in
// the order given. It modifies note positions in-place and returns them.
func (le *LayoutEngine) ArrangeGroup(notes []domain.Note, startX, startY float64) []domain.Note {
	x := le.snap(startX)
	y := le.snap(startY)
	stepX := le.snap(le.noteW + le.padding)
	stepY := le.snap(le.noteH + le.padding)

	for i := range notes {
		if x != le.snap(startX) && x+le.noteW > le.snap(startX)+le.maxRowW {
			x = le.snap(startX)
			y += stepY
		}
		notes[i].X = x
		notes[i].Y = y
		x += stepX
	}

	return notes
}
