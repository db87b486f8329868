package canvas

// Drag tracks a note drag in progress. The note does not move while the
// pointer is down; only the relative offset is recorded.
type Drag struct {
	Origin Point `json:"origin"`
	Offset Point `json:"offset"`
}

// StartDrag begins a drag from the note's current position.
func StartDrag(origin Point) Drag {
	return Drag{Origin: origin}
}

// Move records the offset reported by the pointer relative to the drag start.
func (d Drag) Move(offsetX, offsetY float64) Drag {
	d.Offset = Point{X: offsetX, Y: offsetY}
	return d
}

// Release returns the absolute position to commit: origin + offset.
func (d Drag) Release() Point {
	return Point{X: d.Origin.X + d.Offset.X, Y: d.Origin.Y + d.Offset.Y}
}
