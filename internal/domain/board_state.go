package domain

import "noteboard/internal/canvas"

// Swatch is one palette entry extracted from an image note.
type Swatch struct {
	Hex   string  `json:"hex"`
	R     uint8   `json:"r"`
	G     uint8   `json:"g"`
	B     uint8   `json:"b"`
	Share float64 `json:"share"` // fraction of sampled pixels, 0-1
}

// BoardState is everything the frontend needs to render the canvas.
type BoardState struct {
	Viewport canvas.Viewport     `json:"viewport"`
	Notes    []Note              `json:"notes"`
	Palettes map[string][]Swatch `json:"palettes"`
}
