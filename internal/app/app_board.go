package app

import (
	"noteboard/internal/canvas"
	"noteboard/internal/domain"
	"noteboard/internal/service"
)

// BoardSettings are the config values the frontend needs to draw notes.
type BoardSettings struct {
	NoteHalfWidth  float64           `json:"noteHalfWidth"`
	NoteHalfHeight float64           `json:"noteHalfHeight"`
	Zoom           canvas.ZoomLimits `json:"zoom"`
	ImagePrefix    string            `json:"imagePrefix"`
}

// GetSettings returns the board settings.
func (a *App) GetSettings() BoardSettings {
	return BoardSettings{
		NoteHalfWidth:  a.cfg.Notes.HalfWidth,
		NoteHalfHeight: a.cfg.Notes.HalfHeight,
		Zoom:           a.viewport.Limits(),
		ImagePrefix:    ImagePrefix,
	}
}

// GetBoard returns the viewport, the notes and their palettes.
func (a *App) GetBoard() (*domain.BoardState, error) {
	return a.notes.Board()
}

// ============================================================
// Viewport
// ============================================================

// Pan moves the viewport by a pointer delta in screen pixels.
func (a *App) Pan(dx, dy float64) canvas.Viewport {
	return a.viewport.Pan(a.ctx, dx, dy)
}

// Wheel zooms when ctrl or cmd is held; a plain wheel is left to the page.
func (a *App) Wheel(deltaY float64, ctrlKey, metaKey bool) canvas.Viewport {
	return a.viewport.Wheel(a.ctx, deltaY, ctrlKey || metaKey)
}

// ResizeViewport records the canvas size in screen pixels.
func (a *App) ResizeViewport(width, height float64) canvas.Viewport {
	return a.viewport.Resize(a.ctx, width, height)
}

// ResetViewport returns to pan (0, 0) at 100%.
func (a *App) ResetViewport() canvas.Viewport {
	return a.viewport.Reset(a.ctx)
}

// ============================================================
// Notes
// ============================================================

// AddNote adds a text note centered in the viewport.
func (a *App) AddNote(content string) (*domain.Note, error) {
	return a.notes.AddCenteredNote(a.ctx, content)
}

// AddNoteAt adds a text note at world coordinates.
func (a *App) AddNoteAt(x, y float64, content string) (*domain.Note, error) {
	return a.notes.AddNote(a.ctx, domain.NoteTypeText, canvas.Point{X: x, Y: y}, content)
}

func (a *App) BeginNoteDrag(noteID string) error {
	return a.notes.BeginDrag(noteID)
}

// DragNote reports the pointer offset of a drag in progress.
func (a *App) DragNote(noteID string, offsetX, offsetY float64) {
	a.notes.DragTo(noteID, offsetX, offsetY)
}

// EndNoteDrag commits the drag and returns the note's new position.
func (a *App) EndNoteDrag(noteID string, offsetX, offsetY float64) (canvas.Point, error) {
	return a.notes.EndDrag(a.ctx, noteID, offsetX, offsetY)
}

func (a *App) UpdateNotePosition(noteID string, x, y float64) error {
	return a.notes.UpdatePosition(a.ctx, noteID, x, y)
}

// UpdateNoteContent commits the text of a note when its editor loses focus.
func (a *App) UpdateNoteContent(noteID, content string) error {
	return a.notes.UpdateContent(a.ctx, noteID, content)
}

func (a *App) RemoveNote(noteID string) error {
	return a.notes.RemoveNote(a.ctx, noteID)
}

// ============================================================
// Images
// ============================================================

// PasteClipboard creates an image note from the first image on the
// clipboard. Returns nil if there was none or it could not be read.
func (a *App) PasteClipboard(items []service.ClipboardItem) *domain.Note {
	return a.imports.PasteClipboard(a.ctx, items)
}

// DropImage creates an image note from a file dropped on the canvas element.
// (x, y) is the pointer in client coordinates; target is the canvas rect.
func (a *App) DropImage(x, y float64, target canvas.Rect, dataURL string) *domain.Note {
	return a.imports.DropImage(a.ctx, canvas.Point{X: x, Y: y}, target, dataURL)
}

// GetPalette returns an image note's palette, empty until it is extracted.
func (a *App) GetPalette(noteID string) []domain.Swatch {
	return a.palettes.Palette(noteID)
}
