package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"noteboard/internal/domain"
	"noteboard/internal/imaging"
)

// ─────────────────────────────────────────────────────────────
// Palette Service: color palettes for image notes
// ─────────────────────────────────────────────────────────────

// PaletteUpdate is the payload of EventNotePalette.
type PaletteUpdate struct {
	NoteID   string          `json:"noteId"`
	Swatches []domain.Swatch `json:"swatches"`
}

// PaletteService extracts palettes in the background once an image note's
// image is loaded. Each note owns its palette; failures are logged and
// leave the palette empty.
type PaletteService struct {
	images  *imaging.Registry
	opts    imaging.PaletteOptions
	emitter EventEmitter
	log     logger.Logger
	guard   keyedGuard

	mu       sync.RWMutex
	palettes map[string][]domain.Swatch // noteID → swatches; present while the note lives
}

// NewPaletteService creates a PaletteService.
func NewPaletteService(images *imaging.Registry, opts imaging.PaletteOptions, emitter EventEmitter, log logger.Logger) *PaletteService {
	return &PaletteService{
		images:   images,
		opts:     opts,
		emitter:  emitter,
		log:      orNop(log),
		palettes: make(map[string][]domain.Swatch),
	}
}

// Extract starts palette extraction for a note's image in the background.
// Returns false if an extraction for the note is already running.
func (s *PaletteService) Extract(ctx context.Context, noteID, handleID string) bool {
	taskCtx, ok := s.guard.Start(ctx, noteID)
	if !ok {
		return false
	}

	s.mu.Lock()
	if _, ok := s.palettes[noteID]; !ok {
		s.palettes[noteID] = []domain.Swatch{}
	}
	s.mu.Unlock()

	go func() {
		defer s.guard.Done(noteID)

		swatches, err := s.extract(handleID)
		if err != nil {
			s.log.Warning(fmt.Sprintf("palette: note %s: %v", noteID, err))
			return
		}
		if taskCtx.Err() != nil {
			s.log.Debug(fmt.Sprintf("palette: note %s: discarded", noteID))
			return
		}

		s.mu.Lock()
		_, live := s.palettes[noteID]
		if live {
			s.palettes[noteID] = swatches
		}
		s.mu.Unlock()
		if !live {
			return
		}

		s.log.Debug(fmt.Sprintf("palette: note %s: %d swatches", noteID, len(swatches)))
		s.emitter.Emit(taskCtx, EventNotePalette, PaletteUpdate{NoteID: noteID, Swatches: swatches})
	}()
	return true
}

func (s *PaletteService) extract(handleID string) ([]domain.Swatch, error) {
	img, err := s.images.Image(handleID)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", handleID, err)
	}
	return imaging.ExtractPalette(img, s.opts)
}

// Palette returns the palette of a note; empty until extraction finishes.
func (s *PaletteService) Palette(noteID string) []domain.Swatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Swatch{}, s.palettes[noteID]...)
}

// Palettes returns a copy of every known palette.
func (s *PaletteService) Palettes() map[string][]domain.Swatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]domain.Swatch, len(s.palettes))
	for id, sw := range s.palettes {
		out[id] = append([]domain.Swatch{}, sw...)
	}
	return out
}

// Forget drops a note's palette and cancels a running extraction for it.
func (s *PaletteService) Forget(noteID string) {
	s.guard.Cancel(noteID)
	s.mu.Lock()
	delete(s.palettes, noteID)
	s.mu.Unlock()
}

// Wait blocks until all running extractions finish or ctx is done.
func (s *PaletteService) Wait(ctx context.Context) {
	s.guard.WaitAll(ctx)
}
