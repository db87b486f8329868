package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/wailsapp/wails/v2/pkg/logger"

	"noteboard/internal/canvas"
	"noteboard/internal/config"
	"noteboard/internal/domain"
	"noteboard/internal/imaging"
)

// ─────────────────────────────────────────────────────────────
// Note Service: the note collection of the session canvas
// ─────────────────────────────────────────────────────────────

// ErrImageRequired is returned when an image note is created without image data.
var ErrImageRequired = errors.New("image notes need image data; use AddImageNote")

// NoteChange is the payload of EventNotesChanged.
type NoteChange struct {
	Action string `json:"action"` // created, moved, edited, removed
	NoteID string `json:"noteId"`
}

// NoteDeps holds the collaborators of a NoteService.
type NoteDeps struct {
	Store    domain.NoteStore
	Images   *imaging.Registry
	Viewport *ViewportService
	Palettes *PaletteService
	Emitter  EventEmitter
	Log      logger.Logger
	Config   config.NotesConfig
}

// NoteService manages the notes on the canvas and the drags in flight.
type NoteService struct {
	store    domain.NoteStore
	images   *imaging.Registry
	viewport *ViewportService
	palettes *PaletteService
	emitter  EventEmitter
	log      logger.Logger
	cfg      config.NotesConfig

	mu    sync.Mutex
	drags map[string]canvas.Drag // noteID → drag in progress
}

// NewNoteService creates a NoteService.
func NewNoteService(deps NoteDeps) *NoteService {
	return &NoteService{
		store:    deps.Store,
		images:   deps.Images,
		viewport: deps.Viewport,
		palettes: deps.Palettes,
		emitter:  deps.Emitter,
		log:      orNop(deps.Log),
		cfg:      deps.Config,
		drags:    make(map[string]canvas.Drag),
	}
}

// AddNote appends a text note at a world position. Empty content gets the
// configured default text.
func (s *NoteService) AddNote(ctx context.Context, kind domain.NoteType, pos canvas.Point, content string) (*domain.Note, error) {
	switch kind {
	case domain.NoteTypeText:
	case domain.NoteTypeImage:
		return nil, ErrImageRequired
	default:
		return nil, fmt.Errorf("unknown note type %q", kind)
	}
	if content == "" {
		content = s.cfg.DefaultText
	}
	n := &domain.Note{
		ID:      uuid.New().String(),
		Type:    kind,
		X:       pos.X,
		Y:       pos.Y,
		Content: content,
	}
	if err := s.store.CreateNote(n); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	s.emitChange(ctx, "created", n.ID)
	return n, nil
}

// AddCenteredNote adds a text note centered in the current viewport.
func (s *NoteService) AddCenteredNote(ctx context.Context, content string) (*domain.Note, error) {
	return s.AddNote(ctx, domain.NoteTypeText, s.CenterPosition(), content)
}

// CenterPosition is where a new note must go to appear centered on screen.
func (s *NoteService) CenterPosition() canvas.Point {
	return s.viewport.Center(s.cfg.HalfWidth, s.cfg.HalfHeight)
}

// AddImageNote decodes image bytes into a handle and creates an image note
// at pos. Palette extraction starts once the note exists.
func (s *NoteService) AddImageNote(ctx context.Context, data []byte, pos canvas.Point) (*domain.Note, error) {
	h, err := s.images.Register(data)
	if err != nil {
		return nil, err
	}
	n := &domain.Note{
		ID:          uuid.New().String(),
		Type:        domain.NoteTypeImage,
		X:           pos.X,
		Y:           pos.Y,
		ImageURL:    h.URL,
		ImageHandle: h.ID,
	}
	if err := s.store.CreateNote(n); err != nil {
		s.images.Release(h.ID)
		return nil, fmt.Errorf("create image note: %w", err)
	}
	s.log.Info(fmt.Sprintf("notes: image note %s (%s %dx%d)", n.ID, h.Mime, h.Width, h.Height))
	s.emitChange(ctx, "created", n.ID)

	// Extraction outlives the request that created the note.
	if s.palettes != nil {
		s.palettes.Extract(context.WithoutCancel(ctx), n.ID, h.ID)
	}
	return n, nil
}

// GetNote returns a note by ID.
func (s *NoteService) GetNote(id string) (*domain.Note, error) {
	return s.store.GetNote(id)
}

// ListNotes returns every note in creation order. Never nil.
func (s *NoteService) ListNotes() ([]domain.Note, error) {
	notes, err := s.store.ListNotes()
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes, nil
}

// UpdatePosition moves a note to new world coordinates. Unknown IDs are ignored.
func (s *NoteService) UpdatePosition(ctx context.Context, id string, x, y float64) error {
	n, err := s.store.GetNote(id)
	if errors.Is(err, domain.ErrNoteNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	n.X, n.Y = x, y
	if err := s.store.UpdateNote(n); err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	s.emitChange(ctx, "moved", id)
	return nil
}

// UpdateContent commits edited text back to a text note. Unknown IDs and
// image notes are ignored.
func (s *NoteService) UpdateContent(ctx context.Context, id, content string) error {
	n, err := s.store.GetNote(id)
	if errors.Is(err, domain.ErrNoteNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if n.Type != domain.NoteTypeText || n.Content == content {
		return nil
	}
	n.Content = content
	if err := s.store.UpdateNote(n); err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	s.emitChange(ctx, "edited", id)
	return nil
}

// RemoveNote deletes a note and releases everything it owns: its image
// handle, its palette and any drag in progress.
func (s *NoteService) RemoveNote(ctx context.Context, id string) error {
	n, err := s.store.GetNote(id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteNote(id); err != nil {
		return fmt.Errorf("remove note: %w", err)
	}
	if n.ImageHandle != "" {
		s.images.Release(n.ImageHandle)
	}
	if s.palettes != nil {
		s.palettes.Forget(id)
	}
	s.mu.Lock()
	delete(s.drags, id)
	s.mu.Unlock()

	s.emitChange(ctx, "removed", id)
	return nil
}

// ── Drag ───────────────────────────────────────────────────

// BeginDrag snapshots the note's position. Unknown IDs are ignored.
func (s *NoteService) BeginDrag(id string) error {
	n, err := s.store.GetNote(id)
	if errors.Is(err, domain.ErrNoteNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.drags[id] = canvas.StartDrag(canvas.Point{X: n.X, Y: n.Y})
	s.mu.Unlock()
	return nil
}

// DragTo records the pointer offset of a drag in progress. The stored
// position does not change until EndDrag.
func (s *NoteService) DragTo(id string, offsetX, offsetY float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.drags[id]; ok {
		s.drags[id] = d.Move(offsetX, offsetY)
	}
}

// EndDrag commits origin + offset as the note's new position. A drag that
// was never begun starts from the note's current position.
func (s *NoteService) EndDrag(ctx context.Context, id string, offsetX, offsetY float64) (canvas.Point, error) {
	s.mu.Lock()
	d, ok := s.drags[id]
	delete(s.drags, id)
	s.mu.Unlock()

	if !ok {
		n, err := s.store.GetNote(id)
		if errors.Is(err, domain.ErrNoteNotFound) {
			return canvas.Point{}, nil
		}
		if err != nil {
			return canvas.Point{}, err
		}
		d = canvas.StartDrag(canvas.Point{X: n.X, Y: n.Y})
	}

	final := d.Move(offsetX, offsetY).Release()
	if err := s.UpdatePosition(ctx, id, final.X, final.Y); err != nil {
		return canvas.Point{}, err
	}
	return final, nil
}

// ── Board ──────────────────────────────────────────────────

// Board returns the complete canvas state for rendering.
func (s *NoteService) Board() (*domain.BoardState, error) {
	notes, err := s.ListNotes()
	if err != nil {
		return nil, err
	}
	palettes := map[string][]domain.Swatch{}
	if s.palettes != nil {
		palettes = s.palettes.Palettes()
	}
	return &domain.BoardState{
		Viewport: s.viewport.Get(),
		Notes:    notes,
		Palettes: palettes,
	}, nil
}

func (s *NoteService) emitChange(ctx context.Context, action, id string) {
	s.emitter.Emit(ctx, EventNotesChanged, NoteChange{Action: action, NoteID: id})
}
