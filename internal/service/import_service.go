package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"noteboard/internal/canvas"
	"noteboard/internal/config"
	"noteboard/internal/domain"
	"noteboard/internal/imaging"
)

// ─────────────────────────────────────────────────────────────
// Import Service: clipboard paste and drag-and-drop of images
// ─────────────────────────────────────────────────────────────

// dropCascade offsets successive files of one native drop so they don't stack.
const dropCascade = 24.0

// ClipboardItem is one entry of a paste event as read by the webview.
type ClipboardItem struct {
	MimeType string `json:"mimeType"`
	DataURL  string `json:"dataUrl"`
}

// ImportService turns pasted and dropped images into image notes.
// Paste and drop fail the same way: the user gets a toast, no note is
// created and nothing propagates to the caller.
type ImportService struct {
	notes    *NoteService
	toaster  *Toaster
	log      logger.Logger
	cfg      config.NotesConfig
	readFile func(string) ([]byte, error)
}

// NewImportService creates an ImportService.
func NewImportService(notes *NoteService, toaster *Toaster, cfg config.NotesConfig, log logger.Logger) *ImportService {
	return &ImportService{
		notes:    notes,
		toaster:  toaster,
		log:      orNop(log),
		cfg:      cfg,
		readFile: os.ReadFile,
	}
}

// PasteClipboard creates an image note, centered in the viewport, from the
// first image item. Returns nil when there is no image item or the image
// could not be decoded.
func (s *ImportService) PasteClipboard(ctx context.Context, items []ClipboardItem) *domain.Note {
	for _, item := range items {
		if !imaging.IsImageMime(item.MimeType) {
			continue
		}
		n, err := s.importDataURL(ctx, item.DataURL, s.notes.CenterPosition())
		if err != nil {
			s.log.Error(fmt.Sprintf("paste: %v", err))
			s.toaster.Error(ctx, "Failed to paste image", "The clipboard image could not be read.")
			return nil
		}
		return n
	}
	return nil
}

// DropImage creates an image note under the drop point. The note is
// anchored by the configured drop offset relative to the target rect.
func (s *ImportService) DropImage(ctx context.Context, screen canvas.Point, target canvas.Rect, dataURL string) *domain.Note {
	pos := canvas.DropPosition(screen, target, s.cfg.DropOffsetX, s.cfg.DropOffsetY)
	n, err := s.importDataURL(ctx, dataURL, pos)
	if err != nil {
		s.log.Error(fmt.Sprintf("drop: %v", err))
		s.toaster.Error(ctx, "Failed to drop image", "The dropped file is not a supported image.")
		return nil
	}
	return n
}

// DropFiles imports files dropped from the OS. Non-image files are skipped;
// each image lands at the drop point, cascading by a fixed step.
func (s *ImportService) DropFiles(ctx context.Context, screen canvas.Point, target canvas.Rect, paths []string) []domain.Note {
	base := canvas.DropPosition(screen, target, s.cfg.DropOffsetX, s.cfg.DropOffsetY)
	created := []domain.Note{}
	for _, path := range paths {
		if !imaging.IsImagePath(path) {
			s.log.Debug(fmt.Sprintf("drop: skipping non-image %s", path))
			continue
		}
		step := float64(len(created)) * dropCascade
		pos := canvas.Point{X: base.X + step, Y: base.Y + step}
		n, err := s.importFile(ctx, path, pos)
		if err != nil {
			s.log.Error(fmt.Sprintf("drop: %v", err))
			s.toaster.Error(ctx, "Failed to drop image", filepath.Base(path))
			continue
		}
		created = append(created, *n)
	}
	return created
}

// ImportFile creates an image note from a file, centered in the viewport.
// Errors are returned, not toasted; the drop folder retries on later writes.
func (s *ImportService) ImportFile(ctx context.Context, path string) (*domain.Note, error) {
	return s.importFile(ctx, path, s.notes.CenterPosition())
}

// ImportFileAt creates an image note from a file at a world position.
func (s *ImportService) ImportFileAt(ctx context.Context, path string, pos canvas.Point) (*domain.Note, error) {
	return s.importFile(ctx, path, pos)
}

func (s *ImportService) importFile(ctx context.Context, path string, pos canvas.Point) (*domain.Note, error) {
	data, err := s.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	n, err := s.notes.AddImageNote(ctx, data, pos)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return n, nil
}

func (s *ImportService) importDataURL(ctx context.Context, dataURL string, pos canvas.Point) (*domain.Note, error) {
	_, data, err := imaging.ParseDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	return s.notes.AddImageNote(ctx, data, pos)
}
