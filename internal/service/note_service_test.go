package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"noteboard/internal/canvas"
	"noteboard/internal/domain"
	"noteboard/internal/service"
)

func TestNoteService_AddNoteDistinctIDs(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		n, err := b.notes.AddNote(ctx, domain.NoteTypeText, canvas.Point{}, "")
		if err != nil {
			t.Fatalf("AddNote: %v", err)
		}
		if seen[n.ID] {
			t.Fatalf("duplicate id %s after %d notes", n.ID, i)
		}
		seen[n.ID] = true
	}
	notes, _ := b.notes.ListNotes()
	if len(notes) != 200 {
		t.Fatalf("expected 200 notes, got %d", len(notes))
	}
}

func TestNoteService_AddNoteDefaults(t *testing.T) {
	b := newBoard(t)
	n, err := b.notes.AddNote(context.Background(), domain.NoteTypeText, canvas.Point{X: 5, Y: 6}, "")
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if n.Content != "New note" || n.X != 5 || n.Y != 6 || n.Type != domain.NoteTypeText {
		t.Errorf("unexpected note %+v", n)
	}
	if got := len(b.emitter.Named(service.EventNotesChanged)); got != 1 {
		t.Errorf("expected 1 notes:changed event, got %d", got)
	}
}

func TestNoteService_AddNoteRejectsBadKinds(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	if _, err := b.notes.AddNote(ctx, domain.NoteTypeImage, canvas.Point{}, ""); !errors.Is(err, service.ErrImageRequired) {
		t.Errorf("expected ErrImageRequired, got %v", err)
	}
	if _, err := b.notes.AddNote(ctx, "sticker", canvas.Point{}, ""); err == nil {
		t.Error("expected unknown type to fail")
	}
}

func TestNoteService_CenteredNoteIgnoresPriorPan(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()

	var screens []canvas.Point
	for _, pan := range []canvas.Point{{X: 0, Y: 0}, {X: 250, Y: -90}, {X: -4000, Y: 1234}} {
		b.viewport.Pan(ctx, pan.X, pan.Y)
		n, err := b.notes.AddCenteredNote(ctx, "")
		if err != nil {
			t.Fatalf("AddCenteredNote: %v", err)
		}
		screens = append(screens, b.viewport.Get().WorldToScreen(canvas.Point{X: n.X, Y: n.Y}))
	}
	for i, s := range screens {
		if s != screens[0] {
			t.Errorf("note %d rendered at %+v, expected %+v", i, s, screens[0])
		}
	}
	if screens[0] != (canvas.Point{X: 500, Y: 350}) {
		t.Errorf("expected (500, 350), got %+v", screens[0])
	}
}

func TestNoteService_UpdatePosition(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	n, _ := b.notes.AddNote(ctx, domain.NoteTypeText, canvas.Point{}, "a")

	if err := b.notes.UpdatePosition(ctx, n.ID, 42, -7); err != nil {
		t.Fatalf("UpdatePosition: %v", err)
	}
	got, _ := b.notes.GetNote(n.ID)
	if got.X != 42 || got.Y != -7 {
		t.Errorf("expected (42, -7), got (%v, %v)", got.X, got.Y)
	}

	if err := b.notes.UpdatePosition(ctx, "missing", 1, 1); err != nil {
		t.Errorf("expected no-op for missing id, got %v", err)
	}
}

func TestNoteService_DragCommitsOnRelease(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	n, _ := b.notes.AddNote(ctx, domain.NoteTypeText, canvas.Point{X: 100, Y: 200}, "drag me")

	if err := b.notes.BeginDrag(n.ID); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	b.notes.DragTo(n.ID, 10, 10)
	b.notes.DragTo(n.ID, 35, -20)

	mid, _ := b.notes.GetNote(n.ID)
	if mid.X != 100 || mid.Y != 200 {
		t.Fatalf("position changed before release: (%v, %v)", mid.X, mid.Y)
	}

	final, err := b.notes.EndDrag(ctx, n.ID, 40, -25)
	if err != nil {
		t.Fatalf("EndDrag: %v", err)
	}
	if final != (canvas.Point{X: 140, Y: 175}) {
		t.Errorf("expected (140, 175), got %+v", final)
	}

	board, err := b.notes.Board()
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if board.Notes[0].X != 140 || board.Notes[0].Y != 175 {
		t.Errorf("board still renders old position: %+v", board.Notes[0])
	}

	// A second drag starts from the committed position.
	final, _ = b.notes.EndDrag(ctx, n.ID, -40, 25)
	if final != (canvas.Point{X: 100, Y: 200}) {
		t.Errorf("expected (100, 200), got %+v", final)
	}
}

func TestNoteService_DragMissingNote(t *testing.T) {
	b := newBoard(t)
	if err := b.notes.BeginDrag("ghost"); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	b.notes.DragTo("ghost", 1, 1)
	if _, err := b.notes.EndDrag(context.Background(), "ghost", 1, 1); err != nil {
		t.Fatalf("EndDrag: %v", err)
	}
}

func TestNoteService_UpdateContent(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	n, _ := b.notes.AddNote(ctx, domain.NoteTypeText, canvas.Point{}, "")

	if err := b.notes.UpdateContent(ctx, n.ID, "groceries"); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	got, _ := b.notes.GetNote(n.ID)
	if got.Content != "groceries" {
		t.Errorf("expected committed content, got %q", got.Content)
	}
	if err := b.notes.UpdateContent(ctx, "missing", "x"); err != nil {
		t.Errorf("expected no-op for missing id, got %v", err)
	}
}

func TestNoteService_ImageNoteLifecycle(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()

	n, err := b.notes.AddImageNote(ctx, twoColorPNG(t), canvas.Point{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("AddImageNote: %v", err)
	}
	if n.Type != domain.NoteTypeImage || n.ImageHandle == "" || n.ImageURL != "/images/"+n.ImageHandle {
		t.Fatalf("unexpected image note %+v", n)
	}

	// Text commits never touch image notes.
	if err := b.notes.UpdateContent(ctx, n.ID, "caption"); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	if got, _ := b.notes.GetNote(n.ID); got.Content != "" {
		t.Errorf("image note content changed to %q", got.Content)
	}

	b.wait(t)
	if got := b.palettes.Palette(n.ID); len(got) != 2 {
		t.Fatalf("expected 2 swatches, got %+v", got)
	}

	if err := b.notes.RemoveNote(ctx, n.ID); err != nil {
		t.Fatalf("RemoveNote: %v", err)
	}
	if b.images.Len() != 0 {
		t.Errorf("expected image handle to be released, %d live", b.images.Len())
	}
	rec := httptest.NewRecorder()
	b.images.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, n.ImageURL, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for released image, got %d", rec.Code)
	}
	if got := b.palettes.Palette(n.ID); len(got) != 0 {
		t.Errorf("expected palette to be dropped, got %+v", got)
	}
	if err := b.notes.RemoveNote(ctx, n.ID); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound on second remove, got %v", err)
	}
}

func TestNoteService_AddImageNoteRejectsGarbage(t *testing.T) {
	b := newBoard(t)
	if _, err := b.notes.AddImageNote(context.Background(), []byte("nope"), canvas.Point{}); err == nil {
		t.Fatal("expected decode failure")
	}
	notes, _ := b.notes.ListNotes()
	if len(notes) != 0 || b.images.Len() != 0 {
		t.Errorf("failed import left state behind: %d notes, %d handles", len(notes), b.images.Len())
	}
}

func TestNoteService_BoardNeverNil(t *testing.T) {
	b := newBoard(t)
	board, err := b.notes.Board()
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if board.Notes == nil || board.Palettes == nil {
		t.Errorf("expected empty, non-nil collections: %+v", board)
	}
	if board.Viewport.Scale != 1 || board.Viewport.Width != 1200 {
		t.Errorf("unexpected viewport %+v", board.Viewport)
	}
}
