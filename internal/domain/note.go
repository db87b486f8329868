package domain

import (
	"errors"
	"time"
)

type NoteType string

const (
	NoteTypeText  NoteType = "text"
	NoteTypeImage NoteType = "image"
)

// Valid reports whether t is a known note type.
func (t NoteType) Valid() bool {
	return t == NoteTypeText || t == NoteTypeImage
}

// ErrNoteNotFound is returned by stores when no note has the requested ID.
var ErrNoteNotFound = errors.New("note not found")

// Note is a single item on the canvas. X and Y are world coordinates of the
// top-left corner and never depend on the viewport.
type Note struct {
	ID          string    `json:"id"`
	Type        NoteType  `json:"type"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	ImageHandle string    `json:"imageHandle,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NoteStore keeps the notes of the current session, in creation order.
type NoteStore interface {
	CreateNote(n *Note) error
	GetNote(id string) (*Note, error)
	ListNotes() ([]Note, error)
	UpdateNote(n *Note) error
	DeleteNote(id string) error
}
