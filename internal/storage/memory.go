package storage

import (
	"fmt"
	"sync"
	"time"

	"noteboard/internal/domain"
)

// MemoryNoteStore implements domain.NoteStore with a plain slice.
type MemoryNoteStore struct {
	mu    sync.RWMutex
	notes []domain.Note
}

func NewMemoryNoteStore() *MemoryNoteStore {
	return &MemoryNoteStore{}
}

func (s *MemoryNoteStore) CreateNote(n *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(n.ID) >= 0 {
		return fmt.Errorf("insert note: duplicate id %s", n.ID)
	}
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now
	s.notes = append(s.notes, *n)
	return nil
}

func (s *MemoryNoteStore) GetNote(id string) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("get note %s: %w", id, domain.ErrNoteNotFound)
	}
	n := s.notes[i]
	return &n, nil
}

func (s *MemoryNoteStore) ListNotes() ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Note, len(s.notes))
	copy(out, s.notes)
	return out, nil
}

func (s *MemoryNoteStore) UpdateNote(n *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(n.ID)
	if i < 0 {
		return fmt.Errorf("note %s: %w", n.ID, domain.ErrNoteNotFound)
	}
	n.CreatedAt = s.notes[i].CreatedAt
	n.UpdatedAt = time.Now()
	s.notes[i] = *n
	return nil
}

func (s *MemoryNoteStore) DeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNoteNotFound)
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	return nil
}

func (s *MemoryNoteStore) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}
