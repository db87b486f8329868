package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"noteboard/internal/domain"
)

// NoteStore implements domain.NoteStore on the session SQLite database.
type NoteStore struct {
	db *DB
}

func NewNoteStore(db *DB) *NoteStore {
	return &NoteStore{db: db}
}

const noteColumns = `id, type, x, y, content, image_url, image_handle, created_at, updated_at`

func (s *NoteStore) CreateNote(n *domain.Note) error {
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now
	_, err := s.db.Conn().Exec(
		`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Type, n.X, n.Y, n.Content, n.ImageURL, n.ImageHandle, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (s *NoteStore) GetNote(id string) (*domain.Note, error) {
	n := &domain.Note{}
	err := s.db.Conn().QueryRow(
		`SELECT `+noteColumns+` FROM notes WHERE id = ?`, id,
	).Scan(&n.ID, &n.Type, &n.X, &n.Y, &n.Content, &n.ImageURL, &n.ImageHandle, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get note %s: %w", id, domain.ErrNoteNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (s *NoteStore) ListNotes() ([]domain.Note, error) {
	rows, err := s.db.Conn().Query(`SELECT ` + noteColumns + ` FROM notes ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.Type, &n.X, &n.Y, &n.Content, &n.ImageURL, &n.ImageHandle, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *NoteStore) UpdateNote(n *domain.Note) error {
	n.UpdatedAt = time.Now()
	res, err := s.db.Conn().Exec(
		`UPDATE notes SET type = ?, x = ?, y = ?, content = ?, image_url = ?, image_handle = ?, updated_at = ? WHERE id = ?`,
		n.Type, n.X, n.Y, n.Content, n.ImageURL, n.ImageHandle, n.UpdatedAt, n.ID,
	)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return requireRow(res, n.ID)
}

func (s *NoteStore) DeleteNote(id string) error {
	res, err := s.db.Conn().Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNoteNotFound)
	}
	return nil
}
