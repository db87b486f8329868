package storage

import (
	"fmt"

	"noteboard/internal/domain"
)

// OpenNoteStore builds the note store named by driver. The returned close
// func releases any session database and is never nil.
func OpenNoteStore(driver string) (domain.NoteStore, func() error, error) {
	switch driver {
	case "", "memory":
		return NewMemoryNoteStore(), func() error { return nil }, nil
	case "sqlite":
		db, err := NewSession()
		if err != nil {
			return nil, nil, err
		}
		return NewNoteStore(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown note store driver %q", driver)
	}
}
