package store

import "github.com/MKhiriev/go-note-keeper/internal/logger"

// Repositories aggregates every persistence port backed by the shared
// database handle.
type Repositories struct {
	UserRepository UserRepository
	NoteRepository NoteRepository
}

func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository: NewUserRepository(db, logger),
		NoteRepository: NewNoteRepository(db, logger),
	}
}
