package service

import (
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
)

type Services struct {
	UserService UserService
	NoteService NoteService
}

func NewServices(repositories *store.Repositories, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		UserService: NewUserService(repositories.UserRepository, cfg.Auth, logger),
		NoteService: NewNoteService(repositories.NoteRepository, logger),
	}
}
