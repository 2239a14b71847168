package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_services.go -package=mock

// UserService covers the account lifecycle: signup, credential
// verification with JWT issuing, merge-patch profile updates, paged
// listing and deletion.
type UserService interface {
	CreateUser(ctx context.Context, name, email, password string, memo *string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	UpdateUser(ctx context.Context, userID string, update models.UserUpdate) (models.User, error)
	GetUsers(ctx context.Context, page, itemsPerPage int) (int64, []models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// NoteService covers note CRUD for one authenticated user, including
// tag-set management and tag-scoped listing. Every operation is bound to
// the owning user id; a note belonging to someone else behaves as missing.
type NoteService interface {
	CreateNote(ctx context.Context, userID, title, content, memoDate string, tagNames []string) (models.Note, error)
	GetNotes(ctx context.Context, userID string, page, itemsPerPage int) (int64, []models.Note, error)
	GetNote(ctx context.Context, userID, id string) (models.Note, error)
	UpdateNote(ctx context.Context, userID, id, title, content, memoDate string, tagNames []string) (models.Note, error)
	DeleteNote(ctx context.Context, userID, id string) error
	GetNotesByTagName(ctx context.Context, userID, tagName string, page, itemsPerPage int) (int64, []models.Note, error)
}
