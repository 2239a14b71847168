package store

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_repositories.go -package=mock

// UserRepository is the persistence port for the user aggregate.
//
// Lookup methods return [ErrUserNotFound] when no row matches. EmailTaken is
// the explicit existence probe used during signup, so callers never need to
// treat a not-found error as a success path.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error)
	GetUsers(ctx context.Context, page, itemsPerPage int) (int64, []models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// NoteRepository is the persistence port for the note aggregate, including
// the note↔tag association.
//
// Every operation is scoped to a userID: a note belonging to another user is
// invisible (tenant isolation by filter). Single-entity lookups return
// [ErrNoteNotFound] on a miss; paged listings never fail for out-of-range
// pages and instead return an empty page with an accurate total count.
type NoteRepository interface {
	GetNotes(ctx context.Context, userID string, page, itemsPerPage int) (int64, []models.Note, error)
	FindNoteByID(ctx context.Context, userID, id string) (models.Note, error)
	SaveNote(ctx context.Context, userID string, note models.Note) (models.Note, error)
	UpdateNote(ctx context.Context, userID string, note models.Note) (models.Note, error)
	DeleteNote(ctx context.Context, userID, id string) error
	DeleteNoteTags(ctx context.Context, userID, id string) error
	GetNotesByTagName(ctx context.Context, userID, tagName string, page, itemsPerPage int) (int64, []models.Note, error)
}
