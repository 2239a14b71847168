// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// noteService is the concrete implementation of NoteService.
// It assembles note models (ids, timestamps, tag rows from raw names) and
// delegates persistence to a NoteRepository; all tag lifecycle rules
// (find-or-create, wholesale replacement, orphan cleanup) live in the
// repository transaction.
type noteService struct {
	noteRepository store.NoteRepository

	// uuid issues time-ordered (v7) ids for new notes and tags.
	uuid utils.UUIDGenerator

	logger *logger.Logger
}

// NewNoteService constructs a NoteService wired to the given NoteRepository.
func NewNoteService(noteRepository store.NoteRepository, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		uuid:           utils.UUIDGenerator{},
		logger:         logger,
	}
}

// CreateNote persists a new note owned by userID with the given tag names.
// Unknown tag names produce new tag rows, known ones are reused.
func (s *noteService) CreateNote(ctx context.Context, userID, title, content, memoDate string, tagNames []string) (models.Note, error) {
	log := logger.FromContext(ctx)

	if userID == "" || title == "" || content == "" || memoDate == "" {
		log.Error().Str("func", "*noteService.CreateNote").Str("user_id", userID).Msg("invalid note data provided")
		return models.Note{}, ErrInvalidDataProvided
	}

	now := time.Now().UTC()
	note := models.Note{
		ID:        s.uuid.Generate(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		MemoDate:  memoDate,
		Tags:      s.buildTags(tagNames, now),
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.noteRepository.SaveNote(ctx, userID, note)
	if err != nil {
		log.Err(err).Str("func", "*noteService.CreateNote").Str("user_id", userID).Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	return saved, nil
}

// GetNotes returns one page of the user's notes with the total count.
func (s *noteService) GetNotes(ctx context.Context, userID string, page, itemsPerPage int) (int64, []models.Note, error) {
	log := logger.FromContext(ctx)

	if userID == "" || page < 1 || itemsPerPage < 1 {
		log.Error().
			Str("func", "*noteService.GetNotes").
			Str("user_id", userID).
			Int("page", page).
			Int("items_per_page", itemsPerPage).
			Msg("invalid listing parameters")
		return 0, nil, ErrInvalidDataProvided
	}

	total, notes, err := s.noteRepository.GetNotes(ctx, userID, page, itemsPerPage)
	if err != nil {
		log.Err(err).Str("func", "*noteService.GetNotes").Str("user_id", userID).Msg("note listing ended with error")
		return 0, nil, fmt.Errorf("note listing ended with error: %w", err)
	}

	return total, notes, nil
}

// GetNote fetches one note of the user. store.ErrNoteNotFound propagates
// wrapped, covering both a missing id and a note owned by someone else.
func (s *noteService) GetNote(ctx context.Context, userID, id string) (models.Note, error) {
	log := logger.FromContext(ctx)

	if userID == "" || id == "" {
		log.Error().Str("func", "*noteService.GetNote").Str("user_id", userID).Msg("no note id provided")
		return models.Note{}, ErrInvalidDataProvided
	}

	note, err := s.noteRepository.FindNoteByID(ctx, userID, id)
	if err != nil {
		log.Err(err).Str("func", "*noteService.GetNote").Str("user_id", userID).Str("note_id", id).Msg("note search ended with error")
		return models.Note{}, fmt.Errorf("note search ended with error: %w", err)
	}

	return note, nil
}

// UpdateNote replaces the note body and its whole tag set.
func (s *noteService) UpdateNote(ctx context.Context, userID, id, title, content, memoDate string, tagNames []string) (models.Note, error) {
	log := logger.FromContext(ctx)

	if userID == "" || id == "" || title == "" || content == "" || memoDate == "" {
		log.Error().Str("func", "*noteService.UpdateNote").Str("user_id", userID).Str("note_id", id).Msg("invalid note data provided")
		return models.Note{}, ErrInvalidDataProvided
	}

	note := models.Note{
		ID:       id,
		UserID:   userID,
		Title:    title,
		Content:  content,
		MemoDate: memoDate,
		Tags:     s.buildTags(tagNames, time.Now().UTC()),
	}

	updated, err := s.noteRepository.UpdateNote(ctx, userID, note)
	if err != nil {
		log.Err(err).Str("func", "*noteService.UpdateNote").Str("user_id", userID).Str("note_id", id).Msg("note update ended with error")
		return models.Note{}, fmt.Errorf("note update ended with error: %w", err)
	}

	return updated, nil
}

// DeleteNote removes the note and cleans up tags left without references.
func (s *noteService) DeleteNote(ctx context.Context, userID, id string) error {
	log := logger.FromContext(ctx)

	if userID == "" || id == "" {
		log.Error().Str("func", "*noteService.DeleteNote").Str("user_id", userID).Msg("no note id provided")
		return ErrInvalidDataProvided
	}

	if err := s.noteRepository.DeleteNote(ctx, userID, id); err != nil {
		log.Err(err).Str("func", "*noteService.DeleteNote").Str("user_id", userID).Str("note_id", id).Msg("note deletion ended with error")
		return fmt.Errorf("note deletion ended with error: %w", err)
	}

	return nil
}

// GetNotesByTagName returns one page of the user's notes carrying the named
// tag. An unknown tag yields an empty page with a zero total, not an error.
func (s *noteService) GetNotesByTagName(ctx context.Context, userID, tagName string, page, itemsPerPage int) (int64, []models.Note, error) {
	log := logger.FromContext(ctx)

	if userID == "" || tagName == "" || page < 1 || itemsPerPage < 1 {
		log.Error().
			Str("func", "*noteService.GetNotesByTagName").
			Str("user_id", userID).
			Str("tag_name", tagName).
			Msg("invalid listing parameters")
		return 0, nil, ErrInvalidDataProvided
	}

	total, notes, err := s.noteRepository.GetNotesByTagName(ctx, userID, tagName, page, itemsPerPage)
	if err != nil {
		log.Err(err).
			Str("func", "*noteService.GetNotesByTagName").
			Str("user_id", userID).
			Str("tag_name", tagName).
			Msg("tag-scoped listing ended with error")
		return 0, nil, fmt.Errorf("tag-scoped listing ended with error: %w", err)
	}

	return total, notes, nil
}

// buildTags maps raw tag names onto candidate tag rows with fresh ids and
// timestamps. The repository decides per name whether the candidate is
// inserted or an existing row wins.
func (s *noteService) buildTags(tagNames []string, now time.Time) []models.Tag {
	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tags = append(tags, models.Tag{
			ID:        s.uuid.Generate(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return tags
}
