package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPage         = 1
	defaultItemsPerPage = 10
)

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.createNote").Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("invalid note payload")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	note, err := h.services.NoteService.CreateNote(ctx, userID, req.Title, req.Content, req.MemoDate, req.Tags)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("error creating note")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

func (h *Handler) getNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.getNotes").Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	page, itemsPerPage, err := parsePagination(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNotes").Msg("invalid pagination parameters")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	total, notes, err := h.services.NoteService.GetNotes(ctx, userID, page, itemsPerPage)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNotes").Msg("error listing notes")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.GetNotesResponse{
		TotalCount: total,
		Page:       page,
		Notes:      notes,
	}, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.getNote").Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	note, err := h.services.NoteService.GetNote(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNote").Msg("error fetching note")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.updateNote").Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("invalid note payload")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	note, err := h.services.NoteService.UpdateNote(ctx, userID, chi.URLParam(r, "id"), req.Title, req.Content, req.MemoDate, req.Tags)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("error updating note")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.deleteNote").Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.NoteService.DeleteNote(ctx, userID, chi.URLParam(r, "id")); err != nil {
		log.Err(err).Str("func", "*Handler.deleteNote").Msg("error deleting note")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getNotesByTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.getNotesByTag").Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	page, itemsPerPage, err := parsePagination(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNotesByTag").Msg("invalid pagination parameters")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	total, notes, err := h.services.NoteService.GetNotesByTagName(ctx, userID, chi.URLParam(r, "name"), page, itemsPerPage)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNotesByTag").Msg("error listing notes by tag")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	if notes == nil {
		notes = []models.Note{}
	}

	utils.WriteJSON(w, models.GetNotesResponse{
		TotalCount: total,
		Page:       page,
		Notes:      notes,
	}, http.StatusOK)
}

// parsePagination reads the optional "page" and "items_per_page" query
// parameters, falling back to the defaults when absent. Both must be
// positive integers.
func parsePagination(r *http.Request) (int, int, error) {
	page := defaultPage
	itemsPerPage := defaultItemsPerPage

	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, fmt.Errorf("invalid `page` parameter: %q", raw)
		}
		page = parsed
	}

	if raw := r.URL.Query().Get("items_per_page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, fmt.Errorf("invalid `items_per_page` parameter: %q", raw)
		}
		itemsPerPage = parsed
	}

	return page, itemsPerPage, nil
}
