package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createUser").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		log.Err(err).Str("func", "*Handler.createUser").Msg("invalid signup payload")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	user, err := h.services.UserService.CreateUser(ctx, req.Name, req.Email, req.Password, req.Memo)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Str("func", "*Handler.createUser").Msg("email already registered")
			http.Error(w, "email already registered", http.StatusConflict)
			return
		default:
			log.Err(err).Str("func", "*Handler.createUser").Msg("unexpected error occurred during user registration")
			http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
			return
		}
	}

	utils.WriteJSON(w, models.NewUserResponse(user), http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	// form-encoded credentials: username carries the email
	if err := r.ParseForm(); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("invalid form payload")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.services.UserService.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Str("func", "*Handler.login").Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword):
			log.Err(err).Str("func", "*Handler.login").Msg("no user was found/wrong password")
			http.Error(w, "invalid email/password", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Str("func", "*Handler.login").Msg("unexpected error occurred during user login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{
		AccessToken: token.SignedString,
		TokenType:   "bearer",
	}, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.updateUser").Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.updateUser").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		log.Err(err).Str("func", "*Handler.updateUser").Msg("invalid update payload")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	updated, err := h.services.UserService.UpdateUser(ctx, userID, models.UserUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateUser").Msg("error updating user")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.NewUserResponse(updated), http.StatusOK)
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	page, itemsPerPage, err := parsePagination(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getUsers").Msg("invalid pagination parameters")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	total, users, err := h.services.UserService.GetUsers(ctx, page, itemsPerPage)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getUsers").Msg("error listing users")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	response := models.GetUsersResponse{
		TotalCount: total,
		Page:       page,
		Users:      make([]models.UserResponse, 0, len(users)),
	}
	for _, user := range users {
		response.Users = append(response.Users, models.NewUserResponse(user))
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.deleteUser").Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.UserService.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteUser").Msg("error deleting user")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
