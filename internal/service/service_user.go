// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// userService is the concrete implementation of UserService.
// It handles account creation, credential verification with JWT issuing,
// merge-patch updates, paged listing and deletion, using a UserRepository
// for persistence and bcrypt for password hashing.
type userService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// uuid issues time-ordered (v7) ids for new accounts.
	uuid utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// adminEmails holds the addresses granted the ADMIN role at login,
	// lowercased for case-insensitive matching.
	adminEmails map[string]struct{}

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewUserService constructs a UserService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewUserService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) UserService {
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		admins[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}

	return &userService{
		userRepository: userRepository,
		uuid:           utils.UUIDGenerator{},
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		adminEmails:    admins,
		logger:         logger,
	}
}

// CreateUser registers a new account.
//
// The email is probed for uniqueness up front, the password is hashed with
// bcrypt, and the account is persisted with a fresh time-ordered id.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided when name, email or password is empty.
//   - store.ErrEmailAlreadyExists when the email is already registered.
func (s *userService) CreateUser(ctx context.Context, name, email, password string, memo *string) (models.User, error) {
	log := logger.FromContext(ctx)

	if name == "" || email == "" || password == "" {
		log.Error().Str("func", "*userService.CreateUser").Str("email", email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	taken, err := s.userRepository.EmailTaken(ctx, email)
	if err != nil {
		log.Err(err).Str("func", "*userService.CreateUser").Str("email", email).Msg("email probe failed")
		return models.User{}, fmt.Errorf("email probe failed: %w", err)
	}
	if taken {
		log.Warn().Str("func", "*userService.CreateUser").Str("email", email).Msg("email already registered")
		return models.User{}, store.ErrEmailAlreadyExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Err(err).Str("func", "*userService.CreateUser").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        s.uuid.Generate(),
		Profile:   models.Profile{Name: name, Email: email},
		Password:  hash,
		Memo:      memo,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*userService.CreateUser").Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// Login authenticates the account by email and password and issues a signed
// JWT carrying the user id as subject and a role claim. Accounts whose email
// is configured as an administrator get the ADMIN role; everyone else USER.
//
// Returns:
//   - ErrInvalidDataProvided when email or password is empty.
//   - store.ErrUserNotFound (wrapped) when no account matches the email.
//   - ErrWrongPassword when the bcrypt comparison fails.
func (s *userService) Login(ctx context.Context, email, password string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("func", "*userService.Login").Str("email", email).Msg("invalid credentials provided")
		return models.Token{}, ErrInvalidDataProvided
	}

	found, err := s.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("func", "*userService.Login").Str("email", email).Msg("user search by email failed")
		return models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.VerifyPassword(found.Password, password) {
		log.Warn().
			Str("func", "*userService.Login").
			Str("id", found.ID).
			Str("email", email).
			Msg("wrong password")
		return models.Token{}, ErrWrongPassword
	}

	role := models.RoleUser
	if _, ok := s.adminEmails[strings.ToLower(found.Profile.Email)]; ok {
		role = models.RoleAdmin
	}

	token, err := utils.GenerateJWTToken(s.tokenIssuer, found.ID, role, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// the issuer claim and the role claim. Any validation failure (expired,
// wrong issuer, malformed) is normalised to ErrTokenIsExpiredOrInvalid so
// that callers do not need to inspect low-level JWT errors.
func (s *userService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// UpdateUser applies a merge-patch to the account: only fields present in
// update are written. A new password is bcrypt-hashed before it reaches the
// repository; the cleartext never leaves this method.
func (s *userService) UpdateUser(ctx context.Context, userID string, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		log.Error().Str("func", "*userService.UpdateUser").Msg("no user id provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if update.Password != nil {
		hash, err := utils.HashPassword(*update.Password)
		if err != nil {
			log.Err(err).Str("func", "*userService.UpdateUser").Str("id", userID).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
		update.Password = &hash
	}

	updated, err := s.userRepository.UpdateUser(ctx, userID, update)
	if err != nil {
		log.Err(err).Str("func", "*userService.UpdateUser").Str("id", userID).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	return updated, nil
}

// GetUsers returns one page of accounts together with the total count.
// Page and page size must be positive.
func (s *userService) GetUsers(ctx context.Context, page, itemsPerPage int) (int64, []models.User, error) {
	log := logger.FromContext(ctx)

	if page < 1 || itemsPerPage < 1 {
		log.Error().
			Str("func", "*userService.GetUsers").
			Int("page", page).
			Int("items_per_page", itemsPerPage).
			Msg("invalid pagination parameters")
		return 0, nil, ErrInvalidDataProvided
	}

	total, users, err := s.userRepository.GetUsers(ctx, page, itemsPerPage)
	if err != nil {
		log.Err(err).Str("func", "*userService.GetUsers").Msg("user listing ended with error")
		return 0, nil, fmt.Errorf("user listing ended with error: %w", err)
	}

	return total, users, nil
}

// DeleteUser removes the account. store.ErrUserNotFound propagates wrapped.
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	if userID == "" {
		log.Error().Str("func", "*userService.DeleteUser").Msg("no user id provided")
		return ErrInvalidDataProvided
	}

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Str("func", "*userService.DeleteUser").Str("id", userID).Msg("user deletion ended with error")
		return fmt.Errorf("user deletion ended with error: %w", err)
	}

	return nil
}
