// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// UserResponse is the public representation of a [User].
// The stored credential never appears here.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse flattens a [User] into its transport shape.
func NewUserResponse(user User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Profile.Name,
		Email:     user.Profile.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// GetUsersResponse is one page of the administrative user listing.
type GetUsersResponse struct {
	// TotalCount is the number of rows in the whole users table,
	// not the number of entries in this page.
	TotalCount int64 `json:"total_count"`

	// Page is the 1-indexed page number that was requested.
	Page int `json:"page"`

	Users []UserResponse `json:"users"`
}

// GetNotesResponse is one page of a note listing.
type GetNotesResponse struct {
	// TotalCount is the number of notes matching the filter,
	// not the number of entries in this page.
	TotalCount int64 `json:"total_count"`

	// Page is the 1-indexed page number that was requested.
	Page int `json:"page"`

	Notes []Note `json:"notes"`
}

// LoginResponse is the body returned by POST /api/users/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
