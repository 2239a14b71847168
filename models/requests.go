// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CreateUserRequest is the JSON body of POST /api/users.
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=32"`
	Email    string  `json:"email" validate:"required,email,max=64"`
	Password string  `json:"password" validate:"required,min=8,max=32"`
	Memo     *string `json:"memo,omitempty" validate:"omitempty,max=256"`
}

// UpdateUserRequest is the JSON body of PUT /api/users.
// Merge-patch semantics: absent fields keep their stored values.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=32"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=32"`
}

// CreateNoteRequest is the JSON body of POST /api/notes.
type CreateNoteRequest struct {
	Title    string   `json:"title" validate:"required,max=64"`
	Content  string   `json:"content" validate:"required"`
	MemoDate string   `json:"memo_date" validate:"required,len=8"`
	Tags     []string `json:"tags" validate:"dive,required,max=64"`
}

// UpdateNoteRequest is the JSON body of PUT /api/notes/{id}.
// The tag set given here replaces the stored set wholesale.
type UpdateNoteRequest struct {
	Title    string   `json:"title" validate:"required,max=64"`
	Content  string   `json:"content" validate:"required"`
	MemoDate string   `json:"memo_date" validate:"required,len=8"`
	Tags     []string `json:"tags" validate:"dive,required,max=64"`
}
