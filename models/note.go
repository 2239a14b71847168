package models

import "time"

// Note is a user-owned text record with an attached set of tags.
// A note is visible only to the user identified by UserID; every repository
// operation filters by that owner.
type Note struct {
	// ID is the unique identifier of the note (UUIDv7).
	ID string `json:"id"`

	// UserID references the owning user. Notes never change owners.
	UserID string `json:"user_id"`

	// Title is a short caption (max 64 characters).
	Title string `json:"title"`

	// Content is the note body.
	Content string `json:"content"`

	// MemoDate is an 8-character date code (e.g. "20260830") chosen by the
	// client; it is stored verbatim and never interpreted by the server.
	MemoDate string `json:"memo_date"`

	// Tags is the set of tags attached to the note. On update the set is
	// replaced wholesale, never diffed.
	Tags []Tag `json:"tags"`

	// CreatedAt is the timestamp when the note was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last note mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// Tag is a label shared between notes through the note_tag association
// table. Tag names are globally unique; a tag referenced by zero notes is
// an orphan and is removed whenever a note's tag set is modified.
type Tag struct {
	// ID is the unique identifier of the tag (UUIDv7).
	ID string `json:"id"`

	// Name is the unique tag name (max 64 characters).
	Name string `json:"name"`

	// CreatedAt is the timestamp when the tag was first referenced.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last tag mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// TableName returns the name of the database table
// associated with the Tag model.
func (t Tag) TableName() string {
	return "tags"
}
