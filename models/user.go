package models

import "time"

// Profile is the immutable identity part of a [User].
// Name and Email are fixed at registration time; Email additionally serves
// as the unique login identifier.
type Profile struct {
	// Name is the display name of the user (2–32 characters).
	Name string `json:"name"`

	// Email is the unique e-mail address of the user (max 64 characters).
	// It is immutable once the account is created.
	Email string `json:"email"`
}

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user. It is a UUIDv7, so ids are
	// time-ordered and sort in creation order.
	ID string `json:"id"`

	// Profile holds the immutable identity attributes (name, email).
	Profile Profile `json:"profile"`

	// Password stores the bcrypt hash of the user's password.
	// This value MUST be a hash, never plaintext.
	// It is never exposed via JSON.
	Password string `json:"-"`

	// Memo is an optional free-form note attached to the account.
	Memo *string `json:"memo,omitempty"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last account mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// UserUpdate is a merge-patch carrier for account mutation.
// Only non-nil fields are applied; everything else keeps its stored value.
// Email and ID are immutable and therefore have no place here.
type UserUpdate struct {
	// Name replaces the display name when non-nil.
	Name *string `json:"name,omitempty"`

	// Password replaces the stored credential when non-nil.
	// By the time a UserUpdate reaches the repository this value is
	// already a bcrypt hash.
	Password *string `json:"password,omitempty"`
}

// IsEmpty reports whether the update carries no fields to apply.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Password == nil
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
