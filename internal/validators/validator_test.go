package validators_test

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CreateUserRequest_Success(t *testing.T) {
	v := validators.New()

	req := models.CreateUserRequest{
		Name:     "John",
		Email:    "john@example.com",
		Password: "hunter2secret",
	}

	assert.NoError(t, v.Validate(req))
}

func TestValidate_CreateUserRequest_Errors(t *testing.T) {
	v := validators.New()

	tests := []struct {
		name      string
		req       models.CreateUserRequest
		wantField string
	}{
		{
			name:      "missing name",
			req:       models.CreateUserRequest{Email: "john@example.com", Password: "hunter2secret"},
			wantField: "name",
		},
		{
			name:      "invalid email",
			req:       models.CreateUserRequest{Name: "John", Email: "not-an-email", Password: "hunter2secret"},
			wantField: "email",
		},
		{
			name:      "short password",
			req:       models.CreateUserRequest{Name: "John", Email: "john@example.com", Password: "short"},
			wantField: "password",
		},
		{
			name:      "name too long",
			req:       models.CreateUserRequest{Name: strings.Repeat("x", 33), Email: "john@example.com", Password: "hunter2secret"},
			wantField: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.ErrorIs(t, err, validators.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestValidate_UpdateUserRequest_OptionalFields(t *testing.T) {
	v := validators.New()

	// nothing set: merge-patch with no fields is valid input
	assert.NoError(t, v.Validate(models.UpdateUserRequest{}))

	short := "short"
	err := v.Validate(models.UpdateUserRequest{Password: &short})
	require.ErrorIs(t, err, validators.ErrValidation)
	assert.Contains(t, err.Error(), "password")
}

func TestValidate_CreateNoteRequest(t *testing.T) {
	v := validators.New()

	valid := models.CreateNoteRequest{
		Title:    "groceries",
		Content:  "milk, eggs",
		MemoDate: "20260830",
		Tags:     []string{"food"},
	}
	assert.NoError(t, v.Validate(valid))

	badDate := valid
	badDate.MemoDate = "2026-08-30"
	err := v.Validate(badDate)
	require.ErrorIs(t, err, validators.ErrValidation)
	assert.Contains(t, err.Error(), "memo_date")

	emptyTag := valid
	emptyTag.Tags = []string{"food", ""}
	err = v.Validate(emptyTag)
	require.ErrorIs(t, err, validators.ErrValidation)
	assert.Contains(t, err.Error(), "tags")
}
