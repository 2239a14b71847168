package store

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-note-keeper/models"
)

func TestBuildUpdateUserQuery_NameOnly(t *testing.T) {
	name := "Johnny"

	query, args, err := buildUpdateUserQuery("id-1", models.UserUpdate{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "UPDATE users SET updated_at = NOW(), name = $1 WHERE id = $2 RETURNING " + userColumns
	if query != want {
		t.Errorf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 2 || args[0] != name || args[1] != "id-1" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildUpdateUserQuery_BothFields(t *testing.T) {
	name := "Johnny"
	password := "new-hash"

	query, args, err := buildUpdateUserQuery("id-1", models.UserUpdate{Name: &name, Password: &password})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "name = $1") || !strings.Contains(query, "password = $2") {
		t.Errorf("expected both SET clauses, got: %s", query)
	}
	if len(args) != 3 {
		t.Errorf("expected 3 args, got %v", args)
	}
}

func TestBuildGetUsersQuery_Pagination(t *testing.T) {
	query, args, err := buildGetUsersQuery(3, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "LIMIT 10") || !strings.Contains(query, "OFFSET 20") {
		t.Errorf("expected third page of ten, got: %s", query)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildGetNotesByTagQuery(t *testing.T) {
	query, args, err := buildGetNotesByTagQuery("user-1", "tag-1", 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "JOIN note_tag nt ON nt.note_id = n.id") {
		t.Errorf("expected association join, got: %s", query)
	}
	if !strings.Contains(query, "LIMIT 5") || !strings.Contains(query, "OFFSET 0") {
		t.Errorf("expected first page of five, got: %s", query)
	}
	if len(args) != 2 {
		t.Errorf("expected user and tag args, got %v", args)
	}
}
