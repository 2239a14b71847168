package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(user models.User) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"id", "name", "email", "password", "memo", "created_at", "updated_at"}).
		AddRow(user.ID, user.Profile.Name, user.Profile.Email, user.Password, user.Memo, user.CreatedAt, user.UpdatedAt)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	user := models.User{
		ID:        "0191c0a4-7b1e-7000-8000-000000000001",
		Profile:   models.Profile{Name: "John", Email: "john@example.com"},
		Password:  "hash",
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, user.Profile.Name, user.Profile.Email, user.Password, user.Memo, user.CreatedAt, user.UpdatedAt).
		WillReturnRows(userRows(user))

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != user.ID {
		t.Errorf("expected id %s, got %s", user.ID, created.ID)
	}
	if created.Profile.Email != user.Profile.Email {
		t.Errorf("expected email %s, got %s", user.Profile.Email, created.Profile.Email)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Profile: models.Profile{Email: "john@example.com"}}

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Profile: models.Profile{Email: "john@example.com"}}

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, user)
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	user := models.User{
		ID:        "0191c0a4-7b1e-7000-8000-000000000001",
		Profile:   models.Profile{Name: "John", Email: "john@example.com"},
		Password:  "hash",
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery("SELECT id, name, email").
		WithArgs("john@example.com").
		WillReturnRows(userRows(user))

	found, err := repo.FindUserByEmail(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Profile.Email != "john@example.com" {
		t.Errorf("expected email john@example.com, got %s", found.Profile.Email)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, name, email").
		WithArgs("john@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(ctx, "john@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, name, email").
		WithArgs("missing-id").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(ctx, "missing-id")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestEmailTaken(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("john@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.EmailTaken(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !taken {
		t.Error("expected email to be reported as taken")
	}
}

func TestUpdateUser_MergePatch(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	newName := "Johnny"
	user := models.User{
		ID:        "0191c0a4-7b1e-7000-8000-000000000001",
		Profile:   models.Profile{Name: newName, Email: "john@example.com"},
		Password:  "hash",
		CreatedAt: now,
		UpdatedAt: now,
	}

	// only updated_at and name appear in the statement
	mock.ExpectQuery("UPDATE users SET updated_at = NOW\\(\\), name = \\$1 WHERE id = \\$2 RETURNING").
		WithArgs(newName, user.ID).
		WillReturnRows(userRows(user))

	updated, err := repo.UpdateUser(ctx, user.ID, models.UserUpdate{Name: &newName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Profile.Name != newName {
		t.Errorf("expected name %s, got %s", newName, updated.Profile.Name)
	}
}

func TestUpdateUser_EmptyPatchReturnsStoredRow(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	user := models.User{
		ID:        "0191c0a4-7b1e-7000-8000-000000000001",
		Profile:   models.Profile{Name: "John", Email: "john@example.com"},
		Password:  "hash",
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery("SELECT id, name, email").
		WithArgs(user.ID).
		WillReturnRows(userRows(user))

	got, err := repo.UpdateUser(ctx, user.ID, models.UserUpdate{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Profile.Name != "John" {
		t.Errorf("expected stored row back, got name %s", got.Profile.Name)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	newName := "Johnny"

	mock.ExpectQuery("UPDATE users").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateUser(ctx, "missing-id", models.UserUpdate{Name: &newName})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUsers_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	rows := sqlmock.
		NewRows([]string{"id", "name", "email", "password", "memo", "created_at", "updated_at"}).
		AddRow("id-1", "John", "john@example.com", "hash", nil, now, now).
		AddRow("id-2", "Jane", "jane@example.com", "hash", nil, now, now)

	mock.ExpectQuery("SELECT id, name, email").
		WillReturnRows(rows)

	total, users, err := repo.GetUsers(ctx, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 12 {
		t.Errorf("expected total 12, got %d", total)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[1].Profile.Email != "jane@example.com" {
		t.Errorf("unexpected second user: %+v", users[1])
	}
}

func TestGetUsers_EmptyPage(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectQuery("SELECT id, name, email").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "memo", "created_at", "updated_at"}))

	total, users, err := repo.GetUsers(ctx, 99, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
	if len(users) != 0 {
		t.Errorf("expected empty page, got %d users", len(users))
	}
}

func TestDeleteUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM users").
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteUser(ctx, "id-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM users").
		WithArgs("missing-id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteUser(ctx, "missing-id")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
