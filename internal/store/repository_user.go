package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, merge-patch updates, paged listing
// and deletion against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → wrapped as [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.ID, user.Profile.Name, user.Profile.Email, user.Password, user.Memo, user.CreatedAt, user.UpdatedAt)

	var saved models.User
	if err := row.Scan(&saved.ID, &saved.Profile.Name, &saved.Profile.Email, &saved.Password, &saved.Memo, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return saved, nil
}

// FindUserByEmail retrieves the user record whose email matches the given
// value. Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, findUserByEmail, email)
}

// FindUserByID retrieves the user record with the given id.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findUser(ctx, findUserByID, id)
}

func (r *userRepository) findUser(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Scan(&found.ID, &found.Profile.Name, &found.Profile.Email, &found.Password, &found.Memo, &found.CreatedAt, &found.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.findUser").Msg("error: scanning user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// EmailTaken reports whether a user with the given email already exists.
// It is the explicit probe used during signup instead of a not-found error
// on a lookup.
func (r *userRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	log := logger.FromContext(ctx)

	var taken bool
	if err := r.db.QueryRowContext(ctx, emailTaken, email).Scan(&taken); err != nil {
		log.Err(err).Str("func", "*userRepository.EmailTaken").Str("email", email).Msg("failed to probe email")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return taken, nil
}

// UpdateUser applies a merge-patch update to the user with the given id:
// only fields present in update are written, everything else keeps its
// stored value. updated_at is always bumped.
//
// When update carries no fields the current row is returned unchanged.
// Returns [ErrUserNotFound] when no row matches the id.
func (r *userRepository) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		log.Warn().
			Str("func", "*userRepository.UpdateUser").
			Str("id", id).
			Msg("no fields to update, returning stored row")
		return r.FindUserByID(ctx, id)
	}

	query, args, err := buildUpdateUserQuery(id, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Str("id", id).Msg("failed to build update query")
		return models.User{}, err
	}

	var updated models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&updated.ID, &updated.Profile.Name, &updated.Profile.Email, &updated.Password, &updated.Memo, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().Str("func", "*userRepository.UpdateUser").Str("id", id).Msg("user not found")
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.UpdateUser").Str("id", id).Msg("failed to execute update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

// GetUsers returns the total row count of the users table together with one
// page of users ordered by id. Pages are 1-indexed; an out-of-range page
// yields an empty slice and the accurate total.
func (r *userRepository) GetUsers(ctx context.Context, page, itemsPerPage int) (int64, []models.User, error) {
	log := logger.FromContext(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countUsers).Scan(&total); err != nil {
		log.Err(err).Str("func", "*userRepository.GetUsers").Msg("failed to count users")
		return 0, nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := buildGetUsersQuery(page, itemsPerPage)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetUsers").Msg("failed to build listing query")
		return 0, nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.GetUsers").
			Int("page", page).
			Int("items_per_page", itemsPerPage).
			Msg("failed to execute listing query")
		return 0, nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, itemsPerPage)

	for rows.Next() {
		var user models.User

		scanErr := rows.Scan(&user.ID, &user.Profile.Name, &user.Profile.Email, &user.Password, &user.Memo, &user.CreatedAt, &user.UpdatedAt)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.GetUsers").Msg("failed to scan user row")
			return 0, nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*userRepository.GetUsers").Msg("error occurred during rows iteration")
		return 0, nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return total, users, nil
}

// DeleteUser removes the user with the given id.
// Returns [ErrUserNotFound] when no row was deleted.
func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteUser, id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Str("id", id).Msg("failed to execute delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Str("id", id).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		log.Warn().Str("func", "*userRepository.DeleteUser").Str("id", id).Msg("user not found")
		return ErrUserNotFound
	}

	return nil
}
