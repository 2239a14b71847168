package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// It executes all note CRUD operations against the "notes" table and manages
// the note↔tag association ("note_tag") together with tag lifecycle
// (find-or-create by unique name, orphan cleanup on detach).
//
// Every mutation runs inside a single transaction: begin, defer rollback,
// commit on success. Reads execute directly on the shared handle.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, note_id, tag names, etc.).
type noteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

// querier is the subset of database operations shared by *sql.DB and
// *sql.Tx, letting row-scanning helpers run both inside and outside a
// transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// GetNotes returns the total note count of the given user together with one
// page of notes ordered by id, tags eagerly loaded. Pages are 1-indexed; an
// out-of-range page yields an empty slice and the accurate total.
func (r *noteRepository) GetNotes(ctx context.Context, userID string, page, itemsPerPage int) (int64, []models.Note, error) {
	log := logger.FromContext(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countNotes, userID).Scan(&total); err != nil {
		log.Err(err).
			Str("func", "*noteRepository.GetNotes").
			Str("user_id", userID).
			Msg("failed to count notes")
		return 0, nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := buildGetNotesQuery(userID, page, itemsPerPage)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.GetNotes").
			Str("user_id", userID).
			Msg("failed to build listing query")
		return 0, nil, err
	}

	notes, err := r.queryNotes(ctx, r.db, query, args...)
	if err != nil {
		return 0, nil, err
	}

	if err := r.loadTags(ctx, r.db, notes); err != nil {
		return 0, nil, err
	}

	return total, notes, nil
}

// FindNoteByID retrieves a single note of the given user, tags included.
// Returns [ErrNoteNotFound] when no row matches.
func (r *noteRepository) FindNoteByID(ctx context.Context, userID, id string) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := r.scanNoteRow(r.db.QueryRowContext(ctx, findNoteByID, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "*noteRepository.FindNoteByID").
			Str("user_id", userID).
			Str("note_id", id).
			Msg("failed to scan note row")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	notes := []models.Note{note}
	if err := r.loadTags(ctx, r.db, notes); err != nil {
		return models.Note{}, err
	}

	return notes[0], nil
}

// SaveNote persists a new note with its initial tag set.
//
// Each requested tag is resolved by unique name: an existing tag row is
// reused, a missing one is created (find-or-create). Repeated names in the
// request resolve to a single row. The whole operation — tag resolution,
// note insert, attachments — commits or rolls back atomically.
func (r *noteRepository) SaveNote(ctx context.Context, userID string, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.SaveNote").
			Str("user_id", userID).
			Msg("failed to begin transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	tags, err := r.resolveTags(ctx, tx, note.Tags)
	if err != nil {
		return models.Note{}, err
	}

	saved, err := r.scanNoteRow(tx.QueryRowContext(ctx, insertNote,
		note.ID, userID, note.Title, note.Content, note.MemoDate, note.CreatedAt, note.UpdatedAt))
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.SaveNote").
			Str("user_id", userID).
			Str("note_id", note.ID).
			Msg("failed to insert note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := r.attachTags(ctx, tx, saved.ID, tags); err != nil {
		return models.Note{}, err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "*noteRepository.SaveNote").
			Str("note_id", note.ID).
			Msg("failed to commit transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrCommittingTransaction, commitErr)
	}

	saved.Tags = tags
	return saved, nil
}

// UpdateNote replaces the stored note body and tag set with the given ones.
//
// The stored tag set is first detached in full and swept for orphans, then
// the body columns are updated and the new tag set is resolved
// (find-or-create) and reattached — the original delete-then-reattach
// semantics, executed inside one transaction.
//
// Returns [ErrNoteNotFound] when the note does not exist for this user.
func (r *noteRepository) UpdateNote(ctx context.Context, userID string, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.UpdateNote").
			Str("user_id", userID).
			Msg("failed to begin transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := r.detachAndSweep(ctx, tx, userID, note.ID); err != nil {
		return models.Note{}, err
	}

	updated, err := r.scanNoteRow(tx.QueryRowContext(ctx, updateNote,
		note.Title, note.Content, note.MemoDate, userID, note.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "*noteRepository.UpdateNote").
			Str("user_id", userID).
			Str("note_id", note.ID).
			Msg("failed to execute update query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	tags, err := r.resolveTags(ctx, tx, note.Tags)
	if err != nil {
		return models.Note{}, err
	}

	if err := r.attachTags(ctx, tx, updated.ID, tags); err != nil {
		return models.Note{}, err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "*noteRepository.UpdateNote").
			Str("note_id", note.ID).
			Msg("failed to commit transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrCommittingTransaction, commitErr)
	}

	updated.Tags = tags
	return updated, nil
}

// DeleteNote removes the note with the given id after detaching its tags
// and sweeping the detached tags for orphans.
//
// Returns [ErrNoteNotFound] when the note does not exist for this user.
func (r *noteRepository) DeleteNote(ctx context.Context, userID, id string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.DeleteNote").
			Str("user_id", userID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := r.detachAndSweep(ctx, tx, userID, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, deleteNote, userID, id); err != nil {
		log.Err(err).
			Str("func", "*noteRepository.DeleteNote").
			Str("user_id", userID).
			Str("note_id", id).
			Msg("failed to execute delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "*noteRepository.DeleteNote").
			Str("note_id", id).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, commitErr)
	}

	return nil
}

// DeleteNoteTags detaches every tag from the note and deletes any detached
// tag left with zero note references.
//
// Returns [ErrNoteNotFound] when the note does not exist for this user.
func (r *noteRepository) DeleteNoteTags(ctx context.Context, userID, id string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.DeleteNoteTags").
			Str("user_id", userID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := r.detachAndSweep(ctx, tx, userID, id); err != nil {
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "*noteRepository.DeleteNoteTags").
			Str("note_id", id).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, commitErr)
	}

	return nil
}

// GetNotesByTagName resolves the tag by unique name and returns one page of
// the user's notes carrying it, plus the total match count.
//
// An unknown tag name is not an error: the result is (0, nil, nil).
func (r *noteRepository) GetNotesByTagName(ctx context.Context, userID, tagName string, page, itemsPerPage int) (int64, []models.Note, error) {
	log := logger.FromContext(ctx)

	var tag models.Tag
	row := r.db.QueryRowContext(ctx, findTagByName, tagName)
	if err := row.Scan(&tag.ID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, nil
		}

		log.Err(err).
			Str("func", "*noteRepository.GetNotesByTagName").
			Str("tag_name", tagName).
			Msg("failed to resolve tag by name")
		return 0, nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countNotesByTag, userID, tag.ID).Scan(&total); err != nil {
		log.Err(err).
			Str("func", "*noteRepository.GetNotesByTagName").
			Str("user_id", userID).
			Str("tag_name", tagName).
			Msg("failed to count notes by tag")
		return 0, nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := buildGetNotesByTagQuery(userID, tag.ID, page, itemsPerPage)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.GetNotesByTagName").
			Str("user_id", userID).
			Msg("failed to build listing query")
		return 0, nil, err
	}

	notes, err := r.queryNotes(ctx, r.db, query, args...)
	if err != nil {
		return 0, nil, err
	}

	if err := r.loadTags(ctx, r.db, notes); err != nil {
		return 0, nil, err
	}

	return total, notes, nil
}

// detachAndSweep removes every note_tag row of the note and deletes the
// detached tags that are no longer referenced by any note. The sweep is
// scoped to the detached tag ids only — never the whole tags table.
//
// Returns [ErrNoteNotFound] when the note does not exist for this user.
func (r *noteRepository) detachAndSweep(ctx context.Context, tx *sql.Tx, userID, noteID string) error {
	log := logger.FromContext(ctx)

	var exists bool
	if err := tx.QueryRowContext(ctx, noteExists, userID, noteID).Scan(&exists); err != nil {
		log.Err(err).
			Str("func", "*noteRepository.detachAndSweep").
			Str("user_id", userID).
			Str("note_id", noteID).
			Msg("failed to probe note existence")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if !exists {
		log.Warn().
			Str("func", "*noteRepository.detachAndSweep").
			Str("user_id", userID).
			Str("note_id", noteID).
			Msg("note not found")
		return ErrNoteNotFound
	}

	rows, err := tx.QueryContext(ctx, detachNoteTags, noteID)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.detachAndSweep").
			Str("note_id", noteID).
			Msg("failed to detach tags")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	defer rows.Close()

	detached := make([]string, 0, 8)
	for rows.Next() {
		var tagID string
		if scanErr := rows.Scan(&tagID); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*noteRepository.detachAndSweep").
				Str("note_id", noteID).
				Msg("failed to scan detached tag id")
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		detached = append(detached, tagID)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*noteRepository.detachAndSweep").
			Str("note_id", noteID).
			Msg("error occurred during rows iteration")
		return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	if len(detached) == 0 {
		return nil
	}

	if _, err := tx.ExecContext(ctx, deleteOrphanTags, detached); err != nil {
		log.Err(err).
			Str("func", "*noteRepository.detachAndSweep").
			Str("note_id", noteID).
			Int("detached_count", len(detached)).
			Msg("failed to sweep orphan tags")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Debug().
		Str("func", "*noteRepository.detachAndSweep").
		Str("note_id", noteID).
		Int("detached_count", len(detached)).
		Msg("detached tags and swept orphans")

	return nil
}

// resolveTags maps requested tags to persisted tag rows by unique name.
// An existing row wins over the incoming value; a missing one is inserted
// with the incoming id and timestamps. Repeated names collapse into one row.
func (r *noteRepository) resolveTags(ctx context.Context, tx *sql.Tx, requested []models.Tag) ([]models.Tag, error) {
	log := logger.FromContext(ctx)

	resolved := make([]models.Tag, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))

	for _, tag := range requested {
		if _, ok := seen[tag.Name]; ok {
			continue
		}
		seen[tag.Name] = struct{}{}

		var existing models.Tag
		err := tx.QueryRowContext(ctx, findTagByName, tag.Name).
			Scan(&existing.ID, &existing.Name, &existing.CreatedAt, &existing.UpdatedAt)
		if err == nil {
			resolved = append(resolved, existing)
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).
				Str("func", "*noteRepository.resolveTags").
				Str("tag_name", tag.Name).
				Msg("failed to look up tag by name")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		var created models.Tag
		err = tx.QueryRowContext(ctx, insertTag, tag.ID, tag.Name, tag.CreatedAt, tag.UpdatedAt).
			Scan(&created.ID, &created.Name, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			log.Err(err).
				Str("func", "*noteRepository.resolveTags").
				Str("tag_name", tag.Name).
				Msg("failed to insert tag")
			return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		resolved = append(resolved, created)
	}

	return resolved, nil
}

// attachTags inserts one note_tag association row per resolved tag.
func (r *noteRepository) attachTags(ctx context.Context, tx *sql.Tx, noteID string, tags []models.Tag) error {
	log := logger.FromContext(ctx)

	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx, attachTag, noteID, tag.ID); err != nil {
			log.Err(err).
				Str("func", "*noteRepository.attachTags").
				Str("note_id", noteID).
				Str("tag_id", tag.ID).
				Msg("failed to attach tag")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

// queryNotes executes a note SELECT and scans the full result set.
func (r *noteRepository) queryNotes(ctx context.Context, q querier, query string, args ...any) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.queryNotes").Msg("failed to execute listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 16)
	for rows.Next() {
		var note models.Note
		scanErr := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.MemoDate, &note.CreatedAt, &note.UpdatedAt)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*noteRepository.queryNotes").Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*noteRepository.queryNotes").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return notes, nil
}

// scanNoteRow scans a single note row. Tag loading is the caller's concern.
func (r *noteRepository) scanNoteRow(row *sql.Row) (models.Note, error) {
	var note models.Note
	err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.MemoDate, &note.CreatedAt, &note.UpdatedAt)
	return note, err
}

// loadTags populates Tags for every note in the slice with one query over
// the note_tag association, ordered by tag name.
func (r *noteRepository) loadTags(ctx context.Context, q querier, notes []models.Note) error {
	log := logger.FromContext(ctx)

	if len(notes) == 0 {
		return nil
	}

	ids := make([]string, 0, len(notes))
	index := make(map[string]int, len(notes))
	for i := range notes {
		notes[i].Tags = make([]models.Tag, 0, 4)
		ids = append(ids, notes[i].ID)
		index[notes[i].ID] = i
	}

	rows, err := q.QueryContext(ctx, getTagsForNotes, ids)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.loadTags").
			Int("notes_count", len(notes)).
			Msg("failed to load tags for notes")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var noteID string
		var tag models.Tag
		if scanErr := rows.Scan(&noteID, &tag.ID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt); scanErr != nil {
			log.Err(scanErr).Str("func", "*noteRepository.loadTags").Msg("failed to scan tag row")
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if i, ok := index[noteID]; ok {
			notes[i].Tags = append(notes[i].Tags, tag)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*noteRepository.loadTags").Msg("error occurred during rows iteration")
		return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return nil
}
