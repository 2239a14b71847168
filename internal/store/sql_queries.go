package store

import (
	"fmt"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/Masterminds/squirrel"
)

// psql is the shared squirrel statement builder configured for PostgreSQL
// positional placeholders ($1, $2, ...).
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const (
	userColumns = "id, name, email, password, memo, created_at, updated_at"
	noteColumns = "id, user_id, title, content, memo_date, created_at, updated_at"
	tagColumns  = "id, name, created_at, updated_at"
)

const (
	createUser = `INSERT INTO users (id, name, email, password, memo, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = $1;`

	emailTaken = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1);`

	countUsers = `SELECT count(*) FROM users;`

	deleteUser = `DELETE FROM users WHERE id = $1;`

	insertNote = `INSERT INTO notes (id, user_id, title, content, memo_date, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + noteColumns + `;`

	findNoteByID = `SELECT ` + noteColumns + `
    FROM notes
    WHERE user_id = $1 AND id = $2;`

	noteExists = `SELECT EXISTS (SELECT 1 FROM notes WHERE user_id = $1 AND id = $2);`

	countNotes = `SELECT count(*) FROM notes WHERE user_id = $1;`

	updateNote = `UPDATE notes
    SET title = $1, content = $2, memo_date = $3, updated_at = NOW()
    WHERE user_id = $4 AND id = $5
    RETURNING ` + noteColumns + `;`

	deleteNote = `DELETE FROM notes WHERE user_id = $1 AND id = $2;`

	findTagByName = `SELECT ` + tagColumns + `
    FROM tags
    WHERE name = $1;`

	insertTag = `INSERT INTO tags (id, name, created_at, updated_at)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + tagColumns + `;`

	attachTag = `INSERT INTO note_tag (note_id, tag_id) VALUES ($1, $2);`

	detachNoteTags = `DELETE FROM note_tag WHERE note_id = $1 RETURNING tag_id;`

	// The orphan sweep is deliberately scoped to the tags that were just
	// detached; a tag still referenced by any other note survives.
	deleteOrphanTags = `DELETE FROM tags
    WHERE id = ANY($1)
      AND NOT EXISTS (SELECT 1 FROM note_tag nt WHERE nt.tag_id = tags.id);`

	getTagsForNotes = `SELECT nt.note_id, t.id, t.name, t.created_at, t.updated_at
    FROM note_tag nt
    JOIN tags t ON t.id = nt.tag_id
    WHERE nt.note_id = ANY($1)
    ORDER BY t.name;`

	countNotesByTag = `SELECT count(*)
    FROM notes n
    JOIN note_tag nt ON nt.note_id = n.id
    WHERE n.user_id = $1 AND nt.tag_id = $2;`
)

// buildGetUsersQuery builds the paged user listing SELECT.
// Pages are 1-indexed; rows are ordered by id, which for UUIDv7 keys means
// creation order.
func buildGetUsersQuery(page, itemsPerPage int) (string, []any, error) {
	query, args, err := psql.
		Select(userColumns).
		From("users").
		OrderBy("id").
		Limit(uint64(itemsPerPage)).
		Offset(uint64((page - 1) * itemsPerPage)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateUserQuery builds the merge-patch UPDATE for a user: only the
// fields present in update produce SET clauses, so omitted fields keep their
// stored values. updated_at is always bumped.
func buildUpdateUserQuery(id string, update models.UserUpdate) (string, []any, error) {
	builder := psql.
		Update("users").
		Set("updated_at", squirrel.Expr("NOW()"))

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Password != nil {
		builder = builder.Set("password", *update.Password)
	}

	query, args, err := builder.
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildGetNotesQuery builds the paged note listing SELECT for one user.
func buildGetNotesQuery(userID string, page, itemsPerPage int) (string, []any, error) {
	query, args, err := psql.
		Select(noteColumns).
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id").
		Limit(uint64(itemsPerPage)).
		Offset(uint64((page - 1) * itemsPerPage)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildGetNotesByTagQuery builds the paged note listing SELECT for notes of
// one user that carry the given tag.
func buildGetNotesByTagQuery(userID, tagID string, page, itemsPerPage int) (string, []any, error) {
	query, args, err := psql.
		Select("n.id, n.user_id, n.title, n.content, n.memo_date, n.created_at, n.updated_at").
		From("notes n").
		Join("note_tag nt ON nt.note_id = n.id").
		Where(squirrel.Eq{"n.user_id": userID, "nt.tag_id": tagID}).
		OrderBy("n.id").
		Limit(uint64(itemsPerPage)).
		Offset(uint64((page - 1) * itemsPerPage)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
