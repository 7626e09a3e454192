package db

import (
	"database/sql"
	"strings"

	"github.com/jsperry/chordtab/internal/chord"
	"github.com/jsperry/chordtab/internal/errors"
	"github.com/jsperry/chordtab/internal/table"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.ChordtabError{
	Code:    "UNIQUE_CONSTRAINT",
	Status:  409,
	Message: "unique constraint violation",
}

// InsertTable stores a new table and its chord rows in one transaction.
func InsertTable(db *sql.DB, t *table.Table, chords []chord.Chord) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO tables (id, name_raw, name_norm, source, chord_count, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULL)
	`, t.ID, t.NameRaw, t.NameNorm, toNullString(strPtr(t.Source)), t.ChordCount, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	if err := insertChordsTx(tx, t.ID, chords); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ReplaceTable swaps the chord rows and metadata of an existing table,
// keeping its ID and created_at. Runs in one transaction.
func ReplaceTable(db *sql.DB, t *table.Table, chords []chord.Chord) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE tables
		SET name_raw = ?, source = ?, chord_count = ?, updated_at = ?, deleted_at = NULL
		WHERE id = ?
	`, t.NameRaw, toNullString(strPtr(t.Source)), t.ChordCount, t.UpdatedAt, t.ID)
	if err != nil {
		return errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if n == 0 {
		return errors.NewNotFound(t.ID)
	}

	if _, err := tx.Exec(`DELETE FROM chords WHERE table_id = ?`, t.ID); err != nil {
		return errors.NewInternal(err)
	}
	if err := insertChordsTx(tx, t.ID, chords); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// insertChordsTx inserts chord rows in file order.
func insertChordsTx(tx *sql.Tx, tableID string, chords []chord.Chord) error {
	stmt, err := tx.Prepare(`
		INSERT INTO chords (table_id, position, thumbs, fingers, output)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer stmt.Close()

	for i, c := range chords {
		_, err := stmt.Exec(tableID, i, toNullString(c.Thumbs), toNullString(c.Fingers), c.Output)
		if err != nil {
			return errors.NewInternal(err)
		}
	}
	return nil
}

// GetTableByID retrieves a table by its ULID.
// If includeDeleted is false, soft-deleted tables are excluded.
func GetTableByID(db *sql.DB, id string, includeDeleted bool) (*table.Table, error) {
	query := `
		SELECT id, name_raw, name_norm, source, chord_count, created_at, updated_at, deleted_at
		FROM tables
		WHERE id = ?
	`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	return scanTable(db.QueryRow(query, id))
}

// GetTableByName retrieves a table by normalized name.
func GetTableByName(db *sql.DB, nameNorm string, includeDeleted bool) (*table.Table, error) {
	query := `
		SELECT id, name_raw, name_norm, source, chord_count, created_at, updated_at, deleted_at
		FROM tables
		WHERE name_norm = ?
	`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	query += " ORDER BY updated_at DESC LIMIT 1"
	return scanTable(db.QueryRow(query, nameNorm))
}

// GetChords returns the chord rows of a table in stored order.
func GetChords(db *sql.DB, tableID string) ([]chord.Chord, error) {
	rows, err := db.Query(`
		SELECT thumbs, fingers, output
		FROM chords
		WHERE table_id = ?
		ORDER BY position
	`, tableID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	chords := []chord.Chord{}
	for rows.Next() {
		var thumbs, fingers sql.NullString
		var c chord.Chord
		if err := rows.Scan(&thumbs, &fingers, &c.Output); err != nil {
			return nil, errors.NewInternal(err)
		}
		if thumbs.Valid {
			v := thumbs.String
			c.Thumbs = &v
		}
		if fingers.Valid {
			v := fingers.String
			c.Fingers = &v
		}
		chords = append(chords, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return chords, nil
}

// ListTables returns table summaries ordered by most recently updated.
func ListTables(db *sql.DB, limit, offset int, includeDeleted bool) ([]table.Table, error) {
	query := `
		SELECT id, name_raw, name_norm, source, chord_count, created_at, updated_at, deleted_at
		FROM tables
	`
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY updated_at DESC LIMIT ? OFFSET ?"

	rows, err := db.Query(query, limit, offset)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	tables := []table.Table{}
	for rows.Next() {
		t, err := scanTableFromRows(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return tables, nil
}

// SoftDeleteTable marks a table deleted. Returns NotFound if no live row matched.
func SoftDeleteTable(db *sql.DB, id string, now int64) error {
	res, err := db.Exec(`
		UPDATE tables SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL
	`, now, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if n == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// PurgeDeleted permanently removes soft-deleted tables and their chords.
// If olderThan is non-nil, only tables deleted at or before it are purged.
// Returns the number of tables removed.
func PurgeDeleted(db *sql.DB, olderThan *int64) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	defer tx.Rollback()

	query := `SELECT id FROM tables WHERE deleted_at IS NOT NULL`
	args := []any{}
	if olderThan != nil {
		query += " AND deleted_at <= ?"
		args = append(args, *olderThan)
	}

	rows, err := tx.Query(query, args...)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, errors.NewInternal(err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, errors.NewInternal(err)
	}

	for _, id := range ids {
		if _, err := tx.Exec(`DELETE FROM chords WHERE table_id = ?`, id); err != nil {
			return 0, errors.NewInternal(err)
		}
		if _, err := tx.Exec(`DELETE FROM tables WHERE id = ?`, id); err != nil {
			return 0, errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.NewInternal(err)
	}
	return len(ids), nil
}

// scanner abstracts sql.Row and sql.Rows for table scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTable scans one table row, mapping sql.ErrNoRows to nil, nil.
func scanTable(row *sql.Row) (*table.Table, error) {
	t, err := scanTableInto(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// scanTableFromRows scans the current row of a result set.
func scanTableFromRows(rows *sql.Rows) (*table.Table, error) {
	return scanTableInto(rows)
}

func scanTableInto(s rowScanner) (*table.Table, error) {
	var t table.Table
	var source sql.NullString
	var deletedAt sql.NullInt64

	err := s.Scan(&t.ID, &t.NameRaw, &t.NameNorm, &source, &t.ChordCount, &t.CreatedAt, &t.UpdatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	if source.Valid {
		t.Source = source.String
	}
	if deletedAt.Valid {
		v := deletedAt.Int64
		t.DeletedAt = &v
	}
	return &t, nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func strPtr(s string) *string {
	return &s
}
