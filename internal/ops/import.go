package ops

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jsperry/chordtab/internal/config"
	"github.com/jsperry/chordtab/internal/db"
	"github.com/jsperry/chordtab/internal/errors"
	"github.com/jsperry/chordtab/internal/table"
)

// ImportMode controls collision behavior during import.
type ImportMode string

const (
	ImportModeError   ImportMode = "error"   // default: fail on name collision
	ImportModeReplace ImportMode = "replace" // overwrite existing table
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string     // required, CSV chord table
	Name string     // optional, default: file name without extension
	Mode ImportMode // default: error
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ChordCount int    `json:"chord_count"`
	Replaced   bool   `json:"replaced"`
	ImportedAt int64  `json:"imported_at"`
}

// Import decodes a chord table CSV and stores it in the library.
// Decoding is all-or-nothing: one malformed row fails the whole import.
func Import(database *sql.DB, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Mode == "" {
		input.Mode = ImportModeError
	}
	if input.Mode != ImportModeError && input.Mode != ImportModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: error, replace")
	}

	if err := ValidatePath(input.Path, PathCheckRead, ".csv", cfg); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	chords, err := table.Decode(file)
	if err != nil {
		return nil, err
	}
	if cfg != nil && cfg.MaxTableRows > 0 && len(chords) > cfg.MaxTableRows {
		return nil, errors.NewInvalidRequest(
			fmt.Sprintf("table has %d rows (max %d)", len(chords), cfg.MaxTableRows))
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		base := filepath.Base(input.Path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	nameNorm := table.Normalize(name)
	if nameNorm == "" {
		return nil, errors.NewInvalidRequest("name must not be empty")
	}

	now := time.Now().Unix()

	existing, err := db.GetTableByName(database, nameNorm, false)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if input.Mode == ImportModeError {
			return nil, errors.NewNameAlreadyExists(name)
		}
		replaced := &table.Table{
			ID:         existing.ID,
			NameRaw:    name,
			NameNorm:   nameNorm,
			Source:     input.Path,
			ChordCount: len(chords),
			CreatedAt:  existing.CreatedAt,
			UpdatedAt:  now,
		}
		if err := db.ReplaceTable(database, replaced, chords); err != nil {
			return nil, err
		}
		return &ImportOutput{
			ID:         existing.ID,
			Name:       name,
			ChordCount: len(chords),
			Replaced:   true,
			ImportedAt: now,
		}, nil
	}

	id, err := newULID()
	if err != nil {
		return nil, err
	}
	t := &table.Table{
		ID:         id,
		NameRaw:    name,
		NameNorm:   nameNorm,
		Source:     input.Path,
		ChordCount: len(chords),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := db.InsertTable(database, t, chords); err != nil {
		if err == db.ErrUniqueConstraint {
			return nil, errors.NewNameAlreadyExists(name)
		}
		return nil, err
	}

	return &ImportOutput{
		ID:         id,
		Name:       name,
		ChordCount: len(chords),
		ImportedAt: now,
	}, nil
}

// newULID generates a new ULID for a table.
func newULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return id.String(), nil
}
