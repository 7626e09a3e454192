package ops

import (
	"database/sql"

	"github.com/jsperry/chordtab/internal/chord"
	"github.com/jsperry/chordtab/internal/db"
	"github.com/jsperry/chordtab/internal/errors"
	"github.com/jsperry/chordtab/internal/table"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID             string // addressing mode 1
	Name           string // addressing mode 2
	IncludeDeleted bool
	IncludeChords  *bool // default: true
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	TableSummary
	Chords []chord.Chord `json:"chords,omitempty"`
}

// Fetch retrieves a stored table by id or name.
func Fetch(database *sql.DB, input FetchInput) (*FetchOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	t, err := lookupTable(database, addr, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	out := &FetchOutput{TableSummary: summarize(t)}

	includeChords := true
	if input.IncludeChords != nil {
		includeChords = *input.IncludeChords
	}
	if includeChords {
		chords, err := db.GetChords(database, t.ID)
		if err != nil {
			return nil, err
		}
		out.Chords = chords
	}

	return out, nil
}

// lookupTable resolves an address to a stored table, mapping misses to NotFound.
func lookupTable(database *sql.DB, addr *Address, includeDeleted bool) (*table.Table, error) {
	var t *table.Table
	var err error
	var identifier string

	if addr.ByID {
		identifier = addr.ID
		t, err = db.GetTableByID(database, addr.ID, includeDeleted)
	} else {
		identifier = addr.Name
		t, err = db.GetTableByName(database, addr.Name, includeDeleted)
	}
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFound(identifier)
	}
	return t, nil
}
