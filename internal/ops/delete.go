package ops

import (
	"database/sql"
	"time"

	"github.com/jsperry/chordtab/internal/db"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID   string
	Name string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	ID        string `json:"id"`
	DeletedAt int64  `json:"deleted_at"`
}

// Delete soft-deletes a table. The chord rows stay until purge.
func Delete(database *sql.DB, input DeleteInput) (*DeleteOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	t, err := lookupTable(database, addr, false)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	if err := db.SoftDeleteTable(database, t.ID, now); err != nil {
		return nil, err
	}

	return &DeleteOutput{ID: t.ID, DeletedAt: now}, nil
}
