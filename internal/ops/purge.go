package ops

import (
	"database/sql"
	"time"

	"github.com/jsperry/chordtab/internal/db"
	"github.com/jsperry/chordtab/internal/errors"
)

// PurgeInput contains parameters for the Purge operation.
type PurgeInput struct {
	OlderThanDays *int // only purge tables deleted more than N days ago
}

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	Purged int `json:"purged"`
}

// Purge permanently removes soft-deleted tables and their chord rows.
func Purge(database *sql.DB, input PurgeInput) (*PurgeOutput, error) {
	var cutoff *int64
	if input.OlderThanDays != nil {
		days := *input.OlderThanDays
		if days < 0 {
			return nil, errors.NewInvalidRequest("older_than_days must not be negative")
		}
		c := time.Now().AddDate(0, 0, -days).Unix()
		cutoff = &c
	}

	purged, err := db.PurgeDeleted(database, cutoff)
	if err != nil {
		return nil, err
	}

	return &PurgeOutput{Purged: purged}, nil
}
