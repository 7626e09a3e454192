package ops

import (
	"database/sql"

	"github.com/jsperry/chordtab/internal/db"
	"github.com/jsperry/chordtab/internal/errors"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit          int // default: DefaultListLimit, max: MaxListLimit
	Offset         int
	IncludeDeleted bool
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []TableSummary `json:"items"`
	Pagination Pagination     `json:"pagination"`
}

// List returns stored tables, most recently updated first.
func List(database *sql.DB, input ListInput) (*ListOutput, error) {
	if input.Limit == 0 {
		input.Limit = DefaultListLimit
	}
	if input.Limit < 0 || input.Limit > MaxListLimit {
		return nil, errors.NewInvalidRequest("limit must be between 1 and 100")
	}
	if input.Offset < 0 {
		return nil, errors.NewInvalidRequest("offset must not be negative")
	}

	// Fetch one extra row to detect more pages.
	tables, err := db.ListTables(database, input.Limit+1, input.Offset, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	hasMore := len(tables) > input.Limit
	if hasMore {
		tables = tables[:input.Limit]
	}

	items := make([]TableSummary, len(tables))
	for i := range tables {
		items[i] = summarize(&tables[i])
	}

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   input.Limit,
			Offset:  input.Offset,
			HasMore: hasMore,
		},
	}, nil
}
