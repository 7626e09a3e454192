package ops

import (
	"database/sql"

	"github.com/jsperry/chordtab/internal/chord"
	"github.com/jsperry/chordtab/internal/config"
	"github.com/jsperry/chordtab/internal/db"
	"github.com/jsperry/chordtab/internal/errors"
	"github.com/jsperry/chordtab/internal/table"
)

// EncodeInput contains parameters for the Encode operation.
// Exactly one source must be given: a stored table (id or name) or a CSV
// file path encoded directly without touching the library.
type EncodeInput struct {
	ID   string
	Name string
	Path string
}

// EncodedChord is one chord with its derived artifacts: the button mask from
// the notation parser and the keystroke events from the output encoder.
type EncodedChord struct {
	Position int                    `json:"position"`
	Thumbs   *string                `json:"thumbs,omitempty"`
	Fingers  *string                `json:"fingers,omitempty"`
	Output   string                 `json:"output"`
	Buttons  uint16                 `json:"buttons"`
	Events   []chord.KeystrokeEvent `json:"events"`
}

// EncodeOutput contains the result of the Encode operation.
type EncodeOutput struct {
	Name   string         `json:"name,omitempty"`
	Chords []EncodedChord `json:"chords"`
}

// Encode produces the per-chord (modifier, key code) pair listing handed to
// the device-programming layer. Encoding itself never fails; only source
// resolution can.
func Encode(database *sql.DB, cfg *config.Config, input EncodeInput) (*EncodeOutput, error) {
	name, chords, err := resolveChords(database, cfg, input.ID, input.Name, input.Path)
	if err != nil {
		return nil, err
	}

	keys := chord.DefaultKeymap()
	out := &EncodeOutput{Name: name, Chords: make([]EncodedChord, len(chords))}
	for i, c := range chords {
		out.Chords[i] = EncodedChord{
			Position: i,
			Thumbs:   c.Thumbs,
			Fingers:  c.Fingers,
			Output:   c.Output,
			Buttons:  uint16(c.Buttons()),
			Events:   chord.Encode(c.Output, keys),
		}
	}

	return out, nil
}

// resolveChords loads chord rows from the library or straight from a file.
func resolveChords(database *sql.DB, cfg *config.Config, id, name, path string) (string, []chord.Chord, error) {
	if path != "" {
		if id != "" || name != "" {
			return "", nil, errors.NewInvalidRequest("cannot combine path with id or name")
		}
		if err := ValidatePath(path, PathCheckRead, ".csv", cfg); err != nil {
			return "", nil, err
		}
		file, err := openFileNoFollowRead(path)
		if err != nil {
			return "", nil, err
		}
		defer file.Close()

		chords, err := table.Decode(file)
		if err != nil {
			return "", nil, err
		}
		return "", chords, nil
	}

	addr, err := ValidateAddress(id, name)
	if err != nil {
		return "", nil, err
	}
	t, err := lookupTable(database, addr, false)
	if err != nil {
		return "", nil, err
	}
	chords, err := db.GetChords(database, t.ID)
	if err != nil {
		return "", nil, err
	}
	return t.NameRaw, chords, nil
}
