package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jsperry/chordtab/internal/chord"
	"github.com/jsperry/chordtab/internal/errors"
)

// Column headers as written by the tuner. Some tuner versions emit a leading
// space on the Fingers header, so matching trims whitespace.
const (
	colThumbs  = "Thumbs"
	colFingers = "Fingers"
	colOutput  = "Keyboard Output"
)

// Decode reads a chord table in CSV form. Rows keep their file order.
// Structural problems are FORMAT errors: unreadable CSV, a header without
// the Keyboard Output column, or a row with the wrong field count. Empty
// thumb and finger cells decode as nil.
func Decode(r io.Reader) ([]chord.Chord, error) {
	rdr := csv.NewReader(r)

	header, err := rdr.Read()
	if err == io.EOF {
		return nil, errors.NewFormat(0, "empty table: missing header row")
	}
	if err != nil {
		return nil, errors.NewFormat(1, err.Error())
	}

	thumbsIdx, fingersIdx, outputIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case colThumbs:
			thumbsIdx = i
		case colFingers:
			fingersIdx = i
		case colOutput:
			outputIdx = i
		}
	}
	if outputIdx < 0 {
		return nil, errors.NewFormat(0, fmt.Sprintf("missing required column: %s", colOutput))
	}

	chords := []chord.Chord{}
	for line := 2; ; line++ {
		row, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewFormat(line, err.Error())
		}

		c := chord.Chord{Output: row[outputIdx]}
		if thumbsIdx >= 0 && row[thumbsIdx] != "" {
			v := row[thumbsIdx]
			c.Thumbs = &v
		}
		if fingersIdx >= 0 && row[fingersIdx] != "" {
			v := row[fingersIdx]
			c.Fingers = &v
		}
		chords = append(chords, c)
	}

	return chords, nil
}

// Encode writes chords as CSV using the same column order and names Decode
// accepts, so a decoded table re-encodes field for field.
func Encode(w io.Writer, chords []chord.Chord) error {
	wtr := csv.NewWriter(w)

	if err := wtr.Write([]string{colThumbs, colFingers, colOutput}); err != nil {
		return errors.NewInternal(err)
	}
	for _, c := range chords {
		row := []string{deref(c.Thumbs), deref(c.Fingers), c.Output}
		if err := wtr.Write(row); err != nil {
			return errors.NewInternal(err)
		}
	}

	wtr.Flush()
	if err := wtr.Error(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
