package ops

import (
	"database/sql"

	"github.com/jsperry/chordtab/internal/chord"
	"github.com/jsperry/chordtab/internal/config"
)

// LintInput contains parameters for the Lint operation. Source addressing
// works as in Encode: stored table by id or name, or a direct file path.
type LintInput struct {
	ID   string
	Name string
	Path string
}

// ChordFindings collects lint findings for one chord row.
type ChordFindings struct {
	Position int             `json:"position"`
	Output   string          `json:"output"`
	Findings []chord.Finding `json:"findings"`
}

// LintOutput contains the result of the Lint operation.
type LintOutput struct {
	Name        string          `json:"name,omitempty"`
	Clean       bool            `json:"clean"`
	ChordsTotal int             `json:"chords_total"`
	Flagged     []ChordFindings `json:"flagged,omitempty"`
}

// Lint reports everything the lenient output encoder silently swallows:
// unknown tag names, unterminated or nested tags, stray closes, and literal
// text with no key code. A finding never fails the operation.
func Lint(database *sql.DB, cfg *config.Config, input LintInput) (*LintOutput, error) {
	name, chords, err := resolveChords(database, cfg, input.ID, input.Name, input.Path)
	if err != nil {
		return nil, err
	}

	keys := chord.DefaultKeymap()
	out := &LintOutput{Name: name, Clean: true, ChordsTotal: len(chords)}
	for i, c := range chords {
		findings := chord.LintOutput(c.Output, keys)
		if len(findings) > 0 {
			out.Clean = false
			out.Flagged = append(out.Flagged, ChordFindings{
				Position: i,
				Output:   c.Output,
				Findings: findings,
			})
		}
	}

	return out, nil
}
