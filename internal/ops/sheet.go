package ops

import (
	"bytes"
	"database/sql"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jsperry/chordtab/internal/chord"
	"github.com/jsperry/chordtab/internal/config"
	"github.com/jsperry/chordtab/internal/db"
	"github.com/jsperry/chordtab/internal/errors"
)

// SheetInput contains parameters for the Sheet operation.
type SheetInput struct {
	ID   string
	Name string
	Path string // optional, default: ~/.chordtab/exports/<name>-sheet.html
}

// SheetOutput contains the result of the Sheet operation.
type SheetOutput struct {
	Path       string `json:"path"`
	ChordCount int    `json:"chord_count"`
}

// sheetShell wraps rendered markdown in a printable page.
const sheetShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 0.3em 0.8em; text-align: left; }
th { background: #eee; }
code { background: #f4f4f4; padding: 0 0.2em; }
</style>
</head>
<body>
%s</body>
</html>
`

// Sheet renders a stored table to an HTML cheatsheet: a markdown table of
// chords run through goldmark with GFM tables enabled.
func Sheet(database *sql.DB, cfg *config.Config, input SheetInput) (*SheetOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	t, err := lookupTable(database, addr, false)
	if err != nil {
		return nil, err
	}
	chords, err := db.GetChords(database, t.ID)
	if err != nil {
		return nil, err
	}

	sheetPath := input.Path
	if sheetPath == "" {
		exportsDir, err := DefaultExportsDir()
		if err != nil {
			return nil, err
		}
		sheetPath = filepath.Join(exportsDir, SanitizeForFilename(t.NameNorm)+"-sheet.html")
	}
	if err := ValidatePath(sheetPath, PathCheckWrite, ".html", cfg); err != nil {
		return nil, err
	}

	md := buildSheetMarkdown(t.NameRaw, chords)

	var rendered bytes.Buffer
	gm := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := gm.Convert([]byte(md), &rendered); err != nil {
		return nil, errors.NewInternal(err)
	}
	page := fmt.Sprintf(sheetShell, html.EscapeString(t.NameRaw), rendered.String())

	if err := os.MkdirAll(filepath.Dir(sheetPath), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create sheet directory: %w", err))
	}
	file, err := openFileNoFollow(sheetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create sheet file: %w", err))
	}
	defer file.Close()

	if _, err := file.WriteString(page); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &SheetOutput{Path: sheetPath, ChordCount: len(chords)}, nil
}

// buildSheetMarkdown lays the chords out as a GFM table.
func buildSheetMarkdown(name string, chords []chord.Chord) string {
	var md strings.Builder

	fmt.Fprintf(&md, "# %s\n\n", name)
	fmt.Fprintf(&md, "Generated %s. %d chords.\n\n", time.Now().Format("2006-01-02"), len(chords))
	md.WriteString("| Thumbs | Fingers | Keyboard Output |\n")
	md.WriteString("| --- | --- | --- |\n")

	for _, c := range chords {
		fmt.Fprintf(&md, "| %s | %s | `%s` |\n",
			mdCell(c.Thumbs), mdCell(c.Fingers), escapePipes(c.Output))
	}

	return md.String()
}

// mdCell renders an optional notation field as inline code, or a dash.
func mdCell(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return "`" + escapePipes(*s) + "`"
}

// escapePipes keeps literal pipes from breaking table cells.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
