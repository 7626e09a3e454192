package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/jsperry/chordtab/internal/chord"
	"github.com/jsperry/chordtab/internal/config"
	"github.com/jsperry/chordtab/internal/errors"
	"github.com/jsperry/chordtab/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "chordtab",
		Usage:   "Chord table manager for chorded keyboards",
		Version: Version,
		Commands: []*cli.Command{
			importCmd(db, cfg),
			fetchCmd(db),
			listCmd(db),
			deleteCmd(db),
			purgeCmd(db),
			exportCmd(db, cfg),
			encodeCmd(db, cfg),
			lintCmd(db, cfg),
			sheetCmd(db, cfg),
			keysCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// importCmd creates the import command.
func importCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import a chord table from a CSV file",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Table name (defaults to file name)"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "error", Usage: "Collision mode: error|replace"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("path argument is required"))
			}

			output, err := ops.Import(db, cfg, ops.ImportInput{
				Path: c.Args().First(),
				Name: c.String("name"),
				Mode: ops.ImportMode(c.String("mode")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a chord table by ID or name",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Table name"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted tables"},
			&cli.BoolFlag{Name: "no-chords", Usage: "Exclude chord rows from output"},
		},
		Action: func(c *cli.Context) error {
			input := ops.FetchInput{
				IncludeDeleted: c.Bool("include-deleted"),
			}

			// Check for positional ID argument
			if c.NArg() > 0 {
				input.ID = c.Args().First()
			} else {
				input.Name = c.String("name")
			}

			if c.Bool("no-chords") {
				includeChords := false
				input.IncludeChords = &includeChords
			}

			output, err := ops.Fetch(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored chord tables",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted tables"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(db, ops.ListInput{
				Limit:          c.Int("limit"),
				Offset:         c.Int("offset"),
				IncludeDeleted: c.Bool("include-deleted"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Soft-delete a chord table",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Table name"},
		},
		Action: func(c *cli.Context) error {
			input := ops.DeleteInput{}

			if c.NArg() > 0 {
				input.ID = c.Args().First()
			} else {
				input.Name = c.String("name")
			}

			output, err := ops.Delete(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Permanently delete soft-deleted tables",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "older-than", Usage: "Only purge if deleted more than N days ago (e.g., 7d)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.PurgeInput{}

			if olderThan := c.String("older-than"); olderThan != "" {
				days, err := parseDuration(olderThan)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				input.OlderThanDays = &days
			}

			output, err := ops.Purge(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a chord table to a CSV file",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Table name"},
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.chordtab/exports/<name>-<timestamp>.csv)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ExportInput{
				Path: c.String("path"),
			}

			if c.NArg() > 0 {
				input.ID = c.Args().First()
			} else {
				input.Name = c.String("name")
			}

			output, err := ops.Export(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// encodeCmd creates the encode command.
func encodeCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "Encode a table's chords into keystroke events",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Table name"},
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Encode a CSV file directly without importing"},
		},
		Action: func(c *cli.Context) error {
			input := ops.EncodeInput{
				Name: c.String("name"),
				Path: c.String("path"),
			}
			if c.NArg() > 0 {
				input.ID = c.Args().First()
			}

			output, err := ops.Encode(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// lintCmd creates the lint command.
func lintCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Check a table's output strings for silent encoding problems",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Table name"},
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Lint a CSV file directly without importing"},
		},
		Action: func(c *cli.Context) error {
			input := ops.LintInput{
				Name: c.String("name"),
				Path: c.String("path"),
			}
			if c.NArg() > 0 {
				input.ID = c.Args().First()
			}

			output, err := ops.Lint(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// sheetCmd creates the sheet command.
func sheetCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "sheet",
		Usage:     "Render a chord table to an HTML cheatsheet",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Table name"},
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Sheet file path (default: ~/.chordtab/exports/<name>-sheet.html)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.SheetInput{
				Path: c.String("path"),
			}

			if c.NArg() > 0 {
				input.ID = c.Args().First()
			} else {
				input.Name = c.String("name")
			}

			output, err := ops.Sheet(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// keysCmd creates the keys command. It runs entirely off the built-in key
// table, so no database is needed.
func keysCmd() *cli.Command {
	return &cli.Command{
		Name:      "keys",
		Usage:     "Resolve key codes: a text like 'f' or 'Enter', a code like 0x09, or nothing to dump the table",
		ArgsUsage: "[text-or-code]",
		Action: func(c *cli.Context) error {
			keys := chord.DefaultKeymap()

			if c.NArg() < 1 {
				return outputJSON(keys.Pairs())
			}

			arg := c.Args().First()
			if code, ok := parseKeyCode(arg); ok {
				text, found := keys.Text(code)
				if !found {
					return outputError(errors.NewNotFound(arg))
				}
				return outputJSON(chord.KeyPair{Code: code, Text: text})
			}

			code, found := keys.Code(arg)
			if !found {
				return outputError(errors.NewNotFound(arg))
			}
			return outputJSON(chord.KeyPair{Code: code, Text: arg})
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if ctErr, ok := err.(*errors.ChordtabError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", ctErr.Code, ctErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// parseKeyCode parses a numeric key code argument, decimal or 0x-hex.
// Multi-character non-numeric strings fall through to text lookup.
func parseKeyCode(s string) (uint8, bool) {
	if len(s) == 1 && !(s[0] >= '0' && s[0] <= '9') {
		return 0, false // single printable char is always a text lookup
	}
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	} else if len(s) == 1 {
		return 0, false // bare digit means the character, not code 0-9
	}
	n, err := strconv.ParseUint(digits, base, 8)
	if err != nil {
		return 0, false
	}
	return uint8(n), true
}

// parseDuration parses "7d" format to days.
func parseDuration(s string) (int, error) {
	if numStr, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(numStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		if days < 0 {
			return 0, fmt.Errorf("duration must be non-negative")
		}
		return days, nil
	}
	return 0, fmt.Errorf("duration must end with 'd' (days), e.g., 7d")
}
