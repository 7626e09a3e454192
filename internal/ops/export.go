package ops

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jsperry/chordtab/internal/config"
	"github.com/jsperry/chordtab/internal/db"
	"github.com/jsperry/chordtab/internal/errors"
	"github.com/jsperry/chordtab/internal/table"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	ID   string // addressing mode 1
	Name string // addressing mode 2
	Path string // optional, default: ~/.chordtab/exports/<name>-<timestamp>.csv
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	ChordCount int    `json:"chord_count"`
	ExportedAt int64  `json:"exported_at"`
}

// Export writes a stored table back to a CSV file with the same columns the
// tuner produces, so the file round-trips through Import.
func Export(database *sql.DB, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
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

	now := time.Now()
	exportedAt := now.Unix()

	exportPath := input.Path
	if exportPath == "" {
		exportPath, err = defaultExportPath(t.NameNorm, now)
		if err != nil {
			return nil, err
		}
	}

	// All paths go through validation, defaults included: a hostile table
	// name must not steer the default path outside the exports directory.
	if err := ValidatePath(exportPath, PathCheckWrite, ".csv", cfg); err != nil {
		return nil, err
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	// Write to a temp file first, then atomic rename: a failed export must
	// not clobber an existing file.
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if err := table.Encode(file, chords); err != nil {
		return nil, err
	}
	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Close before the rename (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlink destination.
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; overwriting is not supported on Windows yet (choose a new path or delete the existing file)")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &ExportOutput{
		Path:       exportPath,
		ChordCount: len(chords),
		ExportedAt: exportedAt,
	}, nil
}

// defaultExportPath generates ~/.chordtab/exports/<name>-<timestamp>.csv.
func defaultExportPath(name string, now time.Time) (string, error) {
	exportsDir, err := DefaultExportsDir()
	if err != nil {
		return "", err
	}
	timestamp := now.Format("2006-01-02T150405")
	filename := fmt.Sprintf("%s-%s.csv", SanitizeForFilename(name), timestamp)
	return filepath.Join(exportsDir, filename), nil
}
