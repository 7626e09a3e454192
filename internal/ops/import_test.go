package ops

import (
	"testing"

	"github.com/jsperry/chordtab/internal/errors"
)

func TestImport_Success(t *testing.T) {
	database, cfg, tmpDir := testEnv(t)
	path := writeCSV(t, tmpDir, "main.csv", sampleCSV)

	out, err := Import(database, cfg, ImportInput{Path: path, Name: "main"})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if out.ID == "" {
		t.Error("ID is empty")
	}
	if out.Name != "main" {
		t.Errorf("Name = %q, want %q", out.Name, "main")
	}
	if out.ChordCount != 3 {
		t.Errorf("ChordCount = %d, want 3", out.ChordCount)
	}
	if out.Replaced {
		t.Error("Replaced = true, want false")
	}
}

func TestImport_DefaultNameFromFile(t *testing.T) {
	database, cfg, tmpDir := testEnv(t)
	path := writeCSV(t, tmpDir, "my-layout.csv", sampleCSV)

	out, err := Import(database, cfg, ImportInput{Path: path})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if out.Name != "my-layout" {
		t.Errorf("Name = %q, want %q (file base name)", out.Name, "my-layout")
	}
}

func TestImport_NameCollision_ErrorMode(t *testing.T) {
	database, cfg, tmpDir := testEnv(t)
	path := writeCSV(t, tmpDir, "main.csv", sampleCSV)

	if _, err := Import(database, cfg, ImportInput{Path: path, Name: "main"}); err != nil {
		t.Fatalf("first Import failed: %v", err)
	}

	_, err := Import(database, cfg, ImportInput{Path: path, Name: "main"})
	if !errors.Is(err, errors.ErrNameAlreadyExists) {
		t.Errorf("second Import should return ErrNameAlreadyExists, got: %v", err)
	}

	// Collision check runs on the normalized name.
	_, err = Import(database, cfg, ImportInput{Path: path, Name: "  MAIN "})
	if !errors.Is(err, errors.ErrNameAlreadyExists) {
		t.Errorf("Import with case variant should return ErrNameAlreadyExists, got: %v", err)
	}
}

func TestImport_ReplaceMode_KeepsID(t *testing.T) {
	database, cfg, tmpDir := testEnv(t)
	path := writeCSV(t, tmpDir, "main.csv", sampleCSV)

	first, err := Import(database, cfg, ImportInput{Path: path, Name: "main"})
	if err != nil {
		t.Fatalf("first Import failed: %v", err)
	}

	smaller := "Thumbs,Fingers,Keyboard Output\n,<1L>,a\n"
	path2 := writeCSV(t, tmpDir, "main2.csv", smaller)

	second, err := Import(database, cfg, ImportInput{Path: path2, Name: "main", Mode: ImportModeReplace})
	if err != nil {
		t.Fatalf("replace Import failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("replace changed ID: %q != %q", second.ID, first.ID)
	}
	if !second.Replaced {
		t.Error("Replaced = false, want true")
	}
	if second.ChordCount != 1 {
		t.Errorf("ChordCount = %d, want 1", second.ChordCount)
	}

	fetched, err := Fetch(database, FetchInput{ID: first.ID})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(fetched.Chords) != 1 || fetched.Chords[0].Output != "a" {
		t.Errorf("fetched chords = %+v, want the replacement rows", fetched.Chords)
	}
}

func TestImport_InvalidMode(t *testing.T) {
	database, cfg, tmpDir := testEnv(t)
	path := writeCSV(t, tmpDir, "main.csv", sampleCSV)

	_, err := Import(database, cfg, ImportInput{Path: path, Mode: "upsert"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Import should return ErrInvalidRequest for unknown mode, got: %v", err)
	}
}

func TestImport_MissingPath(t *testing.T) {
	database, cfg, _ := testEnv(t)

	_, err := Import(database, cfg, ImportInput{})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Import should return ErrInvalidRequest for missing path, got: %v", err)
	}
}

func TestImport_WrongExtension(t *testing.T) {
	database, cfg, tmpDir := testEnv(t)
	path := writeCSV(t, tmpDir, "main.txt", sampleCSV)

	_, err := Import(database, cfg, ImportInput{Path: path})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Import should return ErrInvalidRequest for non-csv path, got: %v", err)
	}
}

func TestImport_FileNotFound(t *testing.T) {
	database, cfg, tmpDir := testEnv(t)

	_, err := Import(database, cfg, ImportInput{Path: tmpDir + "/missing.csv"})
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("Import should return ErrFileNotFound, got: %v", err)
	}
}

func TestImport_MalformedCSV(t *testing.T) {
	database, cfg, tmpDir := testEnv(t)
	path := writeCSV(t, tmpDir, "bad.csv", "Thumbs,Fingers\n,<1L>\n")

	_, err := Import(database, cfg, ImportInput{Path: path})
	if !errors.Is(err, errors.ErrFormat) {
		t.Errorf("Import should return ErrFormat for missing output column, got: %v", err)
	}
}

func TestImport_MaxRows(t *testing.T) {
	database, cfg, tmpDir := testEnv(t)
	cfg.MaxTableRows = 2
	path := writeCSV(t, tmpDir, "main.csv", sampleCSV)

	_, err := Import(database, cfg, ImportInput{Path: path})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Import should return ErrInvalidRequest over the row limit, got: %v", err)
	}
}
