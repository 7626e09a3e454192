package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jsperry/chordtab/internal/chord"
	"github.com/jsperry/chordtab/internal/errors"
	"github.com/jsperry/chordtab/internal/table"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testChords() []chord.Chord {
	thumbs := "<Thumb1>"
	fingers := "<1L>"
	return []chord.Chord{
		{Thumbs: &thumbs, Fingers: &fingers, Output: "<L-Ctrl>F"},
		{Output: "a"},
	}
}

func testTable(id, name string) *table.Table {
	now := time.Now().Unix()
	return &table.Table{
		ID:         id,
		NameRaw:    name,
		NameNorm:   table.Normalize(name),
		Source:     "/tmp/" + name + ".csv",
		ChordCount: 2,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestInsertAndGetTable(t *testing.T) {
	database := testDB(t)

	if err := InsertTable(database, testTable("01TABLE", "Dvorak"), testChords()); err != nil {
		t.Fatalf("InsertTable() error = %v", err)
	}

	got, err := GetTableByID(database, "01TABLE", false)
	if err != nil {
		t.Fatalf("GetTableByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetTableByID() = nil, want table")
	}
	if got.NameRaw != "Dvorak" || got.NameNorm != "dvorak" {
		t.Errorf("name = %q/%q, want Dvorak/dvorak", got.NameRaw, got.NameNorm)
	}
	if got.ChordCount != 2 {
		t.Errorf("ChordCount = %d, want 2", got.ChordCount)
	}

	byName, err := GetTableByName(database, "dvorak", false)
	if err != nil {
		t.Fatalf("GetTableByName() error = %v", err)
	}
	if byName == nil || byName.ID != "01TABLE" {
		t.Errorf("GetTableByName() = %v, want id 01TABLE", byName)
	}
}

func TestGetChords_PreservesOrderAndNulls(t *testing.T) {
	database := testDB(t)

	if err := InsertTable(database, testTable("01TABLE", "main"), testChords()); err != nil {
		t.Fatalf("InsertTable() error = %v", err)
	}

	chords, err := GetChords(database, "01TABLE")
	if err != nil {
		t.Fatalf("GetChords() error = %v", err)
	}
	if len(chords) != 2 {
		t.Fatalf("got %d chords, want 2", len(chords))
	}
	if chords[0].Output != "<L-Ctrl>F" || chords[1].Output != "a" {
		t.Errorf("order not preserved: %+v", chords)
	}
	if chords[0].Thumbs == nil || *chords[0].Thumbs != "<Thumb1>" {
		t.Errorf("Thumbs = %v, want <Thumb1>", chords[0].Thumbs)
	}
	if chords[1].Thumbs != nil || chords[1].Fingers != nil {
		t.Errorf("empty notation should scan as nil: %+v", chords[1])
	}
}

func TestInsertTable_UniqueNameConstraint(t *testing.T) {
	database := testDB(t)

	if err := InsertTable(database, testTable("01AAA", "main"), testChords()); err != nil {
		t.Fatalf("first InsertTable() error = %v", err)
	}
	err := InsertTable(database, testTable("01BBB", "main"), testChords())
	if err != ErrUniqueConstraint {
		t.Fatalf("second InsertTable() error = %v, want ErrUniqueConstraint", err)
	}
}

func TestReplaceTable(t *testing.T) {
	database := testDB(t)

	if err := InsertTable(database, testTable("01TABLE", "main"), testChords()); err != nil {
		t.Fatalf("InsertTable() error = %v", err)
	}

	updated := testTable("01TABLE", "main")
	updated.ChordCount = 1
	updated.UpdatedAt++
	if err := ReplaceTable(database, updated, []chord.Chord{{Output: "z"}}); err != nil {
		t.Fatalf("ReplaceTable() error = %v", err)
	}

	chords, err := GetChords(database, "01TABLE")
	if err != nil {
		t.Fatalf("GetChords() error = %v", err)
	}
	if len(chords) != 1 || chords[0].Output != "z" {
		t.Errorf("chords after replace = %+v, want single z", chords)
	}
}

func TestReplaceTable_NotFound(t *testing.T) {
	database := testDB(t)

	err := ReplaceTable(database, testTable("missing", "x"), nil)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("ReplaceTable() error = %v, want NOT_FOUND", err)
	}
}

func TestSoftDeleteAndPurge(t *testing.T) {
	database := testDB(t)

	if err := InsertTable(database, testTable("01TABLE", "main"), testChords()); err != nil {
		t.Fatalf("InsertTable() error = %v", err)
	}

	now := time.Now().Unix()
	if err := SoftDeleteTable(database, "01TABLE", now); err != nil {
		t.Fatalf("SoftDeleteTable() error = %v", err)
	}

	// Hidden from live lookups, visible with includeDeleted
	got, err := GetTableByID(database, "01TABLE", false)
	if err != nil {
		t.Fatalf("GetTableByID() error = %v", err)
	}
	if got != nil {
		t.Error("soft-deleted table still visible")
	}
	got, err = GetTableByID(database, "01TABLE", true)
	if err != nil {
		t.Fatalf("GetTableByID(includeDeleted) error = %v", err)
	}
	if got == nil || got.DeletedAt == nil {
		t.Fatal("soft-deleted table missing from includeDeleted lookup")
	}

	// Deleting again is NotFound
	if err := SoftDeleteTable(database, "01TABLE", now); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("second SoftDeleteTable() error = %v, want NOT_FOUND", err)
	}

	purged, err := PurgeDeleted(database, nil)
	if err != nil {
		t.Fatalf("PurgeDeleted() error = %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}

	chords, err := GetChords(database, "01TABLE")
	if err != nil {
		t.Fatalf("GetChords() error = %v", err)
	}
	if len(chords) != 0 {
		t.Errorf("chords survived purge: %+v", chords)
	}
}

func TestPurgeDeleted_OlderThan(t *testing.T) {
	database := testDB(t)

	if err := InsertTable(database, testTable("01AAA", "old"), testChords()); err != nil {
		t.Fatalf("InsertTable() error = %v", err)
	}
	if err := InsertTable(database, testTable("01BBB", "new"), testChords()); err != nil {
		t.Fatalf("InsertTable() error = %v", err)
	}

	if err := SoftDeleteTable(database, "01AAA", 1000); err != nil {
		t.Fatalf("SoftDeleteTable() error = %v", err)
	}
	if err := SoftDeleteTable(database, "01BBB", 2000); err != nil {
		t.Fatalf("SoftDeleteTable() error = %v", err)
	}

	cutoff := int64(1500)
	purged, err := PurgeDeleted(database, &cutoff)
	if err != nil {
		t.Fatalf("PurgeDeleted() error = %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}

	remaining, err := GetTableByID(database, "01BBB", true)
	if err != nil {
		t.Fatalf("GetTableByID() error = %v", err)
	}
	if remaining == nil {
		t.Error("newer deleted table was purged by mistake")
	}
}

func TestListTables(t *testing.T) {
	database := testDB(t)

	a := testTable("01AAA", "alpha")
	a.UpdatedAt = 100
	b := testTable("01BBB", "beta")
	b.UpdatedAt = 200
	if err := InsertTable(database, a, testChords()); err != nil {
		t.Fatalf("InsertTable() error = %v", err)
	}
	if err := InsertTable(database, b, testChords()); err != nil {
		t.Fatalf("InsertTable() error = %v", err)
	}

	tables, err := ListTables(database, 10, 0, false)
	if err != nil {
		t.Fatalf("ListTables() error = %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(tables))
	}
	if tables[0].ID != "01BBB" {
		t.Errorf("most recently updated first: got %s", tables[0].ID)
	}

	tables, err = ListTables(database, 1, 1, false)
	if err != nil {
		t.Fatalf("ListTables(limit/offset) error = %v", err)
	}
	if len(tables) != 1 || tables[0].ID != "01AAA" {
		t.Errorf("pagination returned %+v, want 01AAA", tables)
	}
}
