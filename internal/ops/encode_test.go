package ops

import (
	"testing"

	"github.com/jsperry/chordtab/internal/chord"
	"github.com/jsperry/chordtab/internal/errors"
)

func TestEncode_StoredTable(t *testing.T) {
	imported, env := importSample(t)

	out, err := Encode(env.database, env.cfg, EncodeInput{ID: imported.ID})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if out.Name != "main" {
		t.Errorf("Name = %q, want %q", out.Name, "main")
	}
	if len(out.Chords) != 3 {
		t.Fatalf("len(Chords) = %d, want 3", len(out.Chords))
	}

	// Row 0: "the" resolves as a literal whose key code lookup runs on the
	// whole string; "the" has no entry, so three null events.
	first := out.Chords[0]
	if first.Position != 0 {
		t.Errorf("Position = %d, want 0", first.Position)
	}
	if len(first.Events) != 3 {
		t.Fatalf("len(Events) = %d, want 3", len(first.Events))
	}
	for _, ev := range first.Events {
		if ev.Modifiers != 0 || ev.Code != 0 {
			t.Errorf("event = %+v, want null event", ev)
		}
	}
	if first.Buttons != uint16(chord.BtnNum|chord.FingerButton(1, 0)) {
		t.Errorf("Buttons = %#x, want Num+1L", first.Buttons)
	}

	// Row 1: single character fast path.
	second := out.Chords[1]
	if len(second.Events) != 1 {
		t.Fatalf("len(Events) = %d, want 1", len(second.Events))
	}
	if second.Events[0].Code != 0x09 {
		t.Errorf("Code = %#x, want 0x09 (f)", second.Events[0].Code)
	}

	// Row 2: ctrl-slash.
	third := out.Chords[2]
	if len(third.Events) != 1 {
		t.Fatalf("len(Events) = %d, want 1", len(third.Events))
	}
	if third.Events[0].Modifiers != chord.ModLeftCtrl || third.Events[0].Code != chord.SlashCode {
		t.Errorf("event = %+v, want ctrl-slash", third.Events[0])
	}
}

func TestEncode_FromFile(t *testing.T) {
	database, cfg, tmpDir := testEnv(t)
	path := writeCSV(t, tmpDir, "direct.csv", sampleCSV)

	out, err := Encode(database, cfg, EncodeInput{Path: path})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if out.Name != "" {
		t.Errorf("Name = %q, want empty for file mode", out.Name)
	}
	if len(out.Chords) != 3 {
		t.Errorf("len(Chords) = %d, want 3", len(out.Chords))
	}
}

func TestEncode_PathExcludesAddressing(t *testing.T) {
	database, cfg, tmpDir := testEnv(t)
	path := writeCSV(t, tmpDir, "direct.csv", sampleCSV)

	_, err := Encode(database, cfg, EncodeInput{Path: path, Name: "main"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Encode should return ErrInvalidRequest combining path and name, got: %v", err)
	}
}

func TestLint_CleanTable(t *testing.T) {
	database, cfg, tmpDir := testEnv(t)
	clean := "Thumbs,Fingers,Keyboard Output\n,<1L>,f\n,<2M>,<L-Shift>/\n"
	path := writeCSV(t, tmpDir, "clean.csv", clean)

	out, err := Lint(database, cfg, LintInput{Path: path})
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}

	if !out.Clean {
		t.Errorf("Clean = false, want true; flagged: %+v", out.Flagged)
	}
	if out.ChordsTotal != 2 {
		t.Errorf("ChordsTotal = %d, want 2", out.ChordsTotal)
	}
}

func TestLint_FlagsProblems(t *testing.T) {
	database, cfg, tmpDir := testEnv(t)
	dirty := "Thumbs,Fingers,Keyboard Output\n" +
		",<1L>,f\n" +
		",<2M>,<L-Sift>/\n" + // typo in tag name
		",<3M>,the\n" // multi-char literal with no key code
	path := writeCSV(t, tmpDir, "dirty.csv", dirty)

	out, err := Lint(database, cfg, LintInput{Path: path})
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}

	if out.Clean {
		t.Fatal("Clean = true, want false")
	}
	if len(out.Flagged) != 2 {
		t.Fatalf("len(Flagged) = %d, want 2: %+v", len(out.Flagged), out.Flagged)
	}

	if out.Flagged[0].Position != 1 {
		t.Errorf("Flagged[0].Position = %d, want 1", out.Flagged[0].Position)
	}
	if out.Flagged[0].Findings[0].Code != chord.FindingUnknownTag {
		t.Errorf("finding = %+v, want unknown tag", out.Flagged[0].Findings[0])
	}
	if out.Flagged[1].Findings[0].Code != chord.FindingUnmappedOutput {
		t.Errorf("finding = %+v, want unmapped output", out.Flagged[1].Findings[0])
	}
}

func TestLint_StoredTable(t *testing.T) {
	imported, env := importSample(t)

	out, err := Lint(env.database, env.cfg, LintInput{ID: imported.ID})
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}
	if out.Name != "main" {
		t.Errorf("Name = %q, want %q", out.Name, "main")
	}
	// "the" has no key code, so the sample is not clean.
	if out.Clean {
		t.Error("Clean = true, want false")
	}
}
