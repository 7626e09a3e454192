package chord

import "testing"

func TestParseNotation_Thumbs(t *testing.T) {
	tests := []struct {
		thumbs string
		want   ButtonState
	}{
		{"", 0},
		{"<Num>", BtnNum},
		{"<Num><Shift>", BtnNum | BtnShift},
		{"<Thumb1>", BtnNum},
		{"<Thumb2><Thumb3>", BtnAlt | BtnCtrl},
		{"<Bogus>", 0},
		{"Num", 0}, // bare name, not a token
	}
	for _, tt := range tests {
		if got := ParseNotation(tt.thumbs, ""); got != tt.want {
			t.Errorf("ParseNotation(%q, \"\") = %#x, want %#x", tt.thumbs, got, tt.want)
		}
	}
}

func TestParseNotation_Fingers(t *testing.T) {
	got := ParseNotation("", "<1L><4R>")
	want := FingerButton(1, 0) | FingerButton(4, 2)
	if got != want {
		t.Errorf("ParseNotation fingers = %#x, want %#x", got, want)
	}
}

func TestParseNotation_Combined(t *testing.T) {
	got := ParseNotation("<Num>", "<2M>")
	want := BtnNum | FingerButton(2, 1)
	if got != want {
		t.Errorf("ParseNotation combined = %#x, want %#x", got, want)
	}
}

func TestFingerButton_OutOfRange(t *testing.T) {
	tests := []struct{ row, col int }{
		{0, 0}, {5, 0}, {1, -1}, {1, 3},
	}
	for _, tt := range tests {
		if got := FingerButton(tt.row, tt.col); got != 0 {
			t.Errorf("FingerButton(%d, %d) = %#x, want 0", tt.row, tt.col, got)
		}
	}
}

func TestChordButtons_NilFields(t *testing.T) {
	c := Chord{Output: "a"}
	if got := c.Buttons(); got != 0 {
		t.Errorf("Buttons() with nil notation = %#x, want 0", got)
	}

	thumbs := "<Shift>"
	c = Chord{Thumbs: &thumbs, Output: "a"}
	if got := c.Buttons(); got != BtnShift {
		t.Errorf("Buttons() = %#x, want %#x", got, BtnShift)
	}
}
