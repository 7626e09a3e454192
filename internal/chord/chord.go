package chord

// Chord represents one row of a chord table: a combination of physical
// button presses mapped to a keyboard output sequence.
type Chord struct {
	// Thumbs is the thumb-cluster notation (nullable; nil means no thumb buttons)
	Thumbs *string `json:"thumbs,omitempty"`

	// Fingers is the finger-cluster notation (nullable)
	Fingers *string `json:"fingers,omitempty"`

	// Output is the keyboard output for this chord, a mix of literal
	// characters and <Name>/</Name> modifier tags. Required, may be empty.
	Output string `json:"output"`
}

// Buttons projects the chord's thumb and finger notation onto a button mask.
// A nil field behaves like an empty string.
func (c Chord) Buttons() ButtonState {
	var thumbs, fingers string
	if c.Thumbs != nil {
		thumbs = *c.Thumbs
	}
	if c.Fingers != nil {
		fingers = *c.Fingers
	}
	return ParseNotation(thumbs, fingers)
}
