package chord

import "strings"

// Modifier bits, one per held modifier key. Bits combine with OR and are
// cleared with AND-NOT.
const (
	ModLeftCtrl   uint8 = 0x01
	ModLeftShift  uint8 = 0x02
	ModLeftAlt    uint8 = 0x04
	ModLeftGui    uint8 = 0x08
	ModRightCtrl  uint8 = 0x10
	ModRightShift uint8 = 0x20
	ModRightAlt   uint8 = 0x40
	ModRightGui   uint8 = 0x80
)

// Fixed device key codes emitted for delimiters found outside a well-formed
// tag. Opaque to this package; the firmware interprets them.
const (
	SeparatorCode uint8 = 0x64
	SlashCode     uint8 = 0x38
)

// tagModifiers maps tag names to modifier bits. Never mutated after init.
// Unknown names resolve to 0 and leave the mask untouched.
var tagModifiers = map[string]uint8{
	"L-Ctrl":  ModLeftCtrl,
	"L-Shift": ModLeftShift,
	"L-Alt":   ModLeftAlt,
	"L-Gui":   ModLeftGui,
	"R-Ctrl":  ModRightCtrl,
	"R-Shift": ModRightShift,
	"R-Alt":   ModRightAlt,
	"R-Gui":   ModRightGui,
}

// TagModifier resolves a tag name to its modifier bit. Unknown names return 0.
func TagModifier(name string) uint8 {
	return tagModifiers[name]
}

// KeystrokeEvent is one simulated key press: the modifier mask held at the
// time of the press plus the device key code. The modifier value is a
// snapshot taken when the event is emitted.
type KeystrokeEvent struct {
	Modifiers uint8 `json:"modifiers"`
	Code      uint8 `json:"code"`
}

// scanState is the scanner position relative to tag delimiters.
type scanState int

const (
	stateLiteral scanState = iota
	stateInTag
)

// scanner advances over one output string byte by byte. All fields are local
// to a single Encode call; nothing persists across chords.
type scanner struct {
	output    string
	keys      *Keymap
	state     scanState
	modifiers uint8
	tagStart  int
	closing   bool
	events    []KeystrokeEvent
}

// step consumes the byte at index i and applies one state transition.
func (s *scanner) step(i int) {
	c := s.output[i]

	if s.state == stateInTag {
		switch c {
		case '<':
			// New tag opened before the previous one closed: emit a
			// separator keystroke and restart tag tracking here.
			s.emit(SeparatorCode)
			s.tagStart = i
		case '>':
			name := s.output[s.tagStart+1 : i]
			if s.closing {
				name = strings.TrimPrefix(name, "/")
			}
			bit := tagModifiers[name]
			if s.closing {
				s.modifiers &^= bit
			} else {
				s.modifiers |= bit
			}
			s.closing = false
			s.state = stateLiteral
		case '/':
			s.closing = true
		}
		// Other bytes are tag name content, consumed when the tag closes.
		return
	}

	switch c {
	case '<':
		s.state = stateInTag
		s.tagStart = i
	case '>':
		// Stray close with no open tag in this pass.
		s.emit(SeparatorCode)
	case '/':
		s.emit(SlashCode)
	default:
		// Resolution keys on the whole output string, not the byte at hand.
		// Tables authored against the original tuner depend on this.
		if code, ok := s.keys.Code(s.output); ok {
			s.emit(code)
		}
	}
}

// emit appends an event carrying the current modifier snapshot.
func (s *scanner) emit(code uint8) {
	s.events = append(s.events, KeystrokeEvent{Modifiers: s.modifiers, Code: code})
}

// Encode translates one chord output string into the keystroke sequence sent
// to the device. It never fails: unknown tag names, stray delimiters, and
// unmapped characters degrade to no-ops or fixed separator codes, and an
// unterminated tag at end of input is dropped.
func Encode(output string, keys *Keymap) []KeystrokeEvent {
	// Single-byte outputs resolve through the keymap directly; the scan is
	// never entered.
	if len(output) == 1 {
		if code, ok := keys.Code(output); ok {
			return []KeystrokeEvent{{Modifiers: 0, Code: code}}
		}
		return []KeystrokeEvent{{Modifiers: 0, Code: 0}}
	}

	s := scanner{output: output, keys: keys, events: []KeystrokeEvent{}}
	for i := 0; i < len(output); i++ {
		s.step(i)
	}
	return s.events
}
