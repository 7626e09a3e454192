package chord

import "sort"

// Keymap is an explicit two-way mapping between short output strings (single
// printable characters plus a few named keys) and one-byte device key codes.
// Immutable after construction; safe for concurrent lookups.
type Keymap struct {
	codeToText map[uint8]string
	textToCode map[string]uint8
}

// namedKeys are the non-printable entries of the default table.
var namedKeys = map[uint8]string{
	0x28: "Enter",
	0x29: "Esc",
	0x2A: "Backspace",
	0x2B: "Tab",
	0x2C: " ",
}

// punctuationKeys maps the printable non-alphanumeric characters the device
// can emit unmodified.
var punctuationKeys = map[uint8]string{
	0x2D: "-",
	0x2E: "=",
	0x2F: "[",
	0x30: "]",
	0x31: "\\",
	0x33: ";",
	0x34: "'",
	0x35: "`",
	0x36: ",",
	0x37: ".",
	0x38: "/",
}

// DefaultKeymap returns the standard key table: lowercase letters at
// 0x04-0x1D, digits 1-9 then 0 at 0x1E-0x27, named keys, and punctuation.
func DefaultKeymap() *Keymap {
	k := &Keymap{
		codeToText: make(map[uint8]string),
		textToCode: make(map[string]uint8),
	}

	for c := byte('a'); c <= 'z'; c++ {
		k.add(0x04+(c-'a'), string(c))
	}
	for c := byte('1'); c <= '9'; c++ {
		k.add(0x1E+(c-'1'), string(c))
	}
	k.add(0x27, "0")

	for code, text := range namedKeys {
		k.add(code, text)
	}
	for code, text := range punctuationKeys {
		k.add(code, text)
	}

	return k
}

// add registers one pair in both directions.
func (k *Keymap) add(code uint8, text string) {
	k.codeToText[code] = text
	k.textToCode[text] = code
}

// Code resolves an output string to its device key code.
func (k *Keymap) Code(text string) (uint8, bool) {
	code, ok := k.textToCode[text]
	return code, ok
}

// Text resolves a device key code back to its output string.
func (k *Keymap) Text(code uint8) (string, bool) {
	text, ok := k.codeToText[code]
	return text, ok
}

// Len returns the number of mapped pairs.
func (k *Keymap) Len() int {
	return len(k.codeToText)
}

// KeyPair is one keymap entry.
type KeyPair struct {
	Code uint8  `json:"code"`
	Text string `json:"text"`
}

// Pairs returns every entry ordered by key code.
func (k *Keymap) Pairs() []KeyPair {
	pairs := make([]KeyPair, 0, len(k.codeToText))
	for code, text := range k.codeToText {
		pairs = append(pairs, KeyPair{Code: code, Text: text})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Code < pairs[j].Code })
	return pairs
}
