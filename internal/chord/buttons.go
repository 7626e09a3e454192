package chord

// ButtonState is the packed state of the device's physical buttons: four
// thumb buttons in the low bits, twelve finger buttons row-major above them.
type ButtonState uint16

// Thumb buttons.
const (
	BtnNum ButtonState = 1 << iota
	BtnAlt
	BtnCtrl
	BtnShift
)

// FingerButton returns the bit for the finger button at row 1-4, column 0-2
// (left, middle, right). Out-of-range positions return 0.
func FingerButton(row, col int) ButtonState {
	if row < 1 || row > 4 || col < 0 || col > 2 {
		return 0
	}
	return 1 << (4 + (row-1)*3 + col)
}

// buttonNames maps notation token names to button bits. The ThumbN aliases
// match the numbering the tuner uses in exported tables.
var buttonNames = map[string]ButtonState{
	"Num":   BtnNum,
	"Alt":   BtnAlt,
	"Ctrl":  BtnCtrl,
	"Shift": BtnShift,

	"Thumb1": BtnNum,
	"Thumb2": BtnAlt,
	"Thumb3": BtnCtrl,
	"Thumb4": BtnShift,

	"1L": FingerButton(1, 0), "1M": FingerButton(1, 1), "1R": FingerButton(1, 2),
	"2L": FingerButton(2, 0), "2M": FingerButton(2, 1), "2R": FingerButton(2, 2),
	"3L": FingerButton(3, 0), "3M": FingerButton(3, 1), "3R": FingerButton(3, 2),
	"4L": FingerButton(4, 0), "4M": FingerButton(4, 1), "4R": FingerButton(4, 2),
}

// ParseNotation converts thumb and finger cluster notation into one button
// mask. Tokens are <Name> groups; bytes outside tokens are ignored and
// unknown names contribute no bits, matching the leniency of the output
// encoder.
func ParseNotation(thumbs, fingers string) ButtonState {
	return parseCluster(thumbs) | parseCluster(fingers)
}

// parseCluster scans one notation string for <Name> tokens.
func parseCluster(notation string) ButtonState {
	var state ButtonState
	start := -1
	for i := 0; i < len(notation); i++ {
		switch notation[i] {
		case '<':
			start = i
		case '>':
			if start >= 0 {
				state |= buttonNames[notation[start+1:i]]
				start = -1
			}
		}
	}
	return state
}
