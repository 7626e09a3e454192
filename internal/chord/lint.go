package chord

import (
	"fmt"
	"strings"
)

// Finding codes for output string lint.
const (
	FindingUnknownTag      = "UNKNOWN_TAG"
	FindingUnterminatedTag = "UNTERMINATED_TAG"
	FindingStrayClose      = "STRAY_CLOSE"
	FindingNestedOpen      = "NESTED_OPEN"
	FindingUnmappedOutput  = "UNMAPPED_OUTPUT"
)

// Finding identifies one spot where the lenient encoder silently degrades
// instead of failing.
type Finding struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Index   int    `json:"index"` // byte offset into the output string
}

// LintOutput walks an output string with the encoder's transition rules and
// reports everything the encoder would swallow: unknown tag names, nested or
// unterminated tags, stray closes, and literal text with no keymap entry.
// A clean string returns no findings.
func LintOutput(output string, keys *Keymap) []Finding {
	var findings []Finding

	if len(output) == 1 {
		if _, ok := keys.Code(output); !ok {
			findings = append(findings, Finding{
				Code:    FindingUnmappedOutput,
				Message: fmt.Sprintf("%q has no key code; the encoder emits code 0", output),
				Index:   0,
			})
		}
		return findings
	}

	inTag := false
	tagStart := 0
	reportedUnmapped := false

	for i := 0; i < len(output); i++ {
		c := output[i]

		if inTag {
			switch c {
			case '<':
				findings = append(findings, Finding{
					Code:    FindingNestedOpen,
					Message: "tag opened inside an unclosed tag; the encoder emits a separator keystroke",
					Index:   i,
				})
				tagStart = i
			case '>':
				name := strings.TrimPrefix(output[tagStart+1:i], "/")
				if _, ok := tagModifiers[name]; !ok {
					findings = append(findings, Finding{
						Code:    FindingUnknownTag,
						Message: fmt.Sprintf("unknown tag name %q; no modifier bit is applied", name),
						Index:   tagStart,
					})
				}
				inTag = false
			}
			continue
		}

		switch c {
		case '<':
			inTag = true
			tagStart = i
		case '>':
			findings = append(findings, Finding{
				Code:    FindingStrayClose,
				Message: "'>' with no open tag; the encoder emits a separator keystroke",
				Index:   i,
			})
		case '/':
			// Emits the slash key code; nothing is lost.
		default:
			if !reportedUnmapped {
				if _, ok := keys.Code(output); !ok {
					findings = append(findings, Finding{
						Code:    FindingUnmappedOutput,
						Message: fmt.Sprintf("literal resolution of %q finds no key code; nothing is emitted", output),
						Index:   i,
					})
					reportedUnmapped = true
				}
			}
		}
	}

	if inTag {
		findings = append(findings, Finding{
			Code:    FindingUnterminatedTag,
			Message: "tag still open at end of output; the encoder drops it",
			Index:   tagStart,
		})
	}

	return findings
}
