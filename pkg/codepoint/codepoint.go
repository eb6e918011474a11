// Package codepoint decodes and encodes single Unicode codepoints as UTF-8
// over caller-owned memory.
//
// Decoding never reads past the end of the given slice and never allocates.
// A failed decode yields ReplacementChar and consumes at least one byte, so a
// loop driving Decode over a buffer always terminates. Encoding writes into a
// Buffer, which either takes the whole sequence or nothing at all.
package codepoint

import "fmt"

// Codepoint is a Unicode scalar value, or ReplacementChar after a failed decode.
type Codepoint uint32

const (
	// ReplacementChar is returned by every decode path that fails.
	ReplacementChar Codepoint = 0xFFFD

	// MaxCodepoint is the largest valid Unicode codepoint.
	MaxCodepoint Codepoint = 0x10FFFF

	// UTFMax is the longest UTF-8 encoding of a codepoint, in bytes.
	UTFMax = 4

	surrogateMin Codepoint = 0xD800
	surrogateMax Codepoint = 0xDFFF
)

// PredictLength reports how many bytes the sequence starting with lead
// claims to occupy, or 0 when lead cannot start a sequence.
func PredictLength(lead byte) int {
	switch {
	case lead < 0x80:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	}
	return 0
}

// ProperLength is the minimal number of bytes needed to encode cp, or 0 when
// cp is above MaxCodepoint.
func ProperLength(cp Codepoint) int {
	switch {
	case cp < 0x80:
		return 1
	case cp < 0x800:
		return 2
	case cp < 0x10000:
		return 3
	case cp <= MaxCodepoint:
		return 4
	}
	return 0
}

// IsContinuation reports whether b has the 10xxxxxx continuation pattern.
func IsContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// IsSurrogate reports whether cp lies in the UTF-16 surrogate range.
func IsSurrogate(cp Codepoint) bool {
	return cp >= surrogateMin && cp <= surrogateMax
}

// IsValid reports whether cp is a Unicode scalar value.
func IsValid(cp Codepoint) bool {
	return cp <= MaxCodepoint && !IsSurrogate(cp)
}

// String renders cp in U+XXXX notation.
func (cp Codepoint) String() string {
	return fmt.Sprintf("U+%04X", uint32(cp))
}
