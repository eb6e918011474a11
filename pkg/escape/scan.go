package escape

import (
	"strings"

	"github.com/walteh/textesc/pkg/codepoint"
)

const (
	// aliasChars[i] is written as a backslash followed by aliasLetters[i].
	aliasChars   = "\n\r\t\f\v\b\a"
	aliasLetters = "nrtfvba"

	hexDigits = "0123456789ABCDEF"
)

// ScanStatus tells a successful scan from the two ways a scan can fail.
type ScanStatus uint8

const (
	// Scanned means the escape was recognised and Codepoint holds its value.
	Scanned ScanStatus = iota
	// Invalid means the escape is malformed: an unknown letter, a non-digit
	// inside a numeric escape, or a value that is not a valid codepoint.
	Invalid
	// Truncated means the input ended before the escape was complete.
	Truncated
)

func (s ScanStatus) String() string {
	switch s {
	case Scanned:
		return "scanned"
	case Invalid:
		return "invalid"
	case Truncated:
		return "truncated"
	}
	return "unknown"
}

// ScanResult is the outcome of scanning one escape sequence.
type ScanResult struct {
	// Codepoint is the escaped value, or codepoint.ReplacementChar on failure
	Codepoint codepoint.Codepoint
	// N is the number of bytes consumed after the backslash
	N      int
	Status ScanStatus
}

// Scan decodes the escape sequence at the start of seq, which is positioned
// just after a backslash, and returns the codepoint and the number of bytes
// consumed.
//
// On failure it returns codepoint.ReplacementChar. The escape letter is
// consumed but numeric digits are not, so the caller resumes right after the
// letter. An empty seq consumes nothing.
func Scan(seq []byte) (codepoint.Codepoint, int) {
	res := ScanSequence(seq)
	return res.Codepoint, res.N
}

// ScanSequence is Scan reporting why a scan failed.
func ScanSequence(seq []byte) ScanResult {
	if len(seq) == 0 {
		return ScanResult{Codepoint: codepoint.ReplacementChar, Status: Truncated}
	}

	c := seq[0]
	digits := 0
	switch c {
	case 'x':
		digits = 2
	case 'u':
		digits = 4
	case 'U':
		digits = 8
	case '\\', '"', '\'':
		return ScanResult{Codepoint: codepoint.Codepoint(c), N: 1}
	default:
		if isOctal(c) {
			return scanOctal(seq)
		}
		if i := strings.IndexByte(aliasLetters, c); i >= 0 {
			return ScanResult{Codepoint: codepoint.Codepoint(aliasChars[i]), N: 1}
		}
		return failed(Invalid)
	}

	var v uint32
	for i := 1; i <= digits; i++ {
		if i >= len(seq) {
			return failed(Truncated)
		}
		d, ok := hexValue(seq[i])
		if !ok {
			return failed(Invalid)
		}
		v = v<<4 | d
	}

	cp := codepoint.Codepoint(v)
	if !codepoint.IsValid(cp) {
		return failed(Invalid)
	}
	return ScanResult{Codepoint: cp, N: 1 + digits}
}

func failed(status ScanStatus) ScanResult {
	return ScanResult{Codepoint: codepoint.ReplacementChar, N: 1, Status: status}
}

func scanOctal(seq []byte) ScanResult {
	var v codepoint.Codepoint
	n := 0
	for n < 3 && n < len(seq) && isOctal(seq[n]) {
		v = v<<3 | codepoint.Codepoint(seq[n]-'0')
		n++
	}
	return ScanResult{Codepoint: v, N: n}
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

func hexValue(c byte) (uint32, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint32(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint32(c-'A') + 10, true
	}
	return 0, false
}
