package escape

import (
	"strings"

	"github.com/walteh/textesc/pkg/codepoint"
)

// MaxSequenceLen is the longest escape sequence written, \UHHHHHHHH.
const MaxSequenceLen = 10

// AddEscape writes cp as an escape sequence: a letter alias when one
// exists, otherwise \xHH, \uHHHH or \UHHHHHHHH, the shortest form that holds
// cp. No terminator is written. It fails, writing nothing, when b is too
// small or cp is above codepoint.MaxCodepoint.
func AddEscape(b *codepoint.Buffer, cp codepoint.Codepoint) bool {
	var seq [MaxSequenceLen]byte
	n := formatEscape(&seq, cp)
	if n == 0 {
		return false
	}
	return b.Add(seq[:n])
}

// CatEscape is AddEscape followed by a NUL terminator.
func CatEscape(b *codepoint.Buffer, cp codepoint.Codepoint) bool {
	var seq [MaxSequenceLen]byte
	n := formatEscape(&seq, cp)
	if n == 0 {
		return false
	}
	return b.Cat(seq[:n])
}

// Emit writes cp escaped when policy says so and as raw UTF-8 otherwise. A
// nil policy is DefaultPolicy.
func Emit(b *codepoint.Buffer, cp codepoint.Codepoint, policy Policy) bool {
	if policy == nil {
		policy = DefaultPolicy
	}
	if policy(cp) {
		return AddEscape(b, cp)
	}
	return codepoint.Encode(b, cp)
}

// EmitCat is Emit followed by a NUL terminator.
func EmitCat(b *codepoint.Buffer, cp codepoint.Codepoint, policy Policy) bool {
	if policy == nil {
		policy = DefaultPolicy
	}
	if policy(cp) {
		return CatEscape(b, cp)
	}
	return codepoint.EncodeCat(b, cp)
}

// AddUTF8OrEscape writes cp in a form that is safe inside a quoted literal
// of any kind and is pure ASCII: control characters become aliases or \xHH,
// the quotes and the backslash become \" \' \\, DEL becomes \x7F, anything
// above ASCII becomes \uHHHH or \UHHHHHHHH. Printable ASCII is written as is.
func AddUTF8OrEscape(b *codepoint.Buffer, cp codepoint.Codepoint) bool {
	var seq [MaxSequenceLen]byte
	n := formatUTF8OrEscape(&seq, cp)
	if n == 0 {
		return false
	}
	return b.Add(seq[:n])
}

// CatUTF8OrEscape is AddUTF8OrEscape followed by a NUL terminator.
func CatUTF8OrEscape(b *codepoint.Buffer, cp codepoint.Codepoint) bool {
	var seq [MaxSequenceLen]byte
	n := formatUTF8OrEscape(&seq, cp)
	if n == 0 {
		return false
	}
	return b.Cat(seq[:n])
}

func formatUTF8OrEscape(seq *[MaxSequenceLen]byte, cp codepoint.Codepoint) int {
	switch {
	case cp == '\\' || cp == '"' || cp == '\'':
		seq[0] = '\\'
		seq[1] = byte(cp)
		return 2
	case cp >= ' ' && cp < 0x7F:
		seq[0] = byte(cp)
		return 1
	}
	return formatEscape(seq, cp)
}

func formatEscape(seq *[MaxSequenceLen]byte, cp codepoint.Codepoint) int {
	if i := aliasIndex(cp); i >= 0 {
		seq[0] = '\\'
		seq[1] = aliasLetters[i]
		return 2
	}

	var digits int
	seq[0] = '\\'
	switch {
	case cp <= 0x7F:
		seq[1] = 'x'
		digits = 2
	case cp <= 0xFFFF:
		seq[1] = 'u'
		digits = 4
	case cp <= codepoint.MaxCodepoint:
		seq[1] = 'U'
		digits = 8
	default:
		return 0
	}

	v := uint32(cp)
	for i := 1 + digits; i >= 2; i-- {
		seq[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return 2 + digits
}

func aliasIndex(cp codepoint.Codepoint) int {
	if cp >= ' ' {
		return -1
	}
	return strings.IndexByte(aliasChars, byte(cp))
}
