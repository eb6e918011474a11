package escape

import (
	"strings"

	"github.com/walteh/textesc/pkg/codepoint"
)

// Insert rewrites src, escaping every codepoint the policy selects and
// copying the rest as UTF-8. Malformed input decodes to
// codepoint.ReplacementChar and is written as such. A nil policy is
// DefaultPolicy.
//
// Encoded surrogates decode to their value and may be written as \uD800 and
// the like, which Scan rejects, so Expand does not invert Insert for such input.
func Insert(src []byte, policy Policy) string {
	if policy == nil {
		policy = DefaultPolicy
	}

	var out strings.Builder
	// escaping can only grow the text; len(src) is a floor, not a bound
	out.Grow(len(src))

	var seq [MaxSequenceLen]byte
	for i := 0; i < len(src); {
		cp, n := codepoint.Decode(src[i:])
		i += n

		b := codepoint.NewBuffer(seq[:])
		if Emit(b, cp, policy) {
			out.Write(b.Bytes())
		}
	}
	return out.String()
}

// InsertString is Insert over a string.
func InsertString(s string, policy Policy) string {
	return Insert([]byte(s), policy)
}

// Expand replaces every recognised escape sequence in src with the UTF-8
// encoding of its value and copies all other bytes unchanged. Malformed
// escapes are copied through as written. If the text ends inside an escape
// sequence, expansion stops before its backslash.
func Expand(src []byte) string {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		if src[i] != '\\' {
			out = append(out, src[i])
			i++
			continue
		}

		res := ScanSequence(src[i+1:])
		switch res.Status {
		case Truncated:
			return string(out)
		case Invalid:
			out = append(out, src[i:i+1+res.N]...)
		default:
			out = codepoint.AppendCodepoint(out, res.Codepoint)
		}
		i += 1 + res.N
	}
	return string(out)
}

// ExpandString is Expand over a string.
func ExpandString(s string) string {
	return Expand([]byte(s))
}
