package codepoint

import "bytes"

type text interface {
	~[]byte | ~string
}

// Decode reads the codepoint at the start of src and returns it along with
// the number of bytes consumed.
//
// An empty src yields (ReplacementChar, 0). Every other failure (a stray or
// invalid lead byte, a continuation byte that does not match 10xxxxxx, a
// sequence cut short by the end of src, a 4-byte value above MaxCodepoint)
// yields ReplacementChar with exactly one byte consumed, so the bytes after
// the lead are examined again by the next call.
//
// Decode does not reject overlong encodings or surrogates; Validate does.
func Decode(src []byte) (Codepoint, int) {
	return decodeAt(src, 0)
}

// DecodeString is Decode over a string.
func DecodeString(src string) (Codepoint, int) {
	return decodeAt(src, 0)
}

func decodeAt[T text](src T, i int) (Codepoint, int) {
	if i >= len(src) {
		return ReplacementChar, 0
	}

	lead := src[i]
	n := PredictLength(lead)

	var cp Codepoint
	switch n {
	case 1:
		return Codepoint(lead), 1
	case 2:
		cp = Codepoint(lead & 0x1F)
	case 3:
		cp = Codepoint(lead & 0x0F)
	case 4:
		cp = Codepoint(lead & 0x07)
	default:
		return ReplacementChar, 1
	}

	for k := 1; k < n; k++ {
		if i+k >= len(src) || !IsContinuation(src[i+k]) {
			return ReplacementChar, 1
		}
		cp = cp<<6 | Codepoint(src[i+k]&0x3F)
	}

	if cp > MaxCodepoint {
		return ReplacementChar, 1
	}
	return cp, n
}

// Count returns the number of decode steps needed to walk src. Each
// malformed sequence counts as one codepoint.
func Count(src []byte) int {
	return count(src)
}

// CountString is Count over a string.
func CountString(src string) int {
	return count(src)
}

func count[T text](src T) int {
	total := 0
	for i := 0; i < len(src); {
		_, n := decodeAt(src, i)
		i += n
		total++
	}
	return total
}

// Find returns the byte offset of the first sequence in src that decodes to
// cp, or -1. Malformed sequences decode to ReplacementChar and can match it.
func Find(src []byte, cp Codepoint) int {
	for i := 0; i < len(src); {
		found, n := decodeAt(src, i)
		if found == cp {
			return i
		}
		i += n
	}
	return -1
}

// FindTerminated is Find over the NUL-terminated prefix of src.
func FindTerminated(src []byte, cp Codepoint) int {
	return Find(Terminated(src), cp)
}

// Terminated returns src up to, not including, its first NUL byte.
func Terminated(src []byte) []byte {
	if i := bytes.IndexByte(src, 0); i >= 0 {
		return src[:i]
	}
	return src
}
