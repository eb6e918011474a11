package codepoint

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ErrNilInput is returned by Check when there is nothing to validate.
var ErrNilInput = errors.Base("nil input")

// Reason describes why a sequence is not well-formed UTF-8
type Reason string

const (
	ReasonMalformed Reason = "malformed sequence"
	ReasonOverlong  Reason = "overlong encoding"
	ReasonSurrogate Reason = "surrogate codepoint"
)

// InvalidError locates the first ill-formed sequence found by Check.
type InvalidError struct {
	// Offset is the byte offset of the sequence's lead byte
	Offset int
	// Length is the number of bytes the decoder consumed for it
	Length int
	Reason Reason
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid utf-8 at byte %d: %s", e.Offset, e.Reason)
}

// Validate reports whether src is well-formed UTF-8: every sequence decodes,
// uses the minimal number of bytes for its value, and is not a surrogate. A
// literal encoding of U+FFFD is accepted. A nil src is not valid.
func Validate(src []byte) bool {
	if src == nil {
		return false
	}
	off, _, _ := firstInvalid(src)
	return off < 0
}

// ValidateTerminated is Validate over the NUL-terminated prefix of src.
func ValidateTerminated(src []byte) bool {
	if src == nil {
		return false
	}
	return Validate(Terminated(src))
}

// Check is Validate returning an *InvalidError for the first offending
// sequence.
func Check(src []byte) error {
	if src == nil {
		return errors.WithStack(ErrNilInput)
	}
	off, n, reason := firstInvalid(src)
	if off < 0 {
		return nil
	}
	return errors.WithStack(&InvalidError{Offset: off, Length: n, Reason: reason})
}

func firstInvalid(src []byte) (int, int, Reason) {
	for i := 0; i < len(src); {
		cp, n := decodeAt(src, i)
		switch {
		case cp == ReplacementChar && n == 1:
			return i, n, ReasonMalformed
		// Each codepoint has exactly one encoding. Modified UTF-8's C0 80
		// for NUL is rejected along with every other overlong form.
		case n > 1 && ProperLength(cp) < n:
			return i, n, ReasonOverlong
		// CESU-8 style surrogates are not UTF-8 (RFC 3629).
		case IsSurrogate(cp):
			return i, n, ReasonSurrogate
		}
		i += n
	}
	return -1, 0, ""
}
