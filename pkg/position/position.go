package position

import (
	"bytes"
	"fmt"

	"github.com/walteh/textesc/pkg/codepoint"
)

// Place is a zero-based line and character. Characters are counted in
// codepoints, so a multi-byte sequence occupies one column.
type Place struct {
	Line      int
	Character int
}

type Range struct {
	Start Place
	End   Place
}

// RawPosition represents a span of the source text
type RawPosition struct {
	// Offset is the byte offset in the source text
	Offset int
	// Text is the actual text at this position
	Text string
}

func NewBasicPosition(text string, offset int) RawPosition {
	return RawPosition{Text: text, Offset: offset}
}

// NewBytePosition spans n bytes of src starting at offset, clamped to src.
func NewBytePosition(src []byte, offset, n int) RawPosition {
	offset = clamp(offset, len(src))
	end := clamp(offset+n, len(src))
	return RawPosition{Text: string(src[offset:end]), Offset: offset}
}

// ID returns a unique identifier for this position based on offset and text
func (p RawPosition) ID() string {
	return fmt.Sprintf("%s@%d", p.Text, p.Offset)
}

// Length returns the length of the text at this position, in bytes
func (p RawPosition) Length() int {
	return len(p.Text)
}

// GetLineAndColumn calculates the zero-based line and column of the
// position's start within text.
func (p RawPosition) GetLineAndColumn(text []byte) (line, col int) {
	off := clamp(p.Offset, len(text))
	before := text[:off]

	line = bytes.Count(before, []byte{'\n'})
	lineStart := bytes.LastIndexByte(before, '\n') + 1
	col = codepoint.Count(before[lineStart:])

	return line, col
}

func (p RawPosition) GetEndPosition() RawPosition {
	return RawPosition{
		Text:   "",
		Offset: p.Offset + p.Length(),
	}
}

// GetRange calculates the line/column range covered by the position
func (p RawPosition) GetRange(text []byte) Range {
	startLine, startCol := p.GetLineAndColumn(text)
	endLine, endCol := p.GetEndPosition().GetLineAndColumn(text)
	return Range{
		Start: Place{Line: startLine, Character: startCol},
		End:   Place{Line: endLine, Character: endCol},
	}
}

func (p RawPosition) String() string {
	return p.ID()
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
