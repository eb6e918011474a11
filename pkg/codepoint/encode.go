package codepoint

// Encode writes the minimal UTF-8 encoding of cp into b without a
// terminator. It fails, writing nothing, when b lacks room for the whole
// sequence or cp is above MaxCodepoint.
func Encode(b *Buffer, cp Codepoint) bool {
	var seq [UTFMax]byte
	n := encode(&seq, cp)
	if n == 0 {
		return false
	}
	return b.Add(seq[:n])
}

// EncodeCat is Encode followed by a NUL terminator; see Buffer.Cat.
func EncodeCat(b *Buffer, cp Codepoint) bool {
	var seq [UTFMax]byte
	n := encode(&seq, cp)
	if n == 0 {
		return false
	}
	return b.Cat(seq[:n])
}

// AppendCodepoint appends the UTF-8 encoding of cp to dst. Codepoints above
// MaxCodepoint append ReplacementChar.
func AppendCodepoint(dst []byte, cp Codepoint) []byte {
	var seq [UTFMax]byte
	n := encode(&seq, cp)
	if n == 0 {
		n = encode(&seq, ReplacementChar)
	}
	return append(dst, seq[:n]...)
}

func encode(seq *[UTFMax]byte, cp Codepoint) int {
	switch ProperLength(cp) {
	case 1:
		seq[0] = byte(cp)
		return 1
	case 2:
		seq[0] = 0xC0 | byte(cp>>6)
		seq[1] = 0x80 | byte(cp&0x3F)
		return 2
	case 3:
		seq[0] = 0xE0 | byte(cp>>12)
		seq[1] = 0x80 | byte((cp>>6)&0x3F)
		seq[2] = 0x80 | byte(cp&0x3F)
		return 3
	case 4:
		seq[0] = 0xF0 | byte(cp>>18)
		seq[1] = 0x80 | byte((cp>>12)&0x3F)
		seq[2] = 0x80 | byte((cp>>6)&0x3F)
		seq[3] = 0x80 | byte(cp&0x3F)
		return 4
	}
	return 0
}
