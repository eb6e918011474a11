package codepoint

// Buffer is a bounded output region over caller-owned memory.
//
// Writes are all or nothing: a write that does not fit leaves the buffer
// exactly as it was and reports false, so the caller can flush or grow and
// retry. Add writes the payload only. Cat also writes a trailing NUL, which
// must fit, but the write offset stops on the terminator so the next write
// overwrites it; the terminator is never counted as used capacity.
type Buffer struct {
	dst []byte
	off int
}

func NewBuffer(dst []byte) *Buffer {
	return &Buffer{dst: dst}
}

// Len is the number of payload bytes written so far.
func (b *Buffer) Len() int {
	return b.off
}

// Available is the remaining capacity in bytes.
func (b *Buffer) Available() int {
	return len(b.dst) - b.off
}

// Bytes returns the written payload. It aliases the underlying memory.
func (b *Buffer) Bytes() []byte {
	return b.dst[:b.off]
}

func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Reset discards the payload, keeping the memory.
func (b *Buffer) Reset() {
	b.off = 0
}

// Add appends p without a terminator.
func (b *Buffer) Add(p []byte) bool {
	return b.write(p, false)
}

// Cat appends p followed by a NUL terminator.
func (b *Buffer) Cat(p []byte) bool {
	return b.write(p, true)
}

// AddByte appends a single byte without a terminator.
func (b *Buffer) AddByte(c byte) bool {
	if b == nil || b.Available() < 1 {
		return false
	}
	b.dst[b.off] = c
	b.off++
	return true
}

func (b *Buffer) write(p []byte, terminate bool) bool {
	if b == nil {
		return false
	}
	need := len(p)
	if terminate {
		need++
	}
	if need > b.Available() {
		return false
	}
	b.off += copy(b.dst[b.off:], p)
	if terminate {
		b.dst[b.off] = 0
	}
	return true
}
