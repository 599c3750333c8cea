package preload

// BitWriter accumulates bits most significant first, building the buffers
// BitReader reads. It is an offline helper; nothing on the query path
// writes.
type BitWriter struct {
	bytes    []byte
	current  byte
	used     int
	position int
}

// Position returns the number of bits written so far, which is also the
// bit offset the next write lands on.
func (w *BitWriter) Position() int { return w.position }

// WriteBit appends a single bit.
func (w *BitWriter) WriteBit(bit bool) {
	w.current <<= 1
	if bit {
		w.current |= 1
	}
	w.used++
	w.position++
	if w.used == 8 {
		w.bytes = append(w.bytes, w.current)
		w.current = 0
		w.used = 0
	}
}

// WriteBits appends the low numBits bits of value, most significant
// first. numBits must be at most 32.
func (w *BitWriter) WriteBits(value uint32, numBits int) {
	for i := numBits - 1; i >= 0; i-- {
		w.WriteBit(value>>uint(i)&1 == 1)
	}
}

// Bytes returns the written stream, zero-padded to whole bytes. Position
// still reports the exact bit length. The writer remains usable.
func (w *BitWriter) Bytes() []byte {
	out := append([]byte(nil), w.bytes...)
	if w.used > 0 {
		out = append(out, w.current<<(8-w.used))
	}
	return out
}
