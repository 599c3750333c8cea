package preload

// BitReader reads a byte buffer one bit at a time, most significant bit of
// each byte first. Exhaustion is bit-exact: a reader over numBits bits
// fails on the numBits+1'th bit even when the final byte has spare bits.
//
// BitReader is a value type over an immutable buffer. Copying one
// snapshots the read position and the copies advance independently, so
// concurrent queries need only use distinct readers.
type BitReader struct {
	bytes   []byte
	numBits int

	// byteIndex is one past the byte cached in cur.
	byteIndex int
	cur       byte
	// used counts the bits of cur already returned; 8 forces a refill.
	used int
}

// NewBitReader returns a reader positioned at bit 0. numBits may be
// smaller than 8*len(bytes); it is clamped to that bound so the reader
// can never address past the buffer.
func NewBitReader(bytes []byte, numBits int) BitReader {
	if max := 8 * len(bytes); numBits > max {
		numBits = max
	}
	if numBits < 0 {
		numBits = 0
	}
	return BitReader{bytes: bytes, numBits: numBits, byteIndex: 0, used: 8}
}

// BitsRead returns the number of bits consumed so far, which is also the
// absolute bit offset of the next read.
func (r *BitReader) BitsRead() int {
	return r.byteIndex*8 - (8 - r.used)
}

// Next returns the next bit. ok is false once all numBits bits have been
// consumed.
func (r *BitReader) Next() (bit, ok bool) {
	if r.BitsRead() >= r.numBits {
		return false, false
	}
	if r.used == 8 {
		r.cur = r.bytes[r.byteIndex]
		r.byteIndex++
		r.used = 0
	}
	bit = r.cur>>(7-r.used)&1 == 1
	r.used++
	return bit, true
}

// Read returns the next numBits bits packed most-significant-first into an
// unsigned integer. numBits must be at most 32. On failure the read
// position is left unchanged.
func (r *BitReader) Read(numBits int) (uint32, bool) {
	if numBits < 0 || numBits > 32 {
		return 0, false
	}
	saved := *r
	var v uint32
	for i := 0; i < numBits; i++ {
		bit, ok := r.Next()
		if !ok {
			*r = saved
			return 0, false
		}
		if bit {
			v |= 1 << (numBits - 1 - i)
		}
	}
	return v, true
}

// Unary counts consecutive set bits up to and including the first clear
// bit, returning the count of set bits. Exhausting the input before a
// clear bit is a failure.
func (r *BitReader) Unary() (int, bool) {
	count := 0
	for {
		bit, ok := r.Next()
		if !ok {
			return 0, false
		}
		if !bit {
			return count, true
		}
		count++
	}
}

// Seek moves the reader to an absolute bit offset. Seeking to exactly
// numBits is allowed and leaves the reader exhausted. Out-of-range offsets
// fail with the position unchanged.
func (r *BitReader) Seek(offset int) bool {
	if offset < 0 || offset > r.numBits {
		return false
	}
	r.byteIndex = offset / 8
	r.used = offset % 8
	if r.byteIndex < len(r.bytes) {
		r.cur = r.bytes[r.byteIndex]
	} else {
		// offset == numBits on the final byte boundary; cur is never
		// consulted because the reader is exhausted.
		r.cur = 0
	}
	r.byteIndex++
	return true
}
