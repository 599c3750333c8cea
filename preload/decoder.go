package preload

import "fmt"

// EntryReaderFunc interprets the record stored behind a matched
// end-of-string entry. r is positioned at the first bit of the record;
// search is the original query and searchOffset the count of its leading
// bytes not yet matched (zero means the whole string was consumed).
//
// The function must consume the record even when it rejects the match, to
// keep the bit stream aligned for the remaining dispatch entries, and it
// alone decides acceptance: a reader may accept at searchOffset > 0, which
// is how include-subdomain style entries match interior positions. A
// returned error aborts the decode and is propagated unchanged.
type EntryReaderFunc func(r *BitReader, search string, searchOffset int) (found bool, err error)

// Decoder resolves membership of strings, matched from their last byte
// backward, against a preloaded huffman trie. It is immutable after
// construction and safe for concurrent use; every Decode call walks with
// its own reader.
type Decoder struct {
	huffman      HuffmanDecoder
	trie         []byte
	trieBits     int
	rootPosition int
	readEntry    EntryReaderFunc
}

// NewDecoder binds a decoder to its huffman tree and trie buffers.
// trieBits is the exact bit length of the trie and rootPosition the bit
// offset of the root node within it.
func NewDecoder(huffmanTree, trie []byte, trieBits, rootPosition int, readEntry EntryReaderFunc) *Decoder {
	return &Decoder{
		huffman:      NewHuffmanDecoder(huffmanTree),
		trie:         trie,
		trieBits:     trieBits,
		rootPosition: rootPosition,
		readEntry:    readEntry,
	}
}

// Decode resolves search against the trie. found reports whether the entry
// reader accepted a record for it. A nil error covers both found and a
// clean not-found; a non-nil error is either ErrMalformed-wrapped
// corruption or an entry reader failure, and ends the query.
func (d *Decoder) Decode(search string) (found bool, err error) {
	r := NewBitReader(d.trie, d.trieBits)
	bitOffset := d.rootPosition

	// searchOffset is one more than the index of the next search byte to
	// match, so zero means the whole of search has been consumed.
	searchOffset := len(search)

	for {
		if !r.Seek(bitOffset) {
			return false, fmt.Errorf("%w: node position %d outside trie", ErrMalformed, bitOffset)
		}

		// Literal run: unary length, then that many symbols which must
		// match exactly.
		runLength, ok := r.Unary()
		if !ok {
			return false, fmt.Errorf("%w: truncated literal run length", ErrMalformed)
		}
		for i := 0; i < runLength; i++ {
			if searchOffset == 0 {
				// The run cannot match the start-of-string terminator.
				return false, nil
			}
			c, ok := d.huffman.Decode(&r)
			if !ok {
				return false, fmt.Errorf("%w: truncated literal run", ErrMalformed)
			}
			if search[searchOffset-1] != c {
				return false, nil
			}
			searchOffset--
		}

		// Dispatch table.
		firstJump := true
		childPosition := 0
		for {
			c, ok := d.huffman.Decode(&r)
			if !ok {
				return false, fmt.Errorf("%w: truncated dispatch table", ErrMalformed)
			}
			if c == EndOfTable {
				return false, nil
			}

			if c == EndOfString {
				found, err := d.readEntry(&r, search, searchOffset)
				if err != nil {
					return false, err
				}
				if found {
					return true, nil
				}
				continue
			}

			// Entries are sorted, so once c is past the byte we need no
			// later entry can match.
			if searchOffset == 0 || search[searchOffset-1] < c {
				return false, nil
			}

			if firstJump {
				// The first child position is a backward jump from the
				// current node.
				width, ok := r.Read(5)
				if !ok {
					return false, fmt.Errorf("%w: truncated jump width", ErrMalformed)
				}
				delta, ok := r.Read(int(width))
				if !ok {
					return false, fmt.Errorf("%w: truncated jump delta", ErrMalformed)
				}
				childPosition = bitOffset - int(delta)
				if childPosition < 0 || childPosition >= bitOffset {
					return false, fmt.Errorf("%w: dispatch jump to %d from node %d", ErrMalformed, childPosition, bitOffset)
				}
				firstJump = false
			} else {
				// Later child positions are forward deltas from the
				// previous child.
				long, ok := r.Read(1)
				if !ok {
					return false, fmt.Errorf("%w: truncated jump flag", ErrMalformed)
				}
				var delta uint32
				if long == 0 {
					delta, ok = r.Read(7)
				} else {
					var width uint32
					width, ok = r.Read(4)
					if ok {
						delta, ok = r.Read(int(width) + 8)
					}
				}
				if !ok {
					return false, fmt.Errorf("%w: truncated jump delta", ErrMalformed)
				}
				childPosition += int(delta)
				if childPosition >= bitOffset {
					return false, fmt.Errorf("%w: dispatch jump to %d from node %d", ErrMalformed, childPosition, bitOffset)
				}
			}

			if search[searchOffset-1] == c {
				bitOffset = childPosition
				searchOffset--
				break
			}
		}
	}
}
