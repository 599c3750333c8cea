package preload

// HuffmanDecoder decodes one symbol at a time from a bit stream, walking
// the two-byte-node tree described in doc.go. The tree is walked rather
// than expanded into tables; preload alphabets are small and decode time
// is dominated by the trie walk around it.
type HuffmanDecoder struct {
	tree []byte
}

func NewHuffmanDecoder(tree []byte) HuffmanDecoder {
	return HuffmanDecoder{tree: tree}
}

// Decode reads bits from r until a leaf is reached and returns the leaf's
// symbol. It fails if r runs out of bits, or if the tree indexes outside
// itself, which is reported as a decode failure rather than read out of
// bounds.
func (d HuffmanDecoder) Decode(r *BitReader) (byte, bool) {
	index := 0
	for {
		bit, ok := r.Next()
		if !ok {
			return 0, false
		}
		at := 2 * index
		if bit {
			at++
		}
		if at >= len(d.tree) {
			// Corrupt tree.
			return 0, false
		}
		b := d.tree[at]
		if b&0x80 != 0 {
			return b & 0x7F, true
		}
		index = int(b & 0x7F)
	}
}
