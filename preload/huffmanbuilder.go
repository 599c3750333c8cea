package preload

// HuffmanBuilder counts symbol frequencies and produces the two-byte-node
// tree consumed by HuffmanDecoder, together with the per-symbol codes used
// when writing compressed streams. The alphabet is the 7-bit range.
type HuffmanBuilder struct {
	counts [128]int
}

// HuffmanCode is the bit pattern assigned to one symbol, right-aligned in
// Bits.
type HuffmanCode struct {
	Bits   uint32
	Length int
}

// RecordSymbol counts one occurrence of c. Symbols outside the 7-bit
// alphabet are ignored.
func (b *HuffmanBuilder) RecordSymbol(c byte) {
	if c < 128 {
		b.counts[c]++
	}
}

type huffmanTreeNode struct {
	count       int
	order       int
	leaf        bool
	symbol      byte
	left, right *huffmanTreeNode
}

// Build assembles the tree over every recorded symbol. The construction is
// deterministic: ties between subtree weights break on insertion order, so
// the same counts always yield the same tree bytes.
func (b *HuffmanBuilder) Build() (tree []byte, codes [128]HuffmanCode, err error) {
	var queue []*huffmanTreeNode
	order := 0
	for sym, count := range b.counts {
		if count == 0 {
			continue
		}
		queue = append(queue, &huffmanTreeNode{count: count, order: order, leaf: true, symbol: byte(sym)})
		order++
	}
	if len(queue) < 2 {
		return nil, codes, ErrHuffmanTooFewSymbols
	}

	less := func(a, n *huffmanTreeNode) bool {
		if a.count != n.count {
			return a.count < n.count
		}
		return a.order < n.order
	}
	popMin := func() *huffmanTreeNode {
		min := 0
		for i := 1; i < len(queue); i++ {
			if less(queue[i], queue[min]) {
				min = i
			}
		}
		n := queue[min]
		queue = append(queue[:min], queue[min+1:]...)
		return n
	}
	for len(queue) > 1 {
		left := popMin()
		right := popMin()
		queue = append(queue, &huffmanTreeNode{
			count: left.count + right.count,
			order: order,
			left:  left,
			right: right,
		})
		order++
	}
	root := queue[0]

	// Number internal nodes breadth-first from the root so the root is
	// node 0, then emit each as its two edge bytes.
	internal := []*huffmanTreeNode{root}
	index := map[*huffmanTreeNode]int{root: 0}
	for at := 0; at < len(internal); at++ {
		for _, child := range []*huffmanTreeNode{internal[at].left, internal[at].right} {
			if !child.leaf {
				index[child] = len(internal)
				internal = append(internal, child)
			}
		}
	}
	if len(internal) > 128 {
		return nil, codes, ErrHuffmanTooManyNodes
	}
	tree = make([]byte, 0, 2*len(internal))
	for _, n := range internal {
		for _, child := range []*huffmanTreeNode{n.left, n.right} {
			if child.leaf {
				tree = append(tree, 0x80|child.symbol)
			} else {
				tree = append(tree, byte(index[child]))
			}
		}
	}

	if err := assignCodes(root, 0, 0, &codes); err != nil {
		return nil, codes, err
	}
	return tree, codes, nil
}

func assignCodes(n *huffmanTreeNode, bits uint32, length int, codes *[128]HuffmanCode) error {
	if length > 32 {
		return ErrHuffmanCodeTooLong
	}
	if n.leaf {
		codes[n.symbol] = HuffmanCode{Bits: bits, Length: length}
		return nil
	}
	if err := assignCodes(n.left, bits<<1, length+1, codes); err != nil {
		return err
	}
	return assignCodes(n.right, bits<<1|1, length+1, codes)
}
