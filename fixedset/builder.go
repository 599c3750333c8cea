package fixedset

import (
	"fmt"
	"sort"
)

// Builder assembles the byte encoding read by Lookup and
// IncrementalLookup: insert every word with its result code, then call
// Graph. This is an offline step; the decoders never mutate a graph.
//
// The builder emits a trie-shaped graph and does not merge shared
// suffixes. The decoders accept any acyclic encoding, so smaller graphs
// minimized by other tooling remain compatible as long as they follow the
// format in doc.go.
type Builder struct {
	words map[string]int
}

func NewBuilder() *Builder {
	return &Builder{words: make(map[string]int)}
}

// Insert adds word with the given result code (0 to MaxResult). Word bytes
// must lie in 0x20-0x7f. Inserting the same word twice is an error.
func (b *Builder) Insert(word string, result int) error {
	if result < 0 || result > MaxResult {
		return fmt.Errorf("%w: %d", ErrResultRange, result)
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 0x20 || word[i] > 0x7F {
			return fmt.Errorf("%w: %q", ErrBadLabelByte, word)
		}
	}
	if _, dup := b.words[word]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateWord, word)
	}
	b.words[word] = result
	return nil
}

// Graph encodes the inserted words. The builder remains usable afterwards.
func (b *Builder) Graph() ([]byte, error) {
	root := &builderTrieNode{result: NotFound}
	words := make([]string, 0, len(b.words))
	for w := range b.words {
		words = append(words, w)
	}
	sort.Strings(words)
	for _, w := range words {
		n := root
		for i := 0; i < len(w); i++ {
			c := w[i]
			if n.edges == nil {
				n.edges = make(map[byte]*builderTrieNode)
			}
			child := n.edges[c]
			if child == nil {
				child = &builderTrieNode{result: NotFound}
				n.edges[c] = child
			}
			n = child
		}
		n.result = b.words[w]
	}

	layoutRoot := &graphNode{children: childLayouts(root)}
	nodes := flatten(layoutRoot, nil)
	if err := solveOffsets(nodes); err != nil {
		return nil, err
	}
	return emit(nodes)
}

type builderTrieNode struct {
	result int
	edges  map[byte]*builderTrieNode
}

// graphNode is one node of the layout tree: a label run followed by child
// links. The label is held in emitted form, end marker included, so result
// leaves are nodes with a single 0x80|code byte and no children. The root
// has an empty label.
type graphNode struct {
	label    []byte
	children []*graphNode

	// size and offset are solved iteratively; link widths depend on
	// distances which depend on sizes.
	size   int
	offset int
}

func sortedEdgeChars(edges map[byte]*builderTrieNode) []byte {
	chars := make([]byte, 0, len(edges))
	for c := range edges {
		chars = append(chars, c)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	return chars
}

// childLayouts lists t's children in link order: the result leaf first if
// t accepts, then subtries in ascending character order.
func childLayouts(t *builderTrieNode) []*graphNode {
	var out []*graphNode
	if t.result != NotFound {
		out = append(out, &graphNode{label: []byte{0x80 | byte(t.result)}})
	}
	for _, c := range sortedEdgeChars(t.edges) {
		out = append(out, layoutChild(c, t.edges[c]))
	}
	return out
}

// layoutChild turns the subtrie below the edge labelled c into a layout
// node, folding single-child chains into a multi-character label.
func layoutChild(c byte, t *builderTrieNode) *graphNode {
	label := []byte{c}
	for t.result == NotFound && len(t.edges) == 1 {
		nc := sortedEdgeChars(t.edges)[0]
		label = append(label, nc)
		t = t.edges[nc]
	}
	label[len(label)-1] |= 0x80
	return &graphNode{label: label, children: childLayouts(t)}
}

// flatten appends n and its subtree in pre-order. Pre-order placement
// keeps every child after its parent's offset list, so link distances are
// strictly positive, and lays a node's children out in link order, so
// ascending characters get ascending offsets.
func flatten(n *graphNode, out []*graphNode) []*graphNode {
	out = append(out, n)
	for _, c := range n.children {
		out = flatten(c, out)
	}
	return out
}

// solveOffsets fixes each node's size and offset. Starting from the
// minimal one-byte-per-link estimate, link widths only ever grow, so the
// iteration converges.
func solveOffsets(nodes []*graphNode) error {
	for _, n := range nodes {
		n.size = len(n.label) + len(n.children)
	}
	for {
		off := 0
		for _, n := range nodes {
			n.offset = off
			off += n.size
		}
		changed := false
		for _, n := range nodes {
			linksSize, err := nodeLinksSize(n)
			if err != nil {
				return err
			}
			if s := len(n.label) + linksSize; s != n.size {
				n.size = s
				changed = true
			}
		}
		if !changed {
			return nil
		}
	}
}

func nodeLinksSize(n *graphNode) (int, error) {
	prev := n.offset + len(n.label)
	size := 0
	for _, c := range n.children {
		w, err := linkWidth(c.offset - prev)
		if err != nil {
			return 0, err
		}
		size += w
		prev = c.offset
	}
	return size, nil
}

func linkWidth(distance int) (int, error) {
	switch {
	case distance <= 0:
		return 0, fmt.Errorf("fixedset: internal: non-positive link distance %d", distance)
	case distance < 1<<6:
		return 1, nil
	case distance < 1<<13:
		return 2, nil
	case distance < 1<<21:
		return 3, nil
	default:
		return 0, ErrGraphTooLarge
	}
}

func emit(nodes []*graphNode) ([]byte, error) {
	var out []byte
	for _, n := range nodes {
		if n.offset != len(out) {
			return nil, fmt.Errorf("fixedset: internal: node offset mismatch at %d", len(out))
		}
		out = append(out, n.label...)
		prev := n.offset + len(n.label)
		for i, c := range n.children {
			link, err := encodeLink(c.offset-prev, i == len(n.children)-1)
			if err != nil {
				return nil, err
			}
			out = append(out, link...)
			prev = c.offset
		}
	}
	return out, nil
}

func encodeLink(distance int, last bool) ([]byte, error) {
	var link []byte
	switch {
	case distance < 1<<6:
		link = []byte{byte(distance)}
	case distance < 1<<13:
		link = []byte{0x40 | byte(distance>>8), byte(distance)}
	case distance < 1<<21:
		link = []byte{0x60 | byte(distance>>16), byte(distance >> 8), byte(distance)}
	default:
		return nil, ErrGraphTooLarge
	}
	if last {
		link[0] |= 0x80
	}
	return link, nil
}
