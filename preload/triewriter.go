package preload

import (
	"fmt"
	"math/bits"
	"sort"
)

// TrieEntry is one string to preload together with the callback that
// writes its record payload. The record layout is the caller's contract
// with its EntryReaderFunc; this package only positions the stream.
type TrieEntry struct {
	Name  string
	Write func(w *BitWriter) error
}

// TrieData is the output of BuildTrie, ready to hand to NewDecoder.
type TrieData struct {
	HuffmanTree  []byte
	Trie         []byte
	TrieBits     int
	RootPosition int
}

// BuildTrie compiles entries into the backward-matching trie format in
// doc.go. This is the offline half of the contract with Decoder.
//
// Entry names must be distinct and their bytes must avoid the reserved
// EndOfString and EndOfTable values and the top-bit range.
func BuildTrie(entries []TrieEntry) (TrieData, error) {
	reversed := make([]reversedEntry, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for i := range entries {
		name := entries[i].Name
		for j := 0; j < len(name); j++ {
			if name[j] == EndOfString || name[j] == EndOfTable || name[j] >= 0x80 {
				return TrieData{}, fmt.Errorf("%w: %q", ErrTrieBadSymbol, name)
			}
		}
		if seen[name] {
			return TrieData{}, fmt.Errorf("%w: %q", ErrTrieDuplicateName, name)
		}
		seen[name] = true
		reversed = append(reversed, reversedEntry{rname: reverseString(name), entry: &entries[i]})
	}
	sort.Slice(reversed, func(i, j int) bool { return reversed[i].rname < reversed[j].rname })

	root := buildTrieNodes(reversed, 0)

	var freq HuffmanBuilder
	// The sentinels appear even in degenerate tries; seed them so the
	// alphabet is never smaller than two symbols.
	freq.RecordSymbol(EndOfString)
	freq.RecordSymbol(EndOfTable)
	countSymbols(root, &freq)
	tree, codes, err := freq.Build()
	if err != nil {
		return TrieData{}, err
	}

	var w BitWriter
	rootPosition, err := emitTrieNode(&w, root, &codes)
	if err != nil {
		return TrieData{}, err
	}
	return TrieData{
		HuffmanTree:  tree,
		Trie:         w.Bytes(),
		TrieBits:     w.Position(),
		RootPosition: rootPosition,
	}, nil
}

type reversedEntry struct {
	rname string
	entry *TrieEntry
}

// trieWriterNode is a radix node over the reversed names: a shared literal
// run, an optional terminal entry, and children keyed by the next
// character.
type trieWriterNode struct {
	prefix   []byte
	entry    *TrieEntry
	children []trieWriterChild
}

type trieWriterChild struct {
	c    byte
	node *trieWriterNode
}

// buildTrieNodes assembles the radix node for the sorted group of names
// sharing rname[:depth].
func buildTrieNodes(group []reversedEntry, depth int) *trieWriterNode {
	n := &trieWriterNode{}

	// Extend the literal run while every name in the group continues with
	// the same character.
	for len(group) > 0 {
		if len(group[0].rname) == depth {
			break
		}
		c := group[0].rname[depth]
		if len(group[len(group)-1].rname) == depth || group[len(group)-1].rname[depth] != c {
			// The group is sorted, so equal first and last characters
			// would imply all equal; here they differ.
			break
		}
		n.prefix = append(n.prefix, c)
		depth++
	}

	at := 0
	if at < len(group) && len(group[at].rname) == depth {
		n.entry = group[at].entry
		at++
	}
	for at < len(group) {
		c := group[at].rname[depth]
		end := at
		for end < len(group) && group[end].rname[depth] == c {
			end++
		}
		n.children = append(n.children, trieWriterChild{c: c, node: buildTrieNodes(group[at:end], depth+1)})
		at = end
	}
	return n
}

func countSymbols(n *trieWriterNode, freq *HuffmanBuilder) {
	for _, c := range n.prefix {
		freq.RecordSymbol(c)
	}
	if n.entry != nil {
		freq.RecordSymbol(EndOfString)
	}
	for _, ch := range n.children {
		freq.RecordSymbol(ch.c)
		countSymbols(ch.node, freq)
	}
	freq.RecordSymbol(EndOfTable)
}

// emitTrieNode writes n's subtree in post-order, children first, and
// returns the bit position of n itself. Post-order keeps every child at a
// lower position than its parent, which is what the dispatch jump
// encoding assumes.
func emitTrieNode(w *BitWriter, n *trieWriterNode, codes *[128]HuffmanCode) (int, error) {
	childPositions := make([]int, len(n.children))
	for i, ch := range n.children {
		p, err := emitTrieNode(w, ch.node, codes)
		if err != nil {
			return 0, err
		}
		childPositions[i] = p
	}

	pos := w.Position()
	for range n.prefix {
		w.WriteBit(true)
	}
	w.WriteBit(false)
	for _, c := range n.prefix {
		writeCode(w, codes[c])
	}

	if n.entry != nil {
		writeCode(w, codes[EndOfString])
		if err := n.entry.Write(w); err != nil {
			return 0, err
		}
	}

	prev := 0
	for i, ch := range n.children {
		writeCode(w, codes[ch.c])
		if i == 0 {
			delta := pos - childPositions[0]
			width := bits.Len32(uint32(delta))
			if width > 31 {
				return 0, fmt.Errorf("%w: backward delta %d", ErrTrieJumpTooLong, delta)
			}
			w.WriteBits(uint32(width), 5)
			w.WriteBits(uint32(delta), width)
		} else {
			delta := childPositions[i] - prev
			if delta < 1<<7 {
				w.WriteBit(false)
				w.WriteBits(uint32(delta), 7)
			} else {
				width := bits.Len32(uint32(delta))
				if width > 23 {
					return 0, fmt.Errorf("%w: forward delta %d", ErrTrieJumpTooLong, delta)
				}
				w.WriteBit(true)
				w.WriteBits(uint32(width-8), 4)
				w.WriteBits(uint32(delta), width)
			}
		}
		prev = childPositions[i]
	}
	writeCode(w, codes[EndOfTable])
	return pos, nil
}

func writeCode(w *BitWriter, code HuffmanCode) {
	w.WriteBits(code.Bits, code.Length)
}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
