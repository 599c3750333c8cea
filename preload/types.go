package preload

import "errors"

// Reserved dispatch-table characters, part of the wire contract with
// TrieWriter. EndOfString marks an entry record (the beginning of the
// search string, since matching runs backward) and always sorts first;
// EndOfTable terminates a dispatch table.
const (
	EndOfString byte = 0
	EndOfTable  byte = 127
)

var (
	// ErrMalformed reports an internal inconsistency in preload data: a
	// position outside the trie, a huffman index outside the tree, or a
	// decode that ran out of bits. It indicates corrupt or mismatched
	// static data, not a condition expected in normal operation, and the
	// query that hit it should be treated as fatally failed, not retried.
	ErrMalformed = errors.New("preload: malformed preload data")

	ErrHuffmanTooFewSymbols = errors.New("preload: huffman tree needs at least two symbols")
	ErrHuffmanTooManyNodes  = errors.New("preload: huffman tree does not fit 7-bit node indexes")
	ErrHuffmanCodeTooLong   = errors.New("preload: huffman code longer than 32 bits")
	ErrTrieDuplicateName    = errors.New("preload: duplicate trie entry name")
	ErrTrieJumpTooLong      = errors.New("preload: dispatch jump does not fit the delta encoding")
	ErrTrieBadSymbol        = errors.New("preload: trie entry byte outside the huffman alphabet")
)
