package preload

/*

# Preload trie decoding

This package resolves whether a string is present in a preloaded dataset
encoded as a huffman-compressed trie, matching the string from its last
byte backward to its first. The dataset is built offline (BitWriter,
HuffmanBuilder, TrieWriter) and queried at runtime (BitReader,
HuffmanDecoder, Decoder) over immutable byte buffers, with fixed-size query
state and no allocation on the query path.

What a matched record means is the caller's business: Decoder hands the
positioned bit reader to a caller-supplied EntryReaderFunc and reports only
whether that callback accepted an entry. For HSTS-style data the record
holds flags such as whether subdomains are included; nothing in this
package interprets it.

## Huffman tree format

The tree is an array of two-byte nodes; node 0 is the root. Byte 2*i+b is
the b-edge of node i: if its high bit is set the low seven bits are the
decoded symbol, otherwise they index the next node.

## Trie bit format

The trie is bit-addressed. A node, at some bit position P, is:

 1. a unary-coded literal-run length (n ones then a zero), followed by that
    many huffman symbols, each of which must match the next search byte
    taken from the end backward
 2. a dispatch table: huffman symbols in ascending order, EndOfString (0)
    first when present, terminated by EndOfTable (127)

An EndOfString entry is followed inline by the caller-opaque record. Every
other entry is followed by the position of its child node. The first such
entry encodes a backward jump: a 5-bit width w, then a w-bit delta, child
at P-delta. Later entries encode forward deltas from the previous child
position: a flag bit, then either a 7-bit delta (flag 0) or a 4-bit width
w and a (w+8)-bit delta (flag 1). Children always live at lower bit
positions than their parent; TrieWriter emits nodes in post-order with the
root last.

This layout is the binding contract between TrieWriter and Decoder; data
built elsewhere must agree with it bit for bit.

*/
