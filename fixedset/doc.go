package fixedset

/*

# Fixed-set graph lookups

This package answers membership queries against large static sets of ASCII
strings encoded as a DAFSA (deterministic acyclic finite state automaton).
The encoded graph is a plain byte slice, typically a few hundred bytes per
thousand strings, and queries walk it with O(1) extra state and no
allocation.

It follows the same "functional primitives" style as the rest of this
repository:

- small, composable functions
- explicit byte layouts
- pointer-free navigation via indices into an immutable slice

## Graph byte format

The format is the binding contract between Builder and the decoders; graphs
built elsewhere must agree with it byte for byte.

The buffer is a sequence of nodes. Byte 0 is the start of the root node's
offset list (the root has no label). Every other node is

	<label bytes> <offset list>

except end-label nodes, which are a single label byte with no list.

A label byte carries a character in its low 7 bits; the high bit marks the
last character of the label. Result codes are end-label characters with
values 0x00-0x0F, so a byte b is a result code iff b&0xE0 == 0x80, carrying
the result in b&0x0F. Label characters are restricted to 0x20-0x7F, so the
two encodings never collide.

An offset list holds one link per child, each 1-3 bytes. The first byte of
a link uses bit 7 to mark the last link of the list and bits 6-5 to select
the width:

	s0dddddd                     6-bit distance
	s10ddddd dddddddd           13-bit distance
	s11ddddd dddddddd dddddddd  21-bit distance

Distances are strictly positive and cumulative: the k-th child starts at
offsetListStart + d1 + ... + dk. Links are listed in ascending child
character order, which under Builder's layout is also ascending offset
order; result-code children always come first.

## Invariants

1. the graph is acyclic and every reachable offset lies inside the buffer
2. a walk from the root consumes one input byte per step and terminates
3. decoding never reads outside the supplied slice; a malformed reference
   exhausts the cursor instead

*/
