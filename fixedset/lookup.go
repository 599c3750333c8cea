package fixedset

// Lookup resolves key against the fixed set encoded by graph, returning the
// result code assigned to key when the graph was built, or NotFound.
func Lookup(graph []byte, key string) int {
	l := NewIncrementalLookup(graph)
	for i := 0; i < len(key); i++ {
		if !l.Advance(key[i]) {
			return NotFound
		}
	}
	return l.Result()
}

// IncrementalLookup provides membership and prefix queries against a fixed
// set of strings, with input supplied one byte at a time. After each
// Advance the lookup result for the sequence consumed so far is available
// from Result, so a caller can enumerate every matching prefix of an input
// in a single pass.
//
// IncrementalLookup is a value type. Assigning one makes an independent
// snapshot of the position, which is how callers branch or backtrack, for
// example to probe whether a designated wildcard byte continues the
// current path.
type IncrementalLookup struct {
	graph []byte

	// pos indexes the byte the walk is paused on, or is noPosition once
	// the graph is exhausted.
	pos int

	// posIsLabelChar is true when graph[pos] is a label character and
	// false when it is the start of an offset list.
	posIsLabelChar bool
}

// NewIncrementalLookup binds a cursor to the root of graph. The initial
// state corresponds to the empty input sequence: calling Result before any
// Advance reports whether the empty string is in the set.
func NewIncrementalLookup(graph []byte) IncrementalLookup {
	return IncrementalLookup{graph: graph, pos: 0, posIsLabelChar: false}
}

// Advance extends the input sequence by one byte.
//
// It returns true if the extended sequence is in the set or is a prefix of
// some member, false once the automaton has no matching transition. After
// a false return the cursor is permanently exhausted: further calls return
// false without changing state and Result keeps returning NotFound.
//
// Any byte value is accepted, but only 0x20-0x7f can ever match since the
// set itself is limited to that range.
func (l *IncrementalLookup) Advance(input byte) bool {
	if l.pos == noPosition {
		return false
	}
	if l.pos >= len(l.graph) {
		// A malformed graph walked past the end of the buffer.
		l.pos = noPosition
		return false
	}

	if l.posIsLabelChar {
		// Mid-label, so only the byte at pos can match. A result-code byte
		// never matches input, whatever its low bits alias.
		b := l.graph[l.pos]
		if _, isResult := returnValue(b); !isResult {
			if isEndCharMatch(b, input) {
				l.pos++
				l.posIsLabelChar = false
				return true
			}
			if isMatch(b, input) {
				l.pos++
				l.posIsLabelChar = true
				return true
			}
		}
	} else {
		// Walk the offset list until a child's first label byte matches
		// input, or until the list is exhausted.
		pos, offset := l.pos, l.pos
		for {
			var ok bool
			offset, pos, ok = nextLink(l.graph, pos, offset)
			if !ok {
				break
			}
			if offset >= len(l.graph) {
				// Malformed reference.
				break
			}
			b := l.graph[offset]
			if _, isResult := returnValue(b); isResult {
				// A result-code child. Its byte aliases end-label characters
				// 0x00-0x0f, so it must be skipped before the match tests or
				// inputs in that range would walk into the result leaf.
				continue
			}
			if isEndCharMatch(b, input) {
				// Matched a single-character label; the child continues
				// with its offset list.
				l.pos = offset + 1
				l.posIsLabelChar = false
				return true
			}
			if isMatch(b, input) {
				// Matched the first character of a longer label.
				l.pos = offset + 1
				l.posIsLabelChar = true
				return true
			}
			// Links are ordered by child character, so once the child's
			// character is past input no later link can match.
			if labelChar(b) > input {
				break
			}
		}
	}

	l.pos = noPosition
	return false
}

// Result returns the result code for the input sequence consumed so far,
// or NotFound if that sequence is not in the set. It may be called at any
// point, interleaved with further Advance calls.
func (l *IncrementalLookup) Result() int {
	if l.pos == noPosition || l.posIsLabelChar {
		// Mid-label positions cannot complete a member string.
		return NotFound
	}

	// Scan the offset list for a child whose label is a result code. Local
	// copies keep the cursor itself untouched so a later Advance still
	// sees every link.
	pos, offset := l.pos, l.pos
	for {
		var ok bool
		offset, pos, ok = nextLink(l.graph, pos, offset)
		if !ok {
			return NotFound
		}
		if offset >= len(l.graph) {
			return NotFound
		}
		if result, isResult := returnValue(l.graph[offset]); isResult {
			return result
		}
	}
}
