package fixedset

// Byte-level helpers for the graph format described in doc.go.

// noPosition marks an exhausted cursor or the end of an offset list.
const noPosition = -1

// isMatch reports whether b matches key as a non-final label character.
func isMatch(b, key byte) bool { return b == key }

// isEndCharMatch reports whether b matches key as the final label character.
func isEndCharMatch(b, key byte) bool { return b == key|0x80 }

// labelChar returns the character carried by a label byte.
func labelChar(b byte) byte { return b & 0x7F }

// returnValue extracts the result code from a label byte, if it is one.
// Result codes are end-label characters with values 0x00-0x0F, so the byte
// has the high bit set and the next two bits clear.
func returnValue(b byte) (int, bool) {
	if b&0xE0 == 0x80 {
		return int(b & 0x0F), true
	}
	return 0, false
}

// nextLink decodes one link of an offset list.
//
// pos is the byte index of the link and offset the accumulated child offset
// so far (the offset-list start for the first link). It returns the child
// offset named by this link and the index of the next link, noPosition when
// this link is the last of its list. ok is false when pos does not address
// a complete link, which covers both the end of a list reached via
// noPosition and a truncated buffer.
func nextLink(graph []byte, pos, offset int) (childOffset, nextPos int, ok bool) {
	if pos < 0 || pos >= len(graph) {
		return 0, noPosition, false
	}
	b := graph[pos]
	var width, distance int
	switch b & 0x60 {
	case 0x60: // s11ddddd dddddddd dddddddd
		width = 3
		if pos+3 > len(graph) {
			return 0, noPosition, false
		}
		distance = int(b&0x1F)<<16 | int(graph[pos+1])<<8 | int(graph[pos+2])
	case 0x40: // s10ddddd dddddddd
		width = 2
		if pos+2 > len(graph) {
			return 0, noPosition, false
		}
		distance = int(b&0x1F)<<8 | int(graph[pos+1])
	default: // s0dddddd
		width = 1
		distance = int(b & 0x3F)
	}
	childOffset = offset + distance
	if b&0x80 != 0 {
		return childOffset, noPosition, true
	}
	return childOffset, pos + width, true
}
