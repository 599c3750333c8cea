package fixedset

import "errors"

// Result codes returned by Lookup and IncrementalLookup.Result.
//
// NotFound means the consumed sequence is not in the set. Every other value
// is the code assigned to the entry when the graph was built: a small
// non-negative integer, usually treated by callers as a bitmask. The named
// rule constants are the assignments used by registry-controlled-domain
// style datasets.
const (
	NotFound      = -1
	Found         = 0
	ExceptionRule = 1
	WildcardRule  = 2
	PrivateRule   = 4
)

// MaxResult is the largest result code Builder accepts.
const MaxResult = 7

var (
	ErrResultRange   = errors.New("fixedset: result code out of range")
	ErrBadLabelByte  = errors.New("fixedset: word byte outside 0x20-0x7f")
	ErrDuplicateWord = errors.New("fixedset: duplicate word")
	ErrGraphTooLarge = errors.New("fixedset: link distance does not fit in 21 bits")
)
