package fixedset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustGraph(t *testing.T, words map[string]int) []byte {
	t.Helper()
	b := NewBuilder()
	for w, r := range words {
		require.NoError(t, b.Insert(w, r))
	}
	graph, err := b.Graph()
	require.NoError(t, err)
	return graph
}

func TestLookupSmallSet(t *testing.T) {
	graph := mustGraph(t, map[string]int{"a": 0, "ab": 1, "b": 2})

	require.Equal(t, 0, Lookup(graph, "a"))
	require.Equal(t, 1, Lookup(graph, "ab"))
	require.Equal(t, 2, Lookup(graph, "b"))
	require.Equal(t, NotFound, Lookup(graph, "c"))
	require.Equal(t, NotFound, Lookup(graph, "abc"))
	require.Equal(t, NotFound, Lookup(graph, "ba"))
	require.Equal(t, NotFound, Lookup(graph, ""))
}

// The decoders accept any well-formed graph, not only Builder output. This
// pins the byte format itself: the set {"a": 0} with the root link, an
// end-label 'a' and a result-code leaf.
func TestLookupHandAssembledGraph(t *testing.T) {
	graph := []byte{0x81, 0xE1, 0x81, 0x80}

	require.Equal(t, 0, Lookup(graph, "a"))
	require.Equal(t, NotFound, Lookup(graph, "b"))
	require.Equal(t, NotFound, Lookup(graph, "aa"))
	require.Equal(t, NotFound, Lookup(graph, ""))
}

func TestLookupMultiCharacterLabels(t *testing.T) {
	graph := mustGraph(t, map[string]int{"abc": 3, "abd": 4})

	require.Equal(t, 3, Lookup(graph, "abc"))
	require.Equal(t, 4, Lookup(graph, "abd"))
	require.Equal(t, NotFound, Lookup(graph, "ab"))
	require.Equal(t, NotFound, Lookup(graph, "abe"))
}

func TestLookupEmptyStringMember(t *testing.T) {
	graph := mustGraph(t, map[string]int{"": 5, "x": 6})

	require.Equal(t, 5, Lookup(graph, ""))
	require.Equal(t, 6, Lookup(graph, "x"))
	require.Equal(t, NotFound, Lookup(graph, "y"))

	l := NewIncrementalLookup(graph)
	require.Equal(t, 5, l.Result())
	require.True(t, l.Advance('x'))
	require.Equal(t, 6, l.Result())
}

func TestLookupEmptyGraph(t *testing.T) {
	graph := mustGraph(t, nil)

	require.Equal(t, NotFound, Lookup(graph, ""))
	require.Equal(t, NotFound, Lookup(graph, "a"))

	l := NewIncrementalLookup(graph)
	require.Equal(t, NotFound, l.Result())
	require.False(t, l.Advance('a'))
}

func TestIncrementalMatchesOneShotPerPrefix(t *testing.T) {
	words := map[string]int{
		"a":       0,
		"ab":      1,
		"abc":     7,
		"b":       2,
		"bazaar":  3,
		"bazooka": 4,
		"door":    5,
		"doors":   6,
	}
	graph := mustGraph(t, words)

	for _, input := range []string{"abc", "abcd", "bazaars", "bazooka", "doors", "zzz", ""} {
		l := NewIncrementalLookup(graph)
		require.Equal(t, Lookup(graph, ""), l.Result())
		for i := 0; i < len(input); i++ {
			prefix := input[:i+1]
			advanced := l.Advance(input[i])
			want := Lookup(graph, prefix)
			if !advanced {
				require.Equal(t, NotFound, want, "prefix %q", prefix)
				require.Equal(t, NotFound, l.Result(), "prefix %q", prefix)
				break
			}
			require.Equal(t, want, l.Result(), "prefix %q", prefix)
		}
	}
}

func TestIncrementalExhaustionIsPermanent(t *testing.T) {
	graph := mustGraph(t, map[string]int{"a": 0, "ab": 1, "b": 2})

	l := NewIncrementalLookup(graph)
	require.True(t, l.Advance('a'))
	require.Equal(t, 0, l.Result())
	require.True(t, l.Advance('b'))
	require.Equal(t, 1, l.Result())

	require.False(t, l.Advance('c'))
	require.Equal(t, NotFound, l.Result())
	// Subsequent calls have no effect, including bytes that would have
	// matched before exhaustion.
	require.False(t, l.Advance('a'))
	require.False(t, l.Advance('c'))
	require.Equal(t, NotFound, l.Result())
}

func TestIncrementalCopyIndependence(t *testing.T) {
	graph := mustGraph(t, map[string]int{"foo": 1, "foobar": 2, "fox": 3})

	l := NewIncrementalLookup(graph)
	require.True(t, l.Advance('f'))
	require.True(t, l.Advance('o'))

	snapshot := l

	require.True(t, l.Advance('o'))
	require.Equal(t, 1, l.Result())

	// The snapshot still sits after "fo" and can take the other branch.
	probe := snapshot
	require.True(t, probe.Advance('x'))
	require.Equal(t, 3, probe.Result())

	// Exhausting one copy leaves the others usable.
	require.False(t, probe.Advance('!'))
	require.True(t, l.Advance('b'))
	require.True(t, l.Advance('a'))
	require.True(t, l.Advance('r'))
	require.Equal(t, 2, l.Result())

	again := snapshot
	require.True(t, again.Advance('o'))
	require.Equal(t, 1, again.Result())
}

// Accepting nodes store their code as an end-label byte 0x80|code, which
// aliases input bytes 0x00-0x0f through the match tests. Those bytes must
// never match the result leaf, and skipping it must leave the real
// children reachable.
func TestAdvanceResultCodeBytesNeverMatch(t *testing.T) {
	graph := mustGraph(t, map[string]int{"a": 5, "ab": 1})

	l := NewIncrementalLookup(graph)
	require.True(t, l.Advance('a'))
	require.Equal(t, 5, l.Result())

	fork := l
	require.False(t, fork.Advance(0x05))
	require.Equal(t, NotFound, fork.Result())
	// Exhaustion holds; the cursor did not land inside the result leaf.
	require.False(t, fork.Advance('b'))

	// The sibling link after the result leaf still works.
	require.True(t, l.Advance('b'))
	require.Equal(t, 1, l.Result())

	for c := 0x00; c <= 0x0F; c++ {
		require.Equal(t, NotFound, Lookup(graph, "a"+string(byte(c))), "byte %#02x", c)
	}
}

func TestAdvanceMidLabelResultByteNeverMatches(t *testing.T) {
	// Malformed by construction: a label whose final byte is the
	// result-code byte 0x85 instead of a printable character.
	graph := []byte{0x81, 'a', 0x85}

	l := NewIncrementalLookup(graph)
	require.True(t, l.Advance('a'))
	require.False(t, l.Advance(0x05))
	require.Equal(t, NotFound, l.Result())
}

func TestAdvanceNonASCIINeverMatches(t *testing.T) {
	graph := mustGraph(t, map[string]int{"a": 0})

	l := NewIncrementalLookup(graph)
	require.False(t, l.Advance(0xFF))
	require.Equal(t, NotFound, l.Result())

	l = NewIncrementalLookup(graph)
	require.False(t, l.Advance(0x00))
}

// A set big enough to force two and three byte links out of the builder,
// round-tripped through the decoders.
func TestLookupLargeSetWideLinks(t *testing.T) {
	b := NewBuilder()
	const n = 3000
	for i := 0; i < n; i++ {
		require.NoError(t, b.Insert(fmt.Sprintf("w%04d", i), i%8))
	}
	graph, err := b.Graph()
	require.NoError(t, err)
	// Wide links exist only if the graph outgrew the 6-bit distance range.
	require.Greater(t, len(graph), 1<<6)

	for i := 0; i < n; i++ {
		word := fmt.Sprintf("w%04d", i)
		require.Equal(t, i%8, Lookup(graph, word), "word %q", word)
		require.Equal(t, NotFound, Lookup(graph, word+"x"))
		require.Equal(t, NotFound, Lookup(graph, word[:len(word)-1]))
	}
	require.Equal(t, NotFound, Lookup(graph, fmt.Sprintf("w%04d", n)))
}

func TestLookupTruncatedGraphStaysInBounds(t *testing.T) {
	graph := mustGraph(t, map[string]int{"abc": 3, "abd": 4, "xyz": 5})

	// Every truncation must fail cleanly, never read past the slice.
	for cut := 0; cut < len(graph); cut++ {
		truncated := graph[:cut]
		for _, key := range []string{"abc", "abd", "xyz", "q", ""} {
			result := Lookup(truncated, key)
			require.GreaterOrEqual(t, result, NotFound)
			require.LessOrEqual(t, result, MaxResult)
		}
	}
}

func FuzzIncrementalLookup(f *testing.F) {
	seed := mustGraphForFuzz()
	f.Add(seed, "ab")
	f.Add(seed, "")
	f.Add([]byte{0x81, 0xE1, 0x81, 0x80}, "a")
	f.Add([]byte{0x60, 0xFF}, "a")
	f.Add([]byte{}, "anything")

	f.Fuzz(func(t *testing.T, graph []byte, query string) {
		// Arbitrary graph bytes must never panic or read out of bounds.
		l := NewIncrementalLookup(graph)
		for i := 0; i < len(query); i++ {
			if !l.Advance(query[i]) {
				break
			}
			_ = l.Result()
		}
		_ = l.Result()
	})
}

func mustGraphForFuzz() []byte {
	b := NewBuilder()
	for w, r := range map[string]int{"a": 0, "ab": 1, "b": 2} {
		if err := b.Insert(w, r); err != nil {
			panic(err)
		}
	}
	graph, err := b.Graph()
	if err != nil {
		panic(err)
	}
	return graph
}

func BenchmarkLookup(b *testing.B) {
	builder := NewBuilder()
	for i := 0; i < 3000; i++ {
		if err := builder.Insert(fmt.Sprintf("w%04d", i), i%8); err != nil {
			b.Fatal(err)
		}
	}
	graph, err := builder.Graph()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if Lookup(graph, "w1500") != 1500%8 {
			b.Fatal("unexpected result")
		}
	}
}
