package heatshrink

import (
	"math/rand"
	"testing"
)

// buildBuffer lays out data the way the encoder's combined buffer does:
// backlog in the lower half, input staging in the upper half, so end
// can be used directly as an index into buf.
func buildBuffer(windowBits uint8, data []byte) ([]byte, uint16) {
	bufSize := uint16(1) << windowBits
	buf := make([]byte, 2*bufSize)
	copy(buf[bufSize:], data)
	return buf, bufSize
}

func TestIndexSearcher_AgreesWithNaive(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	const windowBits = 8
	bufSize := uint16(1) << windowBits

	data := make([]byte, bufSize)
	// A small alphabet guarantees plenty of repeated runs to search for.
	for i := range data {
		data[i] = byte(r.Intn(6))
	}

	buf, bufSize := buildBuffer(windowBits, data)
	end := bufSize + uint16(len(data))

	idx := newIndexSearcher(make([]int16, len(buf)))
	idx.reindex(buf, end)
	naive := naiveSearcher{}

	for scan := uint16(0); scan < uint16(len(data))-8; scan += 7 {
		at := bufSize + scan
		start := at - bufSize
		maxlen := uint16(len(data)) - scan
		if maxlen > 16 {
			maxlen = 16
		}

		_, idxLen := idx.longestMatch(buf, start, at, maxlen)
		_, naiveLen := naive.longestMatch(buf, start, at, maxlen)
		if idxLen != naiveLen {
			t.Fatalf("at scan=%d: index found length %d, naive found length %d", scan, idxLen, naiveLen)
		}
	}
}

func TestIndexSearcher_NoMatch(t *testing.T) {
	const windowBits = 8
	data := []byte("xyz")
	buf, bufSize := buildBuffer(windowBits, data)
	end := bufSize + uint16(len(data))

	idx := newIndexSearcher(make([]int16, len(buf)))
	idx.reindex(buf, end)

	pos, length := idx.longestMatch(buf, 0, bufSize, uint16(len(data)))
	if pos != matchNotFound || length != 0 {
		t.Fatalf("longestMatch on a window with no repeat = (%d, %d), want matchNotFound", pos, length)
	}
}

func TestNaiveSearcher_PrefersMostRecentOnTie(t *testing.T) {
	const windowBits = 8
	// "ab" occurs at position 0 and again at position 4; the scan target
	// at position 8 should prefer the nearer occurrence (position 4).
	data := []byte("abXXabXXab")
	buf, bufSize := buildBuffer(windowBits, data)
	start := bufSize
	end := bufSize + 8
	pos, length := naiveSearcher{}.longestMatch(buf, start, end, 2)
	if length != 2 {
		t.Fatalf("longestMatch length = %d, want 2", length)
	}
	if pos != bufSize+4 {
		t.Fatalf("longestMatch pos = %d, want the nearer occurrence at %d", pos, bufSize+4)
	}
}
