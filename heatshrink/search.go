package heatshrink

// matchNotFound is returned by a searcher when no match exists.
const matchNotFound = uint16(0xffff)

// searcher finds the longest match for buf[end:end+maxlen] among
// buf[start:end], preferring the most recent position on ties. It holds
// no break-even logic of its own; that filter is applied by the encoder
// once a candidate comes back, keeping "find the match" separate from
// "decide whether it's worth emitting".
//
// Two implementations are provided: indexSearcher, an inverted
// per-byte linked list accelerator, and naiveSearcher, a plain backward
// scan. Only this interface's contract is observable from outside the
// package.
type searcher interface {
	// reindex (re)builds any acceleration structure over buf[0:end).
	// Called once per fill cycle, after a fresh window of input lands.
	reindex(buf []byte, end uint16)

	// longestMatch searches buf[start:end) for the longest run matching
	// buf[end:end+maxlen), returning its absolute start position and
	// length, or (matchNotFound, 0).
	longestMatch(buf []byte, start, end, maxlen uint16) (pos uint16, length uint16)
}

// indexSearcher accelerates search with an inverted per-byte linked
// list: index[i] holds the previous buffer position with the same byte
// value as buf[i], or -1. Entries are read back as uint16, so positions
// up to 0xfffe fit and -1 reads as matchNotFound. Walking the chain from
// the most recent occurrence backward visits candidates newest-first, which is exactly
// the tie-break order the contract requires.
type indexSearcher struct {
	index []int16
}

func newIndexSearcher(buf []int16) *indexSearcher {
	return &indexSearcher{index: buf}
}

func (s *indexSearcher) reindex(buf []byte, end uint16) {
	var last [256]int16
	for i := range last {
		last[i] = -1
	}
	// end is 2^W plus the input size; at W=15 with a full input buffer
	// that is 65536, which arrives wrapped to 0.
	n := int(end-1) + 1
	for i := 0; i < n; i++ {
		v := buf[i]
		s.index[i] = last[v]
		last[v] = int16(i)
	}
}

func (s *indexSearcher) longestMatch(buf []byte, start, end, maxlen uint16) (uint16, uint16) {
	matchMaxLen := uint16(0)
	matchIndex := matchNotFound

	needle := buf[end:]
	pos := uint16(s.index[end])

	for pos != matchNotFound && pos >= start {
		candidate := buf[pos:]

		if candidate[matchMaxLen] != needle[matchMaxLen] {
			pos = uint16(s.index[pos])
			continue
		}

		var length uint16
		for length = 1; length < maxlen; length++ {
			if candidate[length] != needle[length] {
				break
			}
		}

		if length > matchMaxLen {
			matchMaxLen = length
			matchIndex = uint16(pos)
			if length == maxlen {
				break
			}
		}
		pos = uint16(s.index[pos])
	}

	if matchIndex == matchNotFound {
		return matchNotFound, 0
	}
	return matchIndex, matchMaxLen
}

// naiveSearcher performs a plain backward scan of the window, with no
// acceleration structure. It visits the nearest candidate first, so the
// same "strictly longer wins" comparison naturally prefers the most
// recent position on ties.
type naiveSearcher struct{}

func (naiveSearcher) reindex([]byte, uint16) {}

func (naiveSearcher) longestMatch(buf []byte, start, end, maxlen uint16) (uint16, uint16) {
	matchMaxLen := uint16(0)
	matchIndex := matchNotFound
	needle := buf[end:]

	for pos := end - 1; int32(pos) >= int32(start); pos-- {
		candidate := buf[pos:]
		var length uint16
		for length = 0; length < maxlen; length++ {
			if candidate[length] != needle[length] {
				break
			}
		}
		if length > matchMaxLen {
			matchMaxLen = length
			matchIndex = pos
			if length == maxlen {
				break
			}
		}
		if pos == 0 {
			break
		}
	}

	if matchIndex == matchNotFound {
		return matchNotFound, 0
	}
	return matchIndex, matchMaxLen
}
