package heatshrink

import "github.com/tomfleet/gdeh0169e01/internal/trace"

// encoderState is the encoder's state machine node.
type encoderState int

const (
	stateNotFull encoderState = iota
	stateFilled
	stateSearch
	stateYieldTagBit
	stateYieldLiteral
	stateYieldBRIndex
	stateYieldBRLength
	stateSaveBacklog
	stateFlushBits
	stateDone
)

// Encoder compresses raw bytes into the heatshrink wire format. The zero
// value is not usable; construct with NewEncoder.
//
// Poll honors the caller's output buffer size exactly: at most one
// completed output byte is buffered internally, so a 1-byte out slice
// is as valid a call as a 4096-byte one. Search strategy and buffer
// allocation are both pluggable via options.
type Encoder struct {
	windowBits    uint8
	lookaheadBits uint8

	// buffer is the combined backlog (lower half) + input staging
	// (upper half), 2*2^windowBits bytes total.
	buffer []byte
	search searcher

	inputSize      uint16
	matchScanIndex uint16
	matchPos       uint16
	matchLength    uint16

	outgoingBits      uint16
	outgoingBitsCount uint8

	finishing bool
	state     encoderState

	currentByte uint8
	bitIndex    uint8

	// At most one completed output byte is ever pending at a time: every
	// push of <=8 bits can complete at most one byte (see pushBits).
	outReady bool
	outByte  byte

	trace trace.Logger
}

// NewEncoder allocates an encoder for the given window/lookahead bit
// counts (4<=windowBits<=15, 3<=lookaheadBits<windowBits). Out-of-range
// parameters return ErrInvalidParams.
func NewEncoder(windowBits, lookaheadBits uint8, opts ...EncoderOption) (*Encoder, error) {
	if !validParams(windowBits, lookaheadBits) {
		return nil, ErrInvalidParams
	}

	cfg := encoderConfig{useIndex: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	bufSz := 2 << windowBits
	var buf []byte
	if cfg.buffer != nil {
		if len(cfg.buffer) < bufSz {
			return nil, ErrNilBuffer
		}
		buf = cfg.buffer[:bufSz]
	} else {
		buf = make([]byte, bufSz)
	}

	var s searcher
	if cfg.useIndex {
		var idx []int16
		if cfg.searchIndex != nil {
			if len(cfg.searchIndex) < bufSz {
				return nil, ErrNilBuffer
			}
			idx = cfg.searchIndex[:bufSz]
		} else {
			idx = make([]int16, bufSz)
		}
		s = newIndexSearcher(idx)
	} else {
		s = naiveSearcher{}
	}

	e := &Encoder{
		windowBits:    windowBits,
		lookaheadBits: lookaheadBits,
		buffer:        buf,
		search:        s,
		trace:         cfg.trace,
	}
	e.Reset()
	return e, nil
}

// Reset returns the encoder to its initial state, as if newly
// constructed. Calling Reset twice in a row is equivalent to calling it
// once.
func (e *Encoder) Reset() {
	e.inputSize = 0
	e.state = stateNotFull
	e.matchScanIndex = 0
	e.matchLength = 0
	e.matchPos = 0
	e.finishing = false
	e.bitIndex = 0x80
	e.currentByte = 0x00
	e.outgoingBits = 0
	e.outgoingBitsCount = 0
	e.outReady = false
	e.outByte = 0
	clear(e.buffer)
}

func (e *Encoder) inputBufferSize() uint16 { return 1 << e.windowBits }
func (e *Encoder) inputOffset() uint16     { return e.inputBufferSize() }
func (e *Encoder) lookaheadSize() uint16   { return 1 << e.lookaheadBits }

// Sink copies as many bytes from data as fit into the input buffer,
// returning the count actually copied. It returns SinkFull (not an
// error) when not all of data fit, including when nothing did; the
// caller should Poll to make room and sink the remainder. Sinking after
// Finish returns ErrMisuse.
func (e *Encoder) Sink(data []byte) (int, SinkStatus, error) {
	if e.finishing {
		return 0, 0, ErrMisuse
	}
	if e.state != stateNotFull {
		return 0, SinkFull, nil
	}

	bufSize := e.inputBufferSize()
	rem := bufSize - e.inputSize
	if rem == 0 {
		return 0, SinkFull, nil
	}

	cpSz := rem
	if len(data) < int(cpSz) {
		cpSz = uint16(len(data))
	}

	writeOffset := bufSize + e.inputSize
	copy(e.buffer[writeOffset:], data[:cpSz])
	e.inputSize += cpSz
	e.trace.Printf("sink: %d bytes, input buffer now %d/%d", cpSz, e.inputSize, bufSize)

	if cpSz == rem {
		e.state = stateFilled
	}
	if int(cpSz) < len(data) {
		return int(cpSz), SinkFull, nil
	}
	return int(cpSz), SinkOK, nil
}

// Poll writes up to len(out) compressed bytes and reports whether more
// output remains to be drained (PollMore, call again with a fresh
// buffer) or the encoder is waiting on more input or Finish (PollEmpty).
func (e *Encoder) Poll(out []byte) (int, PollStatus) {
	n := 0
	for {
		if e.outReady {
			if n >= len(out) {
				return n, PollMore
			}
			out[n] = e.outByte
			n++
			e.outReady = false
			continue
		}

		switch e.state {
		case stateNotFull, stateDone:
			return n, PollEmpty
		case stateFilled:
			e.search.reindex(e.buffer, e.inputOffset()+e.inputSize)
			e.state = stateSearch
		case stateSearch:
			e.state = e.stepSearch()
		case stateYieldTagBit:
			e.state = e.yieldTagBit()
		case stateYieldLiteral:
			e.state = e.yieldLiteral()
		case stateYieldBRIndex:
			e.state = e.yieldBRIndex()
		case stateYieldBRLength:
			e.state = e.yieldBRLength()
		case stateSaveBacklog:
			e.state = e.saveBacklog()
		case stateFlushBits:
			e.state = e.flushBits()
		default:
			return n, PollEmpty
		}
	}
}

// Finish marks the stream as ending. The caller must keep alternating
// Finish and Poll until Finish returns FinishDone.
func (e *Encoder) Finish() FinishStatus {
	e.finishing = true
	if e.state == stateNotFull {
		e.state = stateFilled
	}
	if e.state == stateDone {
		return FinishDone
	}
	return FinishMore
}

func (e *Encoder) stepSearch() encoderState {
	windowLength := e.inputBufferSize()
	lookaheadSz := e.lookaheadSize()
	msi := e.matchScanIndex

	bias := lookaheadSz
	if e.finishing {
		bias = 1
	}
	if int(msi) > int(e.inputSize)-int(bias) {
		if e.finishing {
			return stateFlushBits
		}
		return stateSaveBacklog
	}

	end := e.inputOffset() + msi
	start := end - windowLength

	maxPossible := lookaheadSz
	if e.inputSize-msi < lookaheadSz {
		maxPossible = e.inputSize - msi
	}

	pos, length := e.search.longestMatch(e.buffer, start, end, maxPossible)
	breakEven := (1 + uint16(e.windowBits) + uint16(e.lookaheadBits)) / 8

	if pos == matchNotFound || length <= breakEven {
		e.matchScanIndex++
		e.matchLength = 0
		e.trace.Printf("search @ %d: no match", msi)
		return stateYieldTagBit
	}

	e.matchPos = end - pos
	e.matchLength = length
	e.trace.Printf("search @ %d: match len %d at distance %d", msi, length, e.matchPos)
	return stateYieldTagBit
}

func (e *Encoder) yieldTagBit() encoderState {
	if e.matchLength == 0 {
		e.pushBits(1, tagLiteral)
		return stateYieldLiteral
	}
	e.pushBits(1, tagBackref)
	e.outgoingBits = e.matchPos - 1
	e.outgoingBitsCount = e.windowBits
	return stateYieldBRIndex
}

func (e *Encoder) yieldLiteral() encoderState {
	processedOffset := e.matchScanIndex - 1
	c := e.buffer[e.inputOffset()+processedOffset]
	e.pushBits(8, c)
	return stateSearch
}

func (e *Encoder) yieldBRIndex() encoderState {
	if e.pushOutgoingBits() > 0 {
		return stateYieldBRIndex
	}
	e.outgoingBits = e.matchLength - 1
	e.outgoingBitsCount = e.lookaheadBits
	return stateYieldBRLength
}

func (e *Encoder) yieldBRLength() encoderState {
	if e.pushOutgoingBits() > 0 {
		return stateYieldBRLength
	}
	e.matchScanIndex += e.matchLength
	e.matchLength = 0
	return stateSearch
}

func (e *Encoder) saveBacklog() encoderState {
	bufSize := e.inputBufferSize()
	msi := e.matchScanIndex
	rem := bufSize - msi // unprocessed bytes to carry forward

	copy(e.buffer, e.buffer[bufSize-rem:])
	e.matchScanIndex = 0
	e.inputSize -= bufSize - rem
	e.trace.Printf("save backlog: carrying %d bytes forward", rem)
	return stateNotFull
}

func (e *Encoder) flushBits() encoderState {
	if e.bitIndex != 0x80 {
		e.queueByte(e.currentByte)
	}
	return stateDone
}

// pushOutgoingBits drains at most 8 bits (MSB-first) from the staged
// outgoing-bits register per call.
func (e *Encoder) pushOutgoingBits() uint8 {
	var count, bits uint8
	if e.outgoingBitsCount > 8 {
		count = 8
		bits = uint8(e.outgoingBits >> (e.outgoingBitsCount - 8))
	} else {
		count = e.outgoingBitsCount
		bits = uint8(e.outgoingBits)
	}
	if count > 0 {
		e.pushBits(count, bits)
		e.outgoingBitsCount -= count
	}
	return count
}

// pushBits writes the low count bits of bits (count<=8), MSB-first, into
// the output bit register. At most one output byte completes per call.
func (e *Encoder) pushBits(count, bits uint8) {
	if count == 8 && e.bitIndex == 0x80 {
		e.queueByte(bits)
		return
	}
	for i := int(count) - 1; i >= 0; i-- {
		if bits&(1<<uint(i)) != 0 {
			e.currentByte |= e.bitIndex
		}
		e.bitIndex >>= 1
		if e.bitIndex == 0x00 {
			e.bitIndex = 0x80
			e.queueByte(e.currentByte)
			e.currentByte = 0x00
		}
	}
}

func (e *Encoder) queueByte(b byte) {
	e.outReady = true
	e.outByte = b
}
