package heatshrink

import "github.com/tomfleet/gdeh0169e01/internal/trace"

// decoderState is the decoder's state machine node.
type decoderState int

const (
	dStateTagBit decoderState = iota
	dStateYieldLiteral
	dStateBackrefIndexMSB
	dStateBackrefIndexLSB
	dStateBackrefCountMSB
	dStateBackrefCountLSB
	dStateYieldBackref
)

// Decoder expands heatshrink-compressed bytes back to the original raw
// bytes. The zero value is not usable; construct with NewDecoder.
//
// A malformed back-reference (index or count field decoding past the
// window/lookahead bound) returns ErrInvalidBackref rather than reading
// out of bounds; see DESIGN.md for why that check can only fire on
// genuinely corrupted state. Finish distinguishes a clean end of stream
// from a mid-token truncation; see Finish's doc comment.
type Decoder struct {
	windowBits    uint8
	lookaheadBits uint8

	inputBuf   []byte // compressed-input staging
	inputSize  uint16
	inputIndex uint16

	window ring // history/output ring, 2^windowBits bytes

	outputCount uint16 // bytes remaining in the in-progress back-reference
	outputIndex uint16 // its negative offset from the ring head

	state        decoderState
	currentByte  uint8
	bitIndex     uint8
	pending      byte
	pendingReady bool

	trace trace.Logger
}

// NewDecoder allocates a decoder for the given window/lookahead bit
// counts and compressed-input staging buffer size (inputBufferSize >=
// 1). Out-of-range parameters return ErrInvalidParams.
func NewDecoder(windowBits, lookaheadBits uint8, inputBufferSize int, opts ...DecoderOption) (*Decoder, error) {
	if !validParams(windowBits, lookaheadBits) || inputBufferSize < 1 {
		return nil, ErrInvalidParams
	}

	cfg := decoderConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var inputBuf []byte
	if cfg.inputBuf != nil {
		if len(cfg.inputBuf) < inputBufferSize {
			return nil, ErrNilBuffer
		}
		inputBuf = cfg.inputBuf[:inputBufferSize]
	} else {
		inputBuf = make([]byte, inputBufferSize)
	}

	winSize := 1 << windowBits
	var windowBuf []byte
	if cfg.window != nil {
		if len(cfg.window) < winSize {
			return nil, ErrNilBuffer
		}
		windowBuf = cfg.window[:winSize]
	} else {
		windowBuf = make([]byte, winSize)
	}

	d := &Decoder{
		windowBits:    windowBits,
		lookaheadBits: lookaheadBits,
		inputBuf:      inputBuf,
		window:        newRing(windowBuf),
		trace:         cfg.trace,
	}
	d.Reset()
	return d, nil
}

// Reset returns the decoder to its initial state.
func (d *Decoder) Reset() {
	d.state = dStateTagBit
	d.inputSize = 0
	d.inputIndex = 0
	d.bitIndex = 0x00
	d.currentByte = 0x00
	d.outputCount = 0
	d.outputIndex = 0
	d.window.reset()
	d.pending = 0
	d.pendingReady = false
}

func (d *Decoder) windowSize() uint16   { return 1 << d.windowBits }
func (d *Decoder) lookaheadMax() uint16 { return 1 << d.lookaheadBits }

// Sink copies as many bytes from data as fit into the compressed-input
// staging buffer, returning the count copied. It returns SinkFull (not
// an error) when not all of data fit, including when nothing did.
func (d *Decoder) Sink(data []byte) (int, SinkStatus, error) {
	rem := uint16(len(d.inputBuf)) - d.inputSize
	if rem == 0 {
		return 0, SinkFull, nil
	}
	size := rem
	if len(data) < int(size) {
		size = uint16(len(data))
	}
	copy(d.inputBuf[d.inputSize:], data[:size])
	d.inputSize += size
	d.trace.Printf("sink: %d bytes, staging now %d/%d", size, d.inputSize, len(d.inputBuf))
	if int(size) < len(data) {
		return int(size), SinkFull, nil
	}
	return int(size), SinkOK, nil
}

// Poll writes up to len(out) raw bytes and reports PollMore (call again
// with a fresh buffer) or PollEmpty (waiting on more input or Finish).
// A malformed back-reference returns ErrInvalidBackref; the only
// recovery from that point is Reset.
func (d *Decoder) Poll(out []byte) (int, PollStatus, error) {
	n := 0
	for {
		if d.pendingReady {
			if n >= len(out) {
				return n, PollMore, nil
			}
			out[n] = d.pending
			n++
			d.pendingReady = false
			continue
		}

		var next decoderState
		var progressed bool
		var err error
		switch d.state {
		case dStateTagBit:
			next, progressed, err = d.tagBit()
		case dStateYieldLiteral:
			next, progressed, err = d.yieldLiteral()
		case dStateBackrefIndexMSB:
			next, progressed, err = d.backrefIndexMSB()
		case dStateBackrefIndexLSB:
			next, progressed, err = d.backrefIndexLSB()
		case dStateBackrefCountMSB:
			next, progressed, err = d.backrefCountMSB()
		case dStateBackrefCountLSB:
			next, progressed, err = d.backrefCountLSB()
		case dStateYieldBackref:
			next, progressed, err = d.yieldBackref()
		default:
			return n, PollEmpty, ErrUnknownState
		}
		if err != nil {
			return n, PollEmpty, err
		}
		d.state = next
		if !progressed {
			return n, PollEmpty, nil
		}
	}
}

// Finish reports whether the decoder has produced all pending output.
// With no input remaining, FinishDone is reported from the tag-bit
// state, or from a back-reference field state when the token in progress
// is the encoder's zero padding: its tag and every bit after it lie
// within the last 7 bits of the final byte and are all zero. Any other
// state with no input remaining means the stream was truncated
// mid-token, reported as ErrTruncatedStream rather than a silent
// FinishDone.
func (d *Decoder) Finish() (FinishStatus, error) {
	if d.state == dStateTagBit {
		if d.inputSize == 0 {
			return FinishDone, nil
		}
		return FinishMore, nil
	}
	if d.state == dStateYieldBackref {
		// Buffered output still to drain; not a truncation.
		return FinishMore, nil
	}
	if d.inputSize == 0 {
		// Bits of the pending token read so far, tag included (an
		// undercount only where it is already too long to be padding).
		read := 1 + d.windowBits
		if d.state == dStateBackrefIndexMSB {
			read = 1
		} else if d.state == dStateBackrefIndexLSB {
			read = 1 + d.windowBits - min(d.windowBits, 8)
		}
		tail := max(uint16(d.bitIndex)<<1, 1)<<read - 1
		if tail < 0x80 && uint16(d.currentByte)&tail == 0 {
			return FinishDone, nil
		}
		return 0, ErrTruncatedStream
	}
	return FinishMore, nil
}

// getBits accumulates the next count (<=15) bits MSB-first, pulling new
// input bytes as needed. It reports ok=false ("no bits") without
// consuming anything if it cannot satisfy the whole request right now;
// every caller in this package only ever asks for count<=8, for which
// the guard below guarantees getBits either completes atomically or
// fails before touching any state.
func (d *Decoder) getBits(count uint8) (uint16, bool) {
	if count > 15 {
		return 0, false
	}
	if d.inputSize == 0 {
		if d.bitIndex < (1 << (count - 1)) {
			return 0, false
		}
	}

	var acc uint16
	for i := uint8(0); i < count; i++ {
		if d.bitIndex == 0x00 {
			if d.inputSize == 0 {
				return 0, false
			}
			d.currentByte = d.inputBuf[d.inputIndex]
			d.inputIndex++
			if d.inputIndex == d.inputSize {
				d.inputIndex = 0
				d.inputSize = 0
			}
			d.bitIndex = 0x80
		}
		acc <<= 1
		if d.currentByte&d.bitIndex != 0 {
			acc |= 0x01
		}
		d.bitIndex >>= 1
	}
	return acc, true
}

func (d *Decoder) tagBit() (decoderState, bool, error) {
	bits, ok := d.getBits(1)
	if !ok {
		return dStateTagBit, false, nil
	}
	if bits > 0 {
		return dStateYieldLiteral, true, nil
	}
	if d.windowBits > 8 {
		return dStateBackrefIndexMSB, true, nil
	}
	d.outputIndex = 0
	return dStateBackrefIndexLSB, true, nil
}

func (d *Decoder) yieldLiteral() (decoderState, bool, error) {
	bits, ok := d.getBits(8)
	if !ok {
		return dStateYieldLiteral, false, nil
	}
	c := uint8(bits)
	d.window.push(c)
	d.pending, d.pendingReady = c, true
	return dStateTagBit, true, nil
}

func (d *Decoder) backrefIndexMSB() (decoderState, bool, error) {
	bitCt := d.windowBits - 8
	bits, ok := d.getBits(bitCt)
	if !ok {
		return dStateBackrefIndexMSB, false, nil
	}
	d.outputIndex = bits << 8
	return dStateBackrefIndexLSB, true, nil
}

func (d *Decoder) backrefIndexLSB() (decoderState, bool, error) {
	bitCt := d.windowBits
	if bitCt > 8 {
		bitCt = 8
	}
	bits, ok := d.getBits(bitCt)
	if !ok {
		return dStateBackrefIndexLSB, false, nil
	}
	d.outputIndex |= bits
	d.outputIndex++
	if d.outputIndex < 1 || d.outputIndex > d.windowSize() {
		return dStateBackrefIndexLSB, true, ErrInvalidBackref
	}
	d.outputCount = 0
	if d.lookaheadBits > 8 {
		return dStateBackrefCountMSB, true, nil
	}
	return dStateBackrefCountLSB, true, nil
}

func (d *Decoder) backrefCountMSB() (decoderState, bool, error) {
	bitCt := d.lookaheadBits - 8
	bits, ok := d.getBits(bitCt)
	if !ok {
		return dStateBackrefCountMSB, false, nil
	}
	d.outputCount = bits << 8
	return dStateBackrefCountLSB, true, nil
}

func (d *Decoder) backrefCountLSB() (decoderState, bool, error) {
	bitCt := d.lookaheadBits
	if bitCt > 8 {
		bitCt = 8
	}
	bits, ok := d.getBits(bitCt)
	if !ok {
		return dStateBackrefCountLSB, false, nil
	}
	d.outputCount |= bits
	d.outputCount++
	if d.outputCount < 1 || d.outputCount > d.lookaheadMax() {
		return dStateBackrefCountLSB, true, ErrInvalidBackref
	}
	d.trace.Printf("backref: index %d count %d", d.outputIndex, d.outputCount)
	return dStateYieldBackref, true, nil
}

func (d *Decoder) yieldBackref() (decoderState, bool, error) {
	c := d.window.at(d.outputIndex)
	d.window.push(c)
	d.pending, d.pendingReady = c, true
	d.outputCount--
	if d.outputCount == 0 {
		return dStateTagBit, true, nil
	}
	return dStateYieldBackref, true, nil
}
