package heatshrink

import "github.com/tomfleet/gdeh0169e01/internal/trace"

// Window/lookahead bit-count bounds: 4 ≤ W ≤ 15, 3 ≤ L < W.
const (
	MinWindowBits    = 4
	MaxWindowBits    = 15
	MinLookaheadBits = 3
)

// Tag bits distinguishing a literal byte from a back-reference on the wire.
const (
	tagLiteral = 1
	tagBackref = 0
)

func validParams(windowBits, lookaheadBits uint8) bool {
	if windowBits < MinWindowBits || windowBits > MaxWindowBits {
		return false
	}
	if lookaheadBits < MinLookaheadBits || lookaheadBits >= windowBits {
		return false
	}
	return true
}

// encoderConfig collects the construction-time choices an EncoderOption
// may override. Buffer/searchIndex being non-nil is this module's
// "static allocation" mode: the caller supplies preallocated storage
// instead of letting NewEncoder allocate it.
type encoderConfig struct {
	buffer      []byte
	searchIndex []int16
	useIndex    bool
	trace       trace.Logger
}

// EncoderOption customizes NewEncoder beyond the required window/lookahead
// bits.
type EncoderOption func(*encoderConfig)

// WithEncoderBuffer supplies preallocated backing storage for the
// encoder's combined backlog+input buffer (and, if useIndex is left at
// its default of true, the search index). buf must be at least
// 2*2^windowBits bytes; a too-small buffer makes NewEncoder return
// ErrNilBuffer. This is the "static allocation" path: the caller owns
// the memory (e.g. a package-level array, or a slice drawn from a
// sync.Pool) and NewEncoder performs no heap allocation for it.
func WithEncoderBuffer(buf []byte, searchIndex []int16) EncoderOption {
	return func(c *encoderConfig) {
		c.buffer = buf
		c.searchIndex = searchIndex
	}
}

// WithNaiveSearch disables the inverted-index match accelerator in favor
// of a plain backward scan. Useful on very small windows where building
// the index costs more than it saves, or to cross-check indexSearcher's
// results in tests.
func WithNaiveSearch() EncoderOption {
	return func(c *encoderConfig) {
		c.useIndex = false
	}
}

// WithEncoderTrace attaches a logger that receives a trace of the
// encoder's byte sinks, search results, and backlog saves. The default
// is silent.
func WithEncoderTrace(l trace.Logger) EncoderOption {
	return func(c *encoderConfig) {
		c.trace = l
	}
}

// decoderConfig collects the construction-time choices a DecoderOption
// may override.
type decoderConfig struct {
	inputBuf []byte
	window   []byte
	trace    trace.Logger
}

// DecoderOption customizes NewDecoder beyond the required window/lookahead
// bits and input buffer size.
type DecoderOption func(*decoderConfig)

// WithDecoderBuffers supplies preallocated backing storage: inputBuf for
// compressed-input staging (must be at least as large as the
// inputBufferSize passed to NewDecoder) and window for the 2^windowBits
// history ring. As with WithEncoderBuffer, this is the static
// allocation path.
func WithDecoderBuffers(inputBuf, window []byte) DecoderOption {
	return func(c *decoderConfig) {
		c.inputBuf = inputBuf
		c.window = window
	}
}

// WithDecoderTrace attaches a logger that receives a trace of the
// decoder's byte sinks and decoded back-references. The default is
// silent.
func WithDecoderTrace(l trace.Logger) DecoderOption {
	return func(c *decoderConfig) {
		c.trace = l
	}
}
