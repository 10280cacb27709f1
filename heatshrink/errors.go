// Package heatshrink implements the heatshrink streaming LZSS-style
// compression codec. See doc.go for an overview.
package heatshrink

import "errors"

// Sentinel errors returned by the codec's constructors and state
// machines. Programmer-misuse errors leave state untouched; the
// hardened-decode error reports a wire-format violation.
var (
	// ErrInvalidParams is returned by NewEncoder/NewDecoder when the
	// requested window/lookahead bits are out of range.
	ErrInvalidParams = errors.New("heatshrink: invalid window/lookahead bits")

	// ErrMisuse is returned when Encoder.Sink is called after Finish. A
	// Sink while the input buffer awaits Poll reports SinkFull instead.
	ErrMisuse = errors.New("heatshrink: sink called out of sequence")

	// ErrNilBuffer is returned when a buffer-provider option supplies a
	// buffer too small for the requested window/lookahead bits.
	ErrNilBuffer = errors.New("heatshrink: provided buffer too small")

	// ErrUnknownState is returned by Poll if the state machine lands on
	// a value outside its known set. Should never happen outside of a
	// corrupted instance; reset is the only recovery.
	ErrUnknownState = errors.New("heatshrink: unknown state")

	// ErrInvalidBackref is returned by the decoder when a back-reference
	// token's index exceeds the window or its count exceeds the
	// lookahead limit. The stream is malformed; reset is the only
	// recovery.
	ErrInvalidBackref = errors.New("heatshrink: back-reference out of range")

	// ErrTruncatedStream is returned by Decoder.Finish when input runs
	// out mid-token (e.g. after a tag bit but before its literal or
	// back-reference fields). See DESIGN.md for why this is stricter
	// than the upstream C decoder, which reports DONE here.
	ErrTruncatedStream = errors.New("heatshrink: stream truncated mid-token")
)
