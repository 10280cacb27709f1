package heatshrink

import "sync"

// EncoderPool reuses Encoders for one fixed (windowBits, lookaheadBits)
// pair, for callers issuing many short-lived compressions at the same
// parameters (e.g. one per chunk of an HTTP image upload) who want to
// avoid repeated buffer/search-index allocation.
type EncoderPool struct {
	windowBits, lookaheadBits uint8
	opts                      []EncoderOption
	pool                      sync.Pool
}

// NewEncoderPool validates windowBits/lookaheadBits once up front so
// Acquire never has to handle a construction error.
func NewEncoderPool(windowBits, lookaheadBits uint8, opts ...EncoderOption) (*EncoderPool, error) {
	if !validParams(windowBits, lookaheadBits) {
		return nil, ErrInvalidParams
	}
	p := &EncoderPool{windowBits: windowBits, lookaheadBits: lookaheadBits, opts: opts}
	p.pool.New = func() any {
		enc, _ := NewEncoder(p.windowBits, p.lookaheadBits, p.opts...)
		return enc
	}
	return p, nil
}

// Acquire returns a freshly-reset Encoder, reusing a pooled one if
// available.
func (p *EncoderPool) Acquire() *Encoder {
	enc := p.pool.Get().(*Encoder)
	enc.Reset()
	return enc
}

// Release returns enc to the pool for reuse. A nil enc is a no-op.
func (p *EncoderPool) Release(enc *Encoder) {
	if enc == nil {
		return
	}
	p.pool.Put(enc)
}

// DecoderPool is the decoder counterpart of EncoderPool.
type DecoderPool struct {
	windowBits, lookaheadBits uint8
	inputBufferSize           int
	opts                      []DecoderOption
	pool                      sync.Pool
}

// NewDecoderPool validates its parameters once up front, as NewEncoderPool does.
func NewDecoderPool(windowBits, lookaheadBits uint8, inputBufferSize int, opts ...DecoderOption) (*DecoderPool, error) {
	if !validParams(windowBits, lookaheadBits) || inputBufferSize < 1 {
		return nil, ErrInvalidParams
	}
	p := &DecoderPool{windowBits: windowBits, lookaheadBits: lookaheadBits, inputBufferSize: inputBufferSize, opts: opts}
	p.pool.New = func() any {
		dec, _ := NewDecoder(p.windowBits, p.lookaheadBits, p.inputBufferSize, p.opts...)
		return dec
	}
	return p, nil
}

// Acquire returns a freshly-reset Decoder, reusing a pooled one if available.
func (p *DecoderPool) Acquire() *Decoder {
	dec := p.pool.Get().(*Decoder)
	dec.Reset()
	return dec
}

// Release returns dec to the pool for reuse. A nil dec is a no-op.
func (p *DecoderPool) Release(dec *Decoder) {
	if dec == nil {
		return
	}
	p.pool.Put(dec)
}
