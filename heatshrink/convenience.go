package heatshrink

import (
	"bytes"
	"io"
)

// defaultStagingSize is the decoder input-staging buffer size used by
// the all-at-once helpers and the streaming adapters below, when the
// caller hasn't supplied one of their own via NewDecoder directly.
const defaultStagingSize = 512

// Compress runs data through a fresh encoder and returns the compressed
// bytes. It is the all-at-once counterpart of driving Sink/Poll/Finish
// by hand; most callers want this unless they're streaming.
func Compress(windowBits, lookaheadBits uint8, data []byte) ([]byte, error) {
	enc, err := NewEncoder(windowBits, lookaheadBits)
	if err != nil {
		return nil, err
	}
	return drainEncoder(enc, data)
}

// Decompress runs data through a fresh decoder and returns the original
// bytes.
func Decompress(windowBits, lookaheadBits uint8, data []byte) ([]byte, error) {
	dec, err := NewDecoder(windowBits, lookaheadBits, defaultStagingSize)
	if err != nil {
		return nil, err
	}
	return drainDecoder(dec, data)
}

func drainEncoder(enc *Encoder, data []byte) ([]byte, error) {
	var out bytes.Buffer
	buf := make([]byte, 4096)

	pollAll := func() {
		for {
			n, status := enc.Poll(buf)
			if n > 0 {
				out.Write(buf[:n])
			}
			if status == PollEmpty {
				return
			}
		}
	}

	for len(data) > 0 {
		n, _, err := enc.Sink(data)
		if err != nil {
			return nil, err
		}
		data = data[n:]
		pollAll()
	}
	for {
		status := enc.Finish()
		pollAll()
		if status == FinishDone {
			break
		}
	}
	return out.Bytes(), nil
}

func drainDecoder(dec *Decoder, data []byte) ([]byte, error) {
	var out bytes.Buffer
	buf := make([]byte, 4096)

	pollAll := func() error {
		for {
			n, status, err := dec.Poll(buf)
			if n > 0 {
				out.Write(buf[:n])
			}
			if err != nil {
				return err
			}
			if status == PollEmpty {
				return nil
			}
		}
	}

	for len(data) > 0 {
		n, _, err := dec.Sink(data)
		if err != nil {
			return nil, err
		}
		data = data[n:]
		if err := pollAll(); err != nil {
			return nil, err
		}
	}
	for {
		status, err := dec.Finish()
		if err != nil {
			return nil, err
		}
		if err := pollAll(); err != nil {
			return nil, err
		}
		if status == FinishDone {
			break
		}
	}
	return out.Bytes(), nil
}

// StreamWriter adapts an Encoder to io.Writer/io.Closer: writes are
// sunk and polled through to the underlying writer as they arrive,
// and Close flushes the trailing bits.
type StreamWriter struct {
	w   io.Writer
	enc *Encoder
	buf []byte
	err error
}

// NewStreamWriter wraps w so that bytes written to the returned
// StreamWriter are heatshrink-compressed before reaching w. Close must
// be called to flush the final bytes; the underlying stream has no
// self-delimiting framing, so the reader side must know when to stop
// reading on its own terms.
func NewStreamWriter(w io.Writer, windowBits, lookaheadBits uint8) (*StreamWriter, error) {
	enc, err := NewEncoder(windowBits, lookaheadBits)
	if err != nil {
		return nil, err
	}
	return &StreamWriter{w: w, enc: enc, buf: make([]byte, 4096)}, nil
}

func (sw *StreamWriter) drain() error {
	for {
		n, status := sw.enc.Poll(sw.buf)
		if n > 0 {
			if _, err := sw.w.Write(sw.buf[:n]); err != nil {
				return err
			}
		}
		if status == PollEmpty {
			return nil
		}
	}
}

func (sw *StreamWriter) Write(p []byte) (int, error) {
	if sw.err != nil {
		return 0, sw.err
	}
	total := 0
	for len(p) > 0 {
		n, _, err := sw.enc.Sink(p)
		if err != nil {
			sw.err = err
			return total, err
		}
		total += n
		p = p[n:]
		if err := sw.drain(); err != nil {
			sw.err = err
			return total, err
		}
	}
	return total, nil
}

// Close flushes any buffered input and the trailing partial byte.
func (sw *StreamWriter) Close() error {
	if sw.err != nil {
		return sw.err
	}
	for {
		status := sw.enc.Finish()
		if err := sw.drain(); err != nil {
			return err
		}
		if status == FinishDone {
			return nil
		}
	}
}

// StreamReader adapts a Decoder to io.Reader: it pulls compressed bytes
// from an underlying reader as needed and returns decompressed bytes.
// Reaching the underlying reader's EOF mid-token (a truncated stream)
// surfaces as ErrTruncatedStream, not a silent short read.
type StreamReader struct {
	r        io.Reader
	dec      *Decoder
	inBuf    []byte
	leftover []byte
	eof      bool
	err      error
}

// NewStreamReader wraps r, decompressing a heatshrink stream previously
// produced with the same windowBits/lookaheadBits.
func NewStreamReader(r io.Reader, windowBits, lookaheadBits uint8) (*StreamReader, error) {
	dec, err := NewDecoder(windowBits, lookaheadBits, defaultStagingSize)
	if err != nil {
		return nil, err
	}
	return &StreamReader{r: r, dec: dec, inBuf: make([]byte, defaultStagingSize)}, nil
}

func (sr *StreamReader) fill() error {
	if len(sr.leftover) == 0 && !sr.eof {
		n, err := sr.r.Read(sr.inBuf)
		if n > 0 {
			sr.leftover = sr.inBuf[:n]
		}
		if err == io.EOF {
			sr.eof = true
		} else if err != nil {
			return err
		}
	}
	for len(sr.leftover) > 0 {
		sunk, _, err := sr.dec.Sink(sr.leftover)
		if err != nil {
			return err
		}
		sr.leftover = sr.leftover[sunk:]
		if sunk == 0 {
			break
		}
	}
	return nil
}

func (sr *StreamReader) Read(p []byte) (int, error) {
	if sr.err != nil {
		return 0, sr.err
	}
	for {
		n, status, err := sr.dec.Poll(p)
		if err != nil {
			sr.err = err
			return n, err
		}
		if n > 0 {
			return n, nil
		}
		if status == PollMore {
			return 0, nil
		}

		if len(sr.leftover) == 0 && sr.eof {
			fstatus, ferr := sr.dec.Finish()
			if ferr != nil {
				sr.err = ferr
				return 0, ferr
			}
			if fstatus == FinishDone {
				sr.err = io.EOF
				return 0, io.EOF
			}
			continue
		}

		if err := sr.fill(); err != nil {
			sr.err = err
			return 0, err
		}
	}
}
