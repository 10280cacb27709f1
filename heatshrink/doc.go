/*
Package heatshrink implements the heatshrink streaming compression codec:
an LZSS-style sliding-window compressor with bit-packed, unframed output,
built for byte-at-a-time streaming under small fixed memory.

The wire format has no magic bytes, length prefix, or checksum; framing
is the caller's problem (see cmd/heatshrink for one way to add it).

# Encoding

	enc, err := heatshrink.NewEncoder(8, 4)
	if err != nil { ... }
	var out []byte
	buf := make([]byte, 256)
	for n, _, err := enc.Sink(data); ...   // see Encoder.Sink / Encoder.Poll
	enc.Finish()

Most callers want the all-at-once helpers instead:

	compressed, err := heatshrink.Compress(8, 4, data)
	original, err := heatshrink.Decompress(8, 4, compressed)

Or the io.Reader/io.Writer adapters for streaming through existing
pipelines:

	w, err := heatshrink.NewStreamWriter(dst, 8, 4)
	io.Copy(w, src)
	w.Close()

# Parameters

W (window bits, 4..15) and L (lookahead bits, 3..W-1) must match between
encoder and decoder for a stream to decode correctly; the codec does not
negotiate or record them on the wire.
*/
package heatshrink
