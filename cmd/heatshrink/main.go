// Command heatshrink encodes or decodes a file with the heatshrink
// codec. The codec itself has no framing; this CLI adds a
// 2-byte big-endian length prefix around the compressed payload so a
// decode run knows where the stream ends when reading from a plain
// file, the same problem the original firmware's SPIFFS-backed image
// upload faces.
package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/tomfleet/gdeh0169e01/heatshrink"
)

func main() {
	var (
		windowBits    = pflag.IntP("window", "w", 8, "window bits (4-15)")
		lookaheadBits = pflag.IntP("lookahead", "l", 4, "lookahead bits (3..window-1)")
		decode        = pflag.BoolP("decode", "d", false, "decode instead of encode")
		help          = pflag.BoolP("help", "h", false, "show usage")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: heatshrink [-w bits] [-l bits] [-d] < in > out\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if *help {
		pflag.Usage()
		return
	}

	var err error
	if *decode {
		err = runDecode(os.Stdin, os.Stdout, uint8(*windowBits), uint8(*lookaheadBits))
	} else {
		err = runEncode(os.Stdin, os.Stdout, uint8(*windowBits), uint8(*lookaheadBits))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "heatshrink: %v\n", err)
		os.Exit(1)
	}
}

func runEncode(r io.Reader, w io.Writer, windowBits, lookaheadBits uint8) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	compressed, err := heatshrink.Compress(windowBits, lookaheadBits, data)
	if err != nil {
		return err
	}
	if len(compressed) > 0xffff {
		return fmt.Errorf("compressed payload too large for 16-bit length prefix: %d bytes", len(compressed))
	}
	var prefix [2]byte
	binary.BigEndian.PutUint16(prefix[:], uint16(len(compressed)))
	if _, err := w.Write(prefix[:]); err != nil {
		return err
	}
	_, err = w.Write(compressed)
	return err
}

func runDecode(r io.Reader, w io.Writer, windowBits, lookaheadBits uint8) error {
	var prefix [2]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return err
	}
	size := binary.BigEndian.Uint16(prefix[:])
	compressed := make([]byte, size)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return err
	}
	out, err := heatshrink.Decompress(windowBits, lookaheadBits, compressed)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
