package main

import (
	"bytes"
	"testing"
)

func TestRunEncodeDecode_RoundTrip(t *testing.T) {
	data := []byte("the cli round trips its own framing around the unframed codec stream")

	var framed bytes.Buffer
	if err := runEncode(bytes.NewReader(data), &framed, 8, 4); err != nil {
		t.Fatalf("runEncode: %v", err)
	}

	var out bytes.Buffer
	if err := runDecode(bytes.NewReader(framed.Bytes()), &out, 8, 4); err != nil {
		t.Fatalf("runDecode: %v", err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("round trip mismatch: got %q, want %q", out.Bytes(), data)
	}
}

func TestRunEncode_EmptyInput(t *testing.T) {
	var framed bytes.Buffer
	if err := runEncode(bytes.NewReader(nil), &framed, 8, 4); err != nil {
		t.Fatalf("runEncode: %v", err)
	}
	var out bytes.Buffer
	if err := runDecode(bytes.NewReader(framed.Bytes()), &out, 8, 4); err != nil {
		t.Fatalf("runDecode: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("decoding an empty framed stream produced %d bytes", out.Len())
	}
}

func TestRunDecode_ShortPrefix(t *testing.T) {
	if err := runDecode(bytes.NewReader([]byte{0x00}), &bytes.Buffer{}, 8, 4); err == nil {
		t.Fatalf("runDecode with a truncated length prefix should fail")
	}
}
