package heatshrink

import (
	"bytes"
	"testing"
)

func TestDecoder_SingleLiteral(t *testing.T) {
	dec, err := NewDecoder(8, 4, 64)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	got, err := drainDecoder(dec, []byte{0xA0, 0x80})
	if err != nil {
		t.Fatalf("drainDecoder: %v", err)
	}
	if string(got) != "A" {
		t.Fatalf("Decompress(0xA0 0x80) = %q, want \"A\"", got)
	}
}

func TestDecoder_GetBits_RejectsOversizeCount(t *testing.T) {
	dec, err := NewDecoder(8, 4, 16)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if _, ok := dec.getBits(16); ok {
		t.Fatalf("getBits(16) succeeded, want ok=false (spec caps fields at 15 bits)")
	}
}

func TestDecoder_Finish_CleanEndOfStream(t *testing.T) {
	enc, _ := NewEncoder(8, 4)
	compressed, err := drainEncoder(enc, []byte("hello"))
	if err != nil {
		t.Fatalf("drainEncoder: %v", err)
	}
	dec, _ := NewDecoder(8, 4, 64)
	if _, _, err := dec.Sink(compressed); err != nil {
		t.Fatalf("Sink: %v", err)
	}
	buf := make([]byte, 64)
	for {
		n, status, err := dec.Poll(buf)
		if err != nil {
			t.Fatalf("Poll: %v", err)
		}
		_ = n
		if status == PollEmpty {
			break
		}
	}
	status, err := dec.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if status != FinishDone {
		t.Fatalf("Finish on a clean end of stream = %v, want FinishDone", status)
	}
}

func TestDecoder_Finish_TruncatedStream(t *testing.T) {
	enc, _ := NewEncoder(8, 4)
	compressed, err := drainEncoder(enc, bytes.Repeat([]byte("hello world"), 5))
	if err != nil {
		t.Fatalf("drainEncoder: %v", err)
	}
	if len(compressed) < 2 {
		t.Fatalf("compressed output too short to truncate meaningfully: %d bytes", len(compressed))
	}
	truncated := compressed[:len(compressed)-1]

	dec, _ := NewDecoder(8, 4, 64)
	if _, _, err := dec.Sink(truncated); err != nil {
		t.Fatalf("Sink: %v", err)
	}
	buf := make([]byte, 64)
	for {
		_, status, err := dec.Poll(buf)
		if err != nil {
			t.Fatalf("Poll: %v", err)
		}
		if status == PollEmpty {
			break
		}
	}
	if _, err := dec.Finish(); err != ErrTruncatedStream {
		t.Fatalf("Finish on truncated stream: got err %v, want ErrTruncatedStream", err)
	}
}

func TestDecoder_Reset_Idempotent(t *testing.T) {
	dec, err := NewDecoder(8, 4, 64)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if _, _, err := dec.Sink([]byte{0xA0, 0x80}); err != nil {
		t.Fatalf("Sink: %v", err)
	}
	dec.Reset()
	dec.Reset()
	got, err := drainDecoder(dec, []byte{0xA0, 0x80})
	if err != nil {
		t.Fatalf("drainDecoder after reset: %v", err)
	}
	if string(got) != "A" {
		t.Fatalf("round trip after Reset = %q, want \"A\"", got)
	}
}
