package heatshrink

import (
	"bytes"
	"testing"
)

func TestEncoderPool_AcquireRelease_RoundTrip(t *testing.T) {
	pool, err := NewEncoderPool(8, 4)
	if err != nil {
		t.Fatalf("NewEncoderPool: %v", err)
	}
	decPool, err := NewDecoderPool(8, 4, 256)
	if err != nil {
		t.Fatalf("NewDecoderPool: %v", err)
	}

	for i := 0; i < 3; i++ {
		enc := pool.Acquire()
		data := bytes.Repeat([]byte{byte('a' + i)}, 200)
		out, err := drainEncoder(enc, data)
		if err != nil {
			t.Fatalf("drainEncoder: %v", err)
		}
		pool.Release(enc)

		dec := decPool.Acquire()
		got, err := drainDecoder(dec, out)
		if err != nil {
			t.Fatalf("drainDecoder: %v", err)
		}
		decPool.Release(dec)

		if !bytes.Equal(got, data) {
			t.Fatalf("round %d: round trip mismatch", i)
		}
	}
}

func TestEncoderPool_ReleaseNil(t *testing.T) {
	pool, err := NewEncoderPool(8, 4)
	if err != nil {
		t.Fatalf("NewEncoderPool: %v", err)
	}
	pool.Release(nil)
}

func TestDecoderPool_ReleaseNil(t *testing.T) {
	pool, err := NewDecoderPool(8, 4, 64)
	if err != nil {
		t.Fatalf("NewDecoderPool: %v", err)
	}
	pool.Release(nil)
}

func TestNewEncoderPool_InvalidParams(t *testing.T) {
	if _, err := NewEncoderPool(2, 1); err != ErrInvalidParams {
		t.Fatalf("got err %v, want ErrInvalidParams", err)
	}
}

func TestNewDecoderPool_InvalidParams(t *testing.T) {
	if _, err := NewDecoderPool(8, 4, 0); err != ErrInvalidParams {
		t.Fatalf("got err %v, want ErrInvalidParams for zero buffer size", err)
	}
}
