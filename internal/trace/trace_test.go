package trace

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestDiscard_Printf_NoOp(t *testing.T) {
	// Discard must never touch its (nil) *log.Logger; this would panic
	// otherwise.
	Discard.Printf("should never appear: %d", 42)
}

func TestNew_Nil_BehavesLikeDiscard(t *testing.T) {
	New(nil).Printf("should never appear: %d", 42)
}

func TestNew_WritesThrough(t *testing.T) {
	var buf bytes.Buffer
	l := New(log.New(&buf, "", 0))
	l.Printf("sink: %d bytes", 7)
	if got := buf.String(); !strings.Contains(got, "sink: 7 bytes") {
		t.Fatalf("logged output = %q, want it to contain the formatted message", got)
	}
}
