package heatshrink

// SinkStatus is the result of a call to Encoder.Sink or Decoder.Sink.
type SinkStatus int

const (
	// SinkOK means all of the data was accepted.
	SinkOK SinkStatus = iota
	// SinkFull means the internal input buffer ran out of room before
	// all of the data was accepted (check the returned count, which may
	// be 0); sink the rest after polling.
	SinkFull
)

func (s SinkStatus) String() string {
	switch s {
	case SinkOK:
		return "SinkOK"
	case SinkFull:
		return "SinkFull"
	default:
		return "SinkStatus(?)"
	}
}

// PollStatus is the result of a call to Encoder.Poll or Decoder.Poll.
type PollStatus int

const (
	// PollEmpty means the state machine produced all it can without more
	// input or a Finish call; the output buffer may still have room.
	PollEmpty PollStatus = iota
	// PollMore means the output buffer filled up before the state
	// machine ran out of work; call Poll again with a fresh buffer.
	PollMore
)

func (s PollStatus) String() string {
	switch s {
	case PollEmpty:
		return "PollEmpty"
	case PollMore:
		return "PollMore"
	default:
		return "PollStatus(?)"
	}
}

// FinishStatus is the result of a call to Encoder.Finish or Decoder.Finish.
type FinishStatus int

const (
	// FinishDone means all pending output has been produced; no further
	// Poll calls are necessary.
	FinishDone FinishStatus = iota
	// FinishMore means Poll must be called (possibly more than once)
	// before the stream is fully flushed.
	FinishMore
)

func (s FinishStatus) String() string {
	switch s {
	case FinishDone:
		return "FinishDone"
	case FinishMore:
		return "FinishMore"
	default:
		return "FinishStatus(?)"
	}
}
