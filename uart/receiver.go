package uart

type rxState int

const (
	rxAwaitStart rxState = iota
	rxReceiveData
	rxAwaitStop
)

// receiver assembles the filtered bitstream into framed bytes. Bits arrive
// least-significant first: each captured bit is inserted as the new most
// significant bit while the earlier bits shift down, so the byte is in order
// after eight captures.
//
// A 0 observed where the stop bit belongs leaves the receiver waiting in
// rxAwaitStop until a 1 shows up at a bit tick. This matches the reference
// hardware, which defines no framing-error recovery; the line must return to
// idle before another byte can be framed, so later bytes are not corrupted.
type receiver struct {
	state rxState
	data  byte
	pos   int
}

func newReceiver() *receiver {
	return new(receiver)
}

// awaitingStart reports whether the receiver is waiting for a start edge.
// The line conditioner holds its bit-boundary timer while this is true.
func (r *receiver) awaitingStart() bool {
	return r.state == rxAwaitStart
}

// step advances the receiver by one execution cycle. It returns the
// assembled byte together with a one-cycle ready pulse.
func (r *receiver) step(bit, sampleTick, bitTick bool) (b byte, ready bool) {
	switch r.state {
	case rxAwaitStart:
		if sampleTick && !bit {
			r.state = rxReceiveData
			r.pos = 0
		}
	case rxReceiveData:
		if bitTick {
			r.data >>= 1
			if bit {
				r.data |= 0x80
			}

			r.pos++
			if r.pos == 8 {
				r.state = rxAwaitStop
				r.pos = 0
			}
		}
	case rxAwaitStop:
		if bitTick && bit {
			r.state = rxAwaitStart
			return r.data, true
		}
	}

	return 0, false
}

func (r *receiver) reset() {
	r.state = rxAwaitStart
	r.data = 0
	r.pos = 0
}
