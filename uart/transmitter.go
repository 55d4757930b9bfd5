package uart

type txState int

const (
	txSendStart txState = iota
	txSendData
	txSendStop
)

// transmitter frames a byte and emits it as a bitstream, least-significant
// bit first, at the symbol-tick rate. The line idles at logical 1. A byte is
// only latched while the transmitter is in txSendStart; a byte offered while
// busy is ignored and must be re-offered by the caller.
type transmitter struct {
	state txState
	shift byte
	pos   int
	line  bool
}

func newTransmitter() *transmitter {
	t := new(transmitter)
	t.line = true

	return t
}

// Line returns the current level driven onto the line.
func (t *transmitter) Line() bool {
	return t.line
}

// idle reports whether the transmitter is between frames.
func (t *transmitter) idle() bool {
	return t.state == txSendStart
}

// step advances the transmitter by one execution cycle. strobe offers in as
// the next byte to send; accepted pulses for one cycle when the byte is
// latched.
func (t *transmitter) step(symbolTick bool, in byte, strobe bool) (accepted bool) {
	if !symbolTick {
		return false
	}

	switch t.state {
	case txSendStart:
		if strobe {
			t.line = false
			t.shift = in
			t.pos = 0
			t.state = txSendData
			accepted = true
		}
	case txSendData:
		t.line = t.shift&1 != 0
		t.shift >>= 1

		t.pos++
		if t.pos == 8 {
			t.state = txSendStop
		}
	case txSendStop:
		t.line = true
		t.state = txSendStart
	}

	return accepted
}

func (t *transmitter) reset() {
	t.state = txSendStart
	t.shift = 0
	t.pos = 0
	t.line = true
}
