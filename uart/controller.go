package uart

type ctrlState int

const (
	ctrlReading ctrlState = iota
	ctrlWaiting
	ctrlWriting
)

// ctrlOutputs is the controller's output bundle for one step. Every step
// starts from the all-deasserted value; the active transition overwrites
// the fields it drives.
type ctrlOutputs struct {
	inboundReady bool
	txStrobe     bool
	txByte       byte
}

// controller orchestrates the Read-word / wait-for-result / Write-word
// cycle on top of the receiver, the transmitter and the shared shift
// buffer. It is the buffer's only owner.
type controller struct {
	state ctrlState
	count int

	buf     *shiftBuffer
	inSize  int
	outSize int
}

func newController(inSize, outSize int) *controller {
	return &controller{
		buf:     newShiftBuffer(inSize, outSize),
		inSize:  inSize,
		outSize: outSize,
	}
}

// step advances the controller by one execution cycle.
//
// rxByte/rxReady carry the receiver's byte-ready pulse. txAccepted is the
// transmitter's acknowledgment pulse. result/resultReady deliver the
// consumer's outbound word while the controller is waiting for one.
func (c *controller) step(
	rxByte byte, rxReady bool,
	txAccepted bool,
	result []byte, resultReady bool,
) ctrlOutputs {
	var out ctrlOutputs

	switch c.state {
	case ctrlReading:
		if rxReady {
			c.buf.ShiftIn(rxByte)

			if c.count == c.inSize-1 {
				out.inboundReady = true
				c.count = 0
				c.state = ctrlWaiting
			} else {
				c.count++
			}
		}
	case ctrlWaiting:
		if resultReady {
			c.buf.Load(result)
			c.state = ctrlWriting
		}
	case ctrlWriting:
		out.txStrobe = true
		out.txByte = c.buf.Top()

		if txAccepted {
			c.buf.ShiftIn(0) // drained byte, don't care

			if c.count == c.outSize-1 {
				c.count = 0
				c.state = ctrlReading
				out.txStrobe = false
			} else {
				c.count++
				out.txByte = c.buf.Top()
			}
		}
	}

	return out
}

// inboundWord returns the word assembled by the last read phase.
func (c *controller) inboundWord() []byte {
	return c.buf.Window(c.inSize)
}

func (c *controller) reset() {
	c.state = ctrlReading
	c.count = 0
	c.buf.reset()
}
