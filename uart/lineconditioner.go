package uart

// filterMax is the saturation bound of the hysteresis counter. The filtered
// bit only changes when the counter pins at 0 or filterMax, so a single
// opposite-polarity sample can never flip it.
const filterMax = 3

// lineConditioner turns the raw line input into a clean logical bit. A
// two-stage synchronizer absorbs metastability, a saturating counter
// debounces the synchronized samples, and a bit-boundary timer derives the
// bit-center tick for the receiver. The timer is held at 0 while the
// receiver awaits a start bit, so bit sampling re-syncs to every start edge
// and drift never accumulates across bytes.
type lineConditioner struct {
	sync0 bool // newest raw sample
	sync1 bool // synchronized sample

	filter   int
	filtered bool

	phase int // counts sample ticks 0..15
}

func newLineConditioner() *lineConditioner {
	c := new(lineConditioner)
	c.reset()

	return c
}

// step advances the conditioner by one execution cycle. holdPhase keeps the
// bit-boundary timer at 0; the caller asserts it while the receiver is in
// its await-start state.
func (c *lineConditioner) step(raw, sampleTick, holdPhase bool) (bit, bitTick bool) {
	if !sampleTick {
		return c.filtered, false
	}

	c.sync1 = c.sync0
	c.sync0 = raw

	if c.sync1 {
		if c.filter < filterMax {
			c.filter++
		}
	} else {
		if c.filter > 0 {
			c.filter--
		}
	}

	switch c.filter {
	case filterMax:
		c.filtered = true
	case 0:
		c.filtered = false
	}

	if holdPhase {
		c.phase = 0
	} else if c.phase == Oversampling-1 {
		c.phase = 0
		bitTick = true
	} else {
		c.phase++
	}

	return c.filtered, bitTick
}

// idleHigh reports whether the whole pipeline has settled at the idle-high
// level.
func (c *lineConditioner) idleHigh() bool {
	return c.sync0 && c.sync1 && c.filtered &&
		c.filter == filterMax && c.phase == 0
}

// reset returns the pipeline to the state a long-settled idle-high line
// leaves it in: synchronizer stages high, hysteresis counter saturated, bit
// timer at zero. Starting the counter anywhere below saturation would let
// the first start edge after a reset fire early, before the counter has had
// any high samples to climb back up.
func (c *lineConditioner) reset() {
	c.sync0 = true
	c.sync1 = true
	c.filter = filterMax
	c.filtered = true
	c.phase = 0
}
