package uart

import (
	"github.com/OscarVsp/ELEC-H409-UART-Interface/sim"
)

// Builder can build UART timing engine components.
type Builder struct {
	engine       sim.Engine
	clockHz      uint64
	byteRate     uint64
	inboundSize  int
	outboundSize int
	portBufSize  int
}

// MakeBuilder returns a Builder with the default configuration: a 50 MHz
// execution clock, 230400 byte/s line rate and 16-byte words in both
// directions.
func MakeBuilder() Builder {
	return Builder{
		clockHz:      50_000_000,
		byteRate:     230400,
		inboundSize:  16,
		outboundSize: 16,
		portBufSize:  4,
	}
}

// WithEngine sets the event engine that drives the component.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithClock sets the execution clock in Hz.
func (b Builder) WithClock(hz uint64) Builder {
	b.clockHz = hz
	return b
}

// WithByteRate sets the target byte rate on the line.
func (b Builder) WithByteRate(rate uint64) Builder {
	b.byteRate = rate
	return b
}

// WithInboundSize sets the inbound word size in bytes.
func (b Builder) WithInboundSize(size int) Builder {
	b.inboundSize = size
	return b
}

// WithOutboundSize sets the outbound word size in bytes.
func (b Builder) WithOutboundSize(size int) Builder {
	b.outboundSize = size
	return b
}

// WithPortBufSize sets the buffer capacity of the component's ports.
func (b Builder) WithPortBufSize(size int) Builder {
	b.portBufSize = size
	return b
}

// Build builds a new Comp. It panics if the configuration cannot derive
// positive divisors for both tick domains or if a word size is not positive.
func (b Builder) Build(name string) *Comp {
	cfg := RateConfig{ClockHz: b.clockHz, ByteRate: b.byteRate}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	if b.inboundSize < 1 || b.outboundSize < 1 {
		panic("uart: word sizes must be positive")
	}

	c := &Comp{
		cfg:   cfg,
		ticks: newTickGenerator(cfg),
		cond:  newLineConditioner(),
		rx:    newReceiver(),
		tx:    newTransmitter(),
		ctrl:  newController(b.inboundSize, b.outboundSize),

		rxLevel: true,
		txLevel: true,
	}

	c.TickingComponent = sim.NewTickingComponent(
		name, b.engine, sim.Freq(b.clockHz)*sim.Hz, c)

	c.LinePort = sim.NewPort(c, b.portBufSize, b.portBufSize, name+".Line")
	c.WordPort = sim.NewPort(c, b.portBufSize, b.portBufSize, name+".Word")
	c.AddPort("Line", c.LinePort)
	c.AddPort("Word", c.WordPort)

	return c
}
