package uart

import (
	"github.com/OscarVsp/ELEC-H409-UART-Interface/sim"
)

// Host is the line-side counterpart of the engine: it frames queued bytes
// onto the serial line and deframes whatever the device sends back. It plays
// the role of the original host utility that wrote a chunk to the serial
// port and read the response chunk, and it is what the loopback tests and
// the demo CLI drive.
//
// It reuses the same transmitter, receiver and conditioner machines as the
// device side, stepped at the same execution clock.
type Host struct {
	*sim.TickingComponent

	LinePort sim.Port

	// LineDst is the port that receives the host's line output.
	LineDst sim.Port

	ticks *tickGenerator
	cond  *lineConditioner
	rx    *receiver
	tx    *transmitter

	rxLevel      bool
	txLevel      bool
	lineOutDirty bool

	sendQueue []byte
	received  []byte
}

// Send queues bytes for transmission onto the line.
func (h *Host) Send(chunk []byte) {
	h.sendQueue = append(h.sendQueue, chunk...)
	h.TickLater()
}

// Received returns the bytes deframed from the line so far.
func (h *Host) Received() []byte {
	out := make([]byte, len(h.received))
	copy(out, h.received)

	return out
}

// DiscardReceived clears the receive log.
func (h *Host) DiscardReceived() {
	h.received = nil
}

// Tick advances the host by one execution-clock cycle.
func (h *Host) Tick() bool {
	if msg := h.LinePort.RetrieveIncoming(); msg != nil {
		h.rxLevel = msg.(*LineMsg).Level
	}

	sampleTick, symbolTick := h.ticks.step()

	bit, bitTick := h.cond.step(h.rxLevel, sampleTick, h.rx.awaitingStart())

	if b, ready := h.rx.step(bit, sampleTick, bitTick); ready {
		h.received = append(h.received, b)
		h.InvokeHook(sim.HookCtx{
			Domain: h, Pos: HookPosByteRecv, Item: b,
		})
	}

	strobe := len(h.sendQueue) > 0
	var next byte
	if strobe {
		next = h.sendQueue[0]
	}

	if h.tx.step(symbolTick, next, strobe) {
		h.sendQueue = h.sendQueue[1:]
		h.InvokeHook(sim.HookCtx{
			Domain: h, Pos: HookPosByteSent, Item: next,
		})
	}

	if h.tx.Line() != h.txLevel {
		h.txLevel = h.tx.Line()
		h.lineOutDirty = true
	}

	if h.lineOutDirty {
		if h.LineDst == nil {
			h.lineOutDirty = false
		} else {
			msg := LineMsgBuilder{}.
				WithSrc(h.LinePort).
				WithDst(h.LineDst).
				WithLevel(h.txLevel).
				Build()

			if err := h.LinePort.Send(msg); err == nil {
				h.lineOutDirty = false
			}
		}
	}

	idle := h.rxLevel &&
		h.cond.idleHigh() &&
		h.rx.awaitingStart() &&
		h.tx.idle() &&
		len(h.sendQueue) == 0 &&
		!h.lineOutDirty &&
		h.LinePort.PeekIncoming() == nil

	return !idle
}

// HostBuilder can build host adapters.
type HostBuilder struct {
	engine      sim.Engine
	clockHz     uint64
	byteRate    uint64
	portBufSize int
}

// MakeHostBuilder returns a HostBuilder with the same rate defaults as the
// engine builder.
func MakeHostBuilder() HostBuilder {
	return HostBuilder{
		clockHz:     50_000_000,
		byteRate:    230400,
		portBufSize: 4,
	}
}

// WithEngine sets the event engine that drives the host.
func (b HostBuilder) WithEngine(engine sim.Engine) HostBuilder {
	b.engine = engine
	return b
}

// WithClock sets the execution clock in Hz.
func (b HostBuilder) WithClock(hz uint64) HostBuilder {
	b.clockHz = hz
	return b
}

// WithByteRate sets the target byte rate on the line.
func (b HostBuilder) WithByteRate(rate uint64) HostBuilder {
	b.byteRate = rate
	return b
}

// Build builds a new Host.
func (b HostBuilder) Build(name string) *Host {
	cfg := RateConfig{ClockHz: b.clockHz, ByteRate: b.byteRate}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	h := &Host{
		ticks: newTickGenerator(cfg),
		cond:  newLineConditioner(),
		rx:    newReceiver(),
		tx:    newTransmitter(),

		rxLevel: true,
		txLevel: true,
	}

	h.TickingComponent = sim.NewTickingComponent(
		name, b.engine, sim.Freq(b.clockHz)*sim.Hz, h)

	h.LinePort = sim.NewPort(h, b.portBufSize, b.portBufSize, name+".Line")
	h.AddPort("Line", h.LinePort)

	return h
}
