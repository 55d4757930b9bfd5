package uart

import (
	"github.com/OscarVsp/ELEC-H409-UART-Interface/sim"
)

// HookPosByteRecv marks when the receiver completes a framed byte.
var HookPosByteRecv = &sim.HookPos{Name: "UART Byte Recv"}

// HookPosByteSent marks when the transmitter latches a byte for sending.
var HookPosByteSent = &sim.HookPos{Name: "UART Byte Sent"}

// HookPosWordIn marks when a full inbound word becomes ready.
var HookPosWordIn = &sim.HookPos{Name: "UART Word In"}

// HookPosWordOut marks when a result word is staged for transmission.
var HookPosWordOut = &sim.HookPos{Name: "UART Word Out"}

// Comp is the UART timing engine. Each tick of the component is one
// execution-clock cycle; within a tick the machines evaluate in a fixed
// order: tick generator, line conditioner, receiver, transaction controller,
// transmitter. The transmitter's accepted pulse is therefore observed by the
// controller on the following cycle, which is safe because the transmitter
// stays busy for a full frame after accepting.
//
// The serial line is carried as level-change messages on LinePort. The
// consumer either connects an agent to WordPort, or embeds the component
// directly and uses InboundWord/SubmitResult.
type Comp struct {
	*sim.TickingComponent

	LinePort sim.Port
	WordPort sim.Port

	// LineDst is the port that receives this component's line output.
	// Assigned after build, before the simulation starts.
	LineDst sim.Port

	// ConsumerDst, when set, receives a WordMsg for every completed inbound
	// word.
	ConsumerDst sim.Port

	cfg RateConfig

	ticks *tickGenerator
	cond  *lineConditioner
	rx    *receiver
	tx    *transmitter
	ctrl  *controller

	rxLevel      bool
	txLevel      bool
	lastAccepted bool

	result     []byte
	haveResult bool

	lastInbound []byte
	pendingWord *WordMsg

	lineOutDirty bool
	resetPending bool
}

// InboundWord returns the word assembled by the most recent read phase.
func (c *Comp) InboundWord() []byte {
	word := make([]byte, len(c.lastInbound))
	copy(word, c.lastInbound)

	return word
}

// SubmitResult hands the consumer's outbound word to the controller. The
// controller consumes it the next time it is waiting for a result.
func (c *Comp) SubmitResult(word []byte) {
	c.result = make([]byte, len(word))
	copy(c.result, word)
	c.haveResult = true

	c.TickLater()
}

// Reset requests a global synchronous reset. It is observed and applied
// atomically at the next step boundary, discarding any in-flight phase.
func (c *Comp) Reset() {
	c.resetPending = true
	c.TickLater()
}

// Tick advances the engine by one execution-clock cycle.
func (c *Comp) Tick() bool {
	if c.resetPending {
		c.applyReset()
	}

	c.processInput()

	sampleTick, symbolTick := c.ticks.step()

	bit, bitTick := c.cond.step(c.rxLevel, sampleTick, c.rx.awaitingStart())

	rxByte, rxReady := c.rx.step(bit, sampleTick, bitTick)
	if rxReady {
		c.InvokeHook(sim.HookCtx{
			Domain: c, Pos: HookPosByteRecv, Item: rxByte,
		})
	}

	wasWaiting := c.ctrl.state == ctrlWaiting
	out := c.ctrl.step(rxByte, rxReady, c.lastAccepted, c.result, c.haveResult)

	if wasWaiting && c.ctrl.state == ctrlWriting {
		c.InvokeHook(sim.HookCtx{
			Domain: c, Pos: HookPosWordOut, Item: c.result,
		})
		c.result = nil
		c.haveResult = false
	}

	if out.inboundReady {
		c.lastInbound = c.ctrl.inboundWord()
		c.InvokeHook(sim.HookCtx{
			Domain: c, Pos: HookPosWordIn, Item: c.InboundWord(),
		})
		c.stageWordMsg()
	}

	accepted := c.tx.step(symbolTick, out.txByte, out.txStrobe)
	c.lastAccepted = accepted
	if accepted {
		c.InvokeHook(sim.HookCtx{
			Domain: c, Pos: HookPosByteSent, Item: out.txByte,
		})
	}

	if c.tx.Line() != c.txLevel {
		c.txLevel = c.tx.Line()
		c.lineOutDirty = true
	}

	c.sendLineLevel()
	c.sendPendingWord()

	return !c.idle(out)
}

// processInput drains the messages that arrived at the ports.
func (c *Comp) processInput() {
	if msg := c.LinePort.RetrieveIncoming(); msg != nil {
		line := msg.(*LineMsg)
		c.rxLevel = line.Level
	}

	if msg := c.WordPort.PeekIncoming(); msg != nil {
		result, ok := msg.(*ResultMsg)
		if !ok {
			panic("unknown message type on word port")
		}

		// Hold the message until the previous result is consumed.
		if !c.haveResult {
			c.WordPort.RetrieveIncoming()
			c.result = result.Word
			c.haveResult = true
		}
	}
}

func (c *Comp) stageWordMsg() {
	if c.ConsumerDst == nil {
		return
	}

	c.pendingWord = WordMsgBuilder{}.
		WithSrc(c.WordPort).
		WithDst(c.ConsumerDst).
		WithWord(c.InboundWord()).
		Build()
}

func (c *Comp) sendPendingWord() {
	if c.pendingWord == nil {
		return
	}

	if err := c.WordPort.Send(c.pendingWord); err == nil {
		c.pendingWord = nil
	}
}

func (c *Comp) sendLineLevel() {
	if !c.lineOutDirty {
		return
	}

	// Nothing is listening on the line.
	if c.LineDst == nil {
		c.lineOutDirty = false
		return
	}

	msg := LineMsgBuilder{}.
		WithSrc(c.LinePort).
		WithDst(c.LineDst).
		WithLevel(c.txLevel).
		Build()

	if err := c.LinePort.Send(msg); err == nil {
		c.lineOutDirty = false
	}
}

// idle reports whether nothing can change until an external input arrives.
// Ticking stops while idle and resumes on port notifications, SubmitResult
// or Reset.
func (c *Comp) idle(out ctrlOutputs) bool {
	return c.rxLevel &&
		c.cond.idleHigh() &&
		c.rx.awaitingStart() &&
		c.tx.idle() &&
		!out.txStrobe &&
		c.ctrl.state != ctrlWriting &&
		!c.haveResult &&
		c.pendingWord == nil &&
		!c.lineOutDirty &&
		c.LinePort.PeekIncoming() == nil &&
		c.WordPort.PeekIncoming() == nil
}

func (c *Comp) applyReset() {
	c.resetPending = false

	c.ticks.reset()
	c.cond.reset()
	c.rx.reset()
	c.tx.reset()
	c.ctrl.reset()

	c.lastAccepted = false
	c.result = nil
	c.haveResult = false
	c.pendingWord = nil

	if !c.txLevel {
		c.txLevel = true
		c.lineOutDirty = true
	}
}
