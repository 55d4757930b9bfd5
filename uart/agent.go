package uart

import (
	"github.com/OscarVsp/ELEC-H409-UART-Interface/sim"
)

// Agent is a consumer that computes the outbound word for every inbound
// word the engine delivers. The transform runs instantaneously in simulated
// time; the result travels back as a ResultMsg.
type Agent struct {
	*sim.TickingComponent

	WordPort sim.Port

	// Transform maps an inbound word to the outbound result. It must return
	// a word of the engine's outbound size.
	Transform func(word []byte) []byte

	pendingRsp *ResultMsg
}

// Tick processes at most one inbound word per cycle.
func (a *Agent) Tick() bool {
	madeProgress := a.sendRsp()

	msg := a.WordPort.PeekIncoming()
	if msg == nil {
		return madeProgress
	}

	if a.pendingRsp != nil {
		return madeProgress
	}

	word := msg.(*WordMsg)
	a.pendingRsp = ResultMsgBuilder{}.
		WithSrc(a.WordPort).
		WithDst(word.Src).
		WithWord(a.Transform(word.Word)).
		Build()
	a.WordPort.RetrieveIncoming()

	a.sendRsp()

	return true
}

func (a *Agent) sendRsp() bool {
	if a.pendingRsp == nil {
		return false
	}

	if err := a.WordPort.Send(a.pendingRsp); err != nil {
		return false
	}

	a.pendingRsp = nil

	return true
}

// AgentBuilder can build consumer agents.
type AgentBuilder struct {
	engine    sim.Engine
	freq      sim.Freq
	transform func([]byte) []byte
}

// MakeAgentBuilder returns an AgentBuilder with an identity transform.
func MakeAgentBuilder() AgentBuilder {
	return AgentBuilder{
		freq: 1 * sim.MHz,
		transform: func(word []byte) []byte {
			return word
		},
	}
}

// WithEngine sets the event engine that drives the agent.
func (b AgentBuilder) WithEngine(engine sim.Engine) AgentBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the agent.
func (b AgentBuilder) WithFreq(freq sim.Freq) AgentBuilder {
	b.freq = freq
	return b
}

// WithTransform sets the word transform.
func (b AgentBuilder) WithTransform(f func([]byte) []byte) AgentBuilder {
	b.transform = f
	return b
}

// Build builds a new Agent.
func (b AgentBuilder) Build(name string) *Agent {
	a := &Agent{
		Transform: b.transform,
	}

	a.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, a)

	a.WordPort = sim.NewPort(a, 4, 4, name+".Word")
	a.AddPort("Word", a.WordPort)

	return a
}
