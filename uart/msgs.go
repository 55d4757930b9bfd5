package uart

import (
	"github.com/OscarVsp/ELEC-H409-UART-Interface/sim"
)

// LineMsg carries a level change of the serial line. The line is modeled as
// edge events: a message is sent only when the driven level changes, and the
// receiving end holds the last delivered level in between.
type LineMsg struct {
	sim.MsgMeta

	Level bool
}

// Meta returns the meta data of the message.
func (m *LineMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// LineMsgBuilder can build line-level messages.
type LineMsgBuilder struct {
	src, dst sim.Port
	level    bool
}

// WithSrc sets the source of the message.
func (b LineMsgBuilder) WithSrc(src sim.Port) LineMsgBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the message.
func (b LineMsgBuilder) WithDst(dst sim.Port) LineMsgBuilder {
	b.dst = dst
	return b
}

// WithLevel sets the line level the message carries.
func (b LineMsgBuilder) WithLevel(level bool) LineMsgBuilder {
	b.level = level
	return b
}

// Build creates the LineMsg.
func (b LineMsgBuilder) Build() *LineMsg {
	m := &LineMsg{}
	m.ID = sim.GetIDGenerator().Generate()
	m.Src = b.src
	m.Dst = b.dst
	m.Level = b.level

	return m
}

// WordMsg delivers an assembled inbound word to the consumer. It is sent in
// the same cycle the controller raises its inbound-ready pulse.
type WordMsg struct {
	sim.MsgMeta

	Word []byte
}

// Meta returns the meta data of the message.
func (m *WordMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// WordMsgBuilder can build inbound word messages.
type WordMsgBuilder struct {
	src, dst sim.Port
	word     []byte
}

// WithSrc sets the source of the message.
func (b WordMsgBuilder) WithSrc(src sim.Port) WordMsgBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the message.
func (b WordMsgBuilder) WithDst(dst sim.Port) WordMsgBuilder {
	b.dst = dst
	return b
}

// WithWord sets the word the message carries.
func (b WordMsgBuilder) WithWord(word []byte) WordMsgBuilder {
	b.word = word
	return b
}

// Build creates the WordMsg.
func (b WordMsgBuilder) Build() *WordMsg {
	m := &WordMsg{}
	m.ID = sim.GetIDGenerator().Generate()
	m.Src = b.src
	m.Dst = b.dst
	m.Word = b.word

	return m
}

// ResultMsg submits the consumer's outbound word. Receiving one while the
// controller waits for a result acts as the result-ready signal.
type ResultMsg struct {
	sim.MsgMeta

	Word []byte
}

// Meta returns the meta data of the message.
func (m *ResultMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// ResultMsgBuilder can build result messages.
type ResultMsgBuilder struct {
	src, dst sim.Port
	word     []byte
}

// WithSrc sets the source of the message.
func (b ResultMsgBuilder) WithSrc(src sim.Port) ResultMsgBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the message.
func (b ResultMsgBuilder) WithDst(dst sim.Port) ResultMsgBuilder {
	b.dst = dst
	return b
}

// WithWord sets the word the message carries.
func (b ResultMsgBuilder) WithWord(word []byte) ResultMsgBuilder {
	b.word = word
	return b
}

// Build creates the ResultMsg.
func (b ResultMsgBuilder) Build() *ResultMsg {
	m := &ResultMsg{}
	m.ID = sim.GetIDGenerator().Generate()
	m.Src = b.src
	m.Dst = b.dst
	m.Word = b.word

	return m
}
