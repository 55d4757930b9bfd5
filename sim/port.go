package sim

import (
	"log"
	"sync"
)

// HookPosPortMsgSend marks when a message is sent out from the port.
var HookPosPortMsgSend = &HookPos{Name: "Port Msg Send"}

// HookPosPortMsgRecvd marks when an inbound message arrives at a port.
var HookPosPortMsgRecvd = &HookPos{Name: "Port Msg Recv"}

// SendError marks a failed send or receive.
type SendError struct{}

// NewSendError creates a SendError.
func NewSendError() *SendError {
	return new(SendError)
}

// A Connection is responsible for delivering messages to their destinations.
type Connection interface {
	Named
	Hookable

	PlugIn(port Port)
	NotifyAvailable(port Port)
	NotifySend()
}

// A Port is owned by a component and is used to plug in connections.
type Port interface {
	Named
	Hookable

	SetConnection(conn Connection)
	Component() Component

	// For connection
	Deliver(msg Msg) *SendError
	NotifyAvailable()
	RetrieveOutgoing() Msg
	PeekOutgoing() Msg

	// For component
	CanSend() bool
	Send(msg Msg) *SendError
	RetrieveIncoming() Msg
	PeekIncoming() Msg
}

// NewPort creates a port with bounded incoming and outgoing buffers.
func NewPort(comp Component, incomingBufCap, outgoingBufCap int, name string) Port {
	return &defaultPort{
		name:           name,
		comp:           comp,
		incomingBufCap: incomingBufCap,
		outgoingBufCap: outgoingBufCap,
	}
}

type defaultPort struct {
	HookableBase

	lock sync.Mutex
	name string
	comp Component
	conn Connection

	incomingBuf    []Msg
	incomingBufCap int
	outgoingBuf    []Msg
	outgoingBufCap int
}

func (p *defaultPort) Name() string {
	return p.name
}

// SetConnection sets which connection is plugged into this port.
func (p *defaultPort) SetConnection(conn Connection) {
	if p.conn != nil {
		log.Panicf("connection already set on port %s", p.name)
	}

	p.conn = conn
}

// Component returns the owner component of the port.
func (p *defaultPort) Component() Component {
	return p.comp
}

// CanSend checks if the port can send a message without error.
func (p *defaultPort) CanSend() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	return len(p.outgoingBuf) < p.outgoingBufCap
}

// Send is used to send a message out from a component.
func (p *defaultPort) Send(msg Msg) *SendError {
	p.lock.Lock()

	if msg.Meta().Src != p {
		log.Panic("sending a message that is not from this port")
	}

	if len(p.outgoingBuf) >= p.outgoingBufCap {
		p.lock.Unlock()
		return NewSendError()
	}

	wasEmpty := len(p.outgoingBuf) == 0
	p.outgoingBuf = append(p.outgoingBuf, msg)

	p.InvokeHook(HookCtx{
		Domain: p,
		Pos:    HookPosPortMsgSend,
		Item:   msg,
	})
	p.lock.Unlock()

	if wasEmpty {
		p.conn.NotifySend()
	}

	return nil
}

// Deliver is used by the connection to deliver a message to a component.
func (p *defaultPort) Deliver(msg Msg) *SendError {
	p.lock.Lock()

	if len(p.incomingBuf) >= p.incomingBufCap {
		p.lock.Unlock()
		return NewSendError()
	}

	wasEmpty := len(p.incomingBuf) == 0
	p.incomingBuf = append(p.incomingBuf, msg)

	p.InvokeHook(HookCtx{
		Domain: p,
		Pos:    HookPosPortMsgRecvd,
		Item:   msg,
	})
	p.lock.Unlock()

	if p.comp != nil && wasEmpty {
		p.comp.NotifyRecv(p)
	}

	return nil
}

// RetrieveIncoming takes a message from the incoming buffer.
func (p *defaultPort) RetrieveIncoming() Msg {
	p.lock.Lock()

	if len(p.incomingBuf) == 0 {
		p.lock.Unlock()
		return nil
	}

	msg := p.incomingBuf[0]
	p.incomingBuf = p.incomingBuf[1:]

	if len(p.incomingBuf) == p.incomingBufCap-1 {
		p.conn.NotifyAvailable(p)
	}

	p.lock.Unlock()

	return msg
}

// RetrieveOutgoing takes a message from the outgoing buffer.
func (p *defaultPort) RetrieveOutgoing() Msg {
	p.lock.Lock()

	if len(p.outgoingBuf) == 0 {
		p.lock.Unlock()
		return nil
	}

	msg := p.outgoingBuf[0]
	p.outgoingBuf = p.outgoingBuf[1:]

	wasFull := len(p.outgoingBuf) == p.outgoingBufCap-1
	p.lock.Unlock()

	if wasFull && p.comp != nil {
		p.comp.NotifyPortFree(p)
	}

	return msg
}

// PeekIncoming returns the first message in the incoming buffer without
// removing it.
func (p *defaultPort) PeekIncoming() Msg {
	p.lock.Lock()
	defer p.lock.Unlock()

	if len(p.incomingBuf) == 0 {
		return nil
	}

	return p.incomingBuf[0]
}

// PeekOutgoing returns the first message in the outgoing buffer without
// removing it.
func (p *defaultPort) PeekOutgoing() Msg {
	p.lock.Lock()
	defer p.lock.Unlock()

	if len(p.outgoingBuf) == 0 {
		return nil
	}

	return p.outgoingBuf[0]
}

// NotifyAvailable is called by the connection to notify the port that the
// connection can deliver again.
func (p *defaultPort) NotifyAvailable() {
	if p.comp != nil {
		p.comp.NotifyPortFree(p)
	}
}
