package trace

import (
	"encoding/hex"

	"github.com/OscarVsp/ELEC-H409-UART-Interface/sim"
	"github.com/OscarVsp/ELEC-H409-UART-Interface/uart"
)

// ByteEntry is one framed byte crossing the line, in either direction.
type ByteEntry struct {
	Time      float64
	Component string
	Direction string
	Value     uint8
}

// WordEntry is one word-level transaction step.
type WordEntry struct {
	Time      float64
	Component string
	Direction string
	Word      string
}

// Tracer is a hook that records byte and word events of UART components
// into a Recorder. Attach it with AcceptHook on every component to trace.
type Tracer struct {
	timeTeller sim.TimeTeller
	recorder   Recorder
}

// NewTracer creates a Tracer and prepares its tables.
func NewTracer(timeTeller sim.TimeTeller, recorder Recorder) *Tracer {
	t := &Tracer{
		timeTeller: timeTeller,
		recorder:   recorder,
	}

	recorder.CreateTable("bytes", ByteEntry{})
	recorder.CreateTable("words", WordEntry{})

	return t
}

// Func records the hooked event.
func (t *Tracer) Func(ctx sim.HookCtx) {
	name := ""
	if named, ok := ctx.Domain.(sim.Named); ok {
		name = named.Name()
	}

	now := float64(t.timeTeller.CurrentTime())

	switch ctx.Pos {
	case uart.HookPosByteRecv:
		t.recorder.InsertData("bytes", ByteEntry{
			Time:      now,
			Component: name,
			Direction: "recv",
			Value:     ctx.Item.(byte),
		})
	case uart.HookPosByteSent:
		t.recorder.InsertData("bytes", ByteEntry{
			Time:      now,
			Component: name,
			Direction: "sent",
			Value:     ctx.Item.(byte),
		})
	case uart.HookPosWordIn:
		t.recorder.InsertData("words", WordEntry{
			Time:      now,
			Component: name,
			Direction: "in",
			Word:      hex.EncodeToString(ctx.Item.([]byte)),
		})
	case uart.HookPosWordOut:
		t.recorder.InsertData("words", WordEntry{
			Time:      now,
			Component: name,
			Direction: "out",
			Word:      hex.EncodeToString(ctx.Item.([]byte)),
		})
	}
}
