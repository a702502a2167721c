package tracing

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/sarchlab/eventkernel/sim/hooking"
	"github.com/sarchlab/eventkernel/sim/timing"
)

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() timing.TimeInstant
}

type named interface {
	Name() string
}

// Tracer is a hook that turns every invocation into a Record.
type Tracer struct {
	timeTeller TimeTeller
	writer     TraceWriter
}

// NewTracer creates a Tracer that stamps records with the time told by
// timeTeller.
func NewTracer(timeTeller TimeTeller, writer TraceWriter) *Tracer {
	return &Tracer{
		timeTeller: timeTeller,
		writer:     writer,
	}
}

// Func records the invocation.
func (t *Tracer) Func(ctx hooking.HookCtx) {
	r := Record{
		ID:   xid.New().String(),
		Pos:  ctx.Pos.Name,
		Item: describe(ctx.Item),
	}

	if n, ok := ctx.Domain.(named); ok {
		r.Domain = n.Name()
	}

	if ctx.Detail != nil {
		r.Detail = describe(ctx.Detail)
	}

	if t.timeTeller != nil {
		r.Tick = t.timeTeller.CurrentTime().Ticks()
	}

	t.writer.Write(r)
}

func describe(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case fmt.Stringer:
		return v.String()
	case named:
		return v.Name()
	default:
		return fmt.Sprint(v)
	}
}
