package sim

import (
	"wiregrid/internal/comm"
	"wiregrid/internal/core"
)

// binding ties one communicator cell to its out-of-band endpoint. Exactly
// one of src and sink is set.
type binding struct {
	x, y int
	src  comm.Source
	sink comm.Sink
	dead bool
}

// BindInput attaches src to the communicator cell at (x, y). Before every
// step the next bit from src is latched into the cell's transmit flag. The
// loop must be stopped.
func (s *Simulator) BindInput(x, y int, src comm.Source) {
	s.mustBeStopped("BindInput")
	s.bindings = append(s.bindings, binding{x: x, y: y, src: src})
}

// BindOutput attaches sink to the communicator cell at (x, y). After every
// published step the cell's logic level is pushed into the sink. The loop
// must be stopped.
func (s *Simulator) BindOutput(x, y int, sink comm.Sink) {
	s.mustBeStopped("BindOutput")
	s.bindings = append(s.bindings, binding{x: x, y: y, sink: sink})
}

// latchInputs returns a copy of g with every bound input's next bit written
// into its cell's transmit flag, or nil when there is nothing to latch. The
// published grid itself is never touched.
func (s *Simulator) latchInputs(g *core.Grid) *core.Grid {
	var work *core.Grid
	for i := range s.bindings {
		b := &s.bindings[i]
		if b.src == nil || b.dead || !g.InBounds(b.x, b.y) {
			continue
		}
		bit, err := b.src.Next()
		if err != nil {
			b.dead = true
			continue
		}
		if work == nil {
			work = g.Clone()
		}
		c := work.At(b.x, b.y)
		c.Transmit = bit
		work.Set(b.x, b.y, c)
	}
	return work
}

// pushOutputs feeds bound sinks from a freshly published grid. A sink that
// fails is dropped rather than retried every tick.
func (s *Simulator) pushOutputs(g *core.Grid) {
	for i := range s.bindings {
		b := &s.bindings[i]
		if b.sink == nil || b.dead || !g.InBounds(b.x, b.y) {
			continue
		}
		if err := b.sink.Put(g.At(b.x, b.y).Level); err != nil {
			b.dead = true
		}
	}
}
