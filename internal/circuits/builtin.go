// Package circuits registers a handful of built-in demonstration circuits
// so the CLI and the UI have something to load without a circuit file.
package circuits

import "wiregrid/internal/core"

// WireRun is a source feeding a straight run of wire.
func WireRun() *core.Grid {
	g := core.NewGrid(6, 1)
	g.Place(0, 0, core.Source)
	for x := 1; x < 6; x++ {
		g.Place(x, 0, core.ConductiveWire)
	}
	return g
}

// Crossing is two independently fed wire runs crossing through one insulated
// wire cell. The horizontal and vertical runs stay electrically separate.
func Crossing() *core.Grid {
	g := core.NewGrid(5, 5)
	g.Place(0, 2, core.Source)
	g.Place(1, 2, core.ConductiveWire)
	g.Place(2, 2, core.InsulatedWire)
	g.Place(3, 2, core.ConductiveWire)
	g.Place(4, 2, core.ConductiveWire)
	g.Place(2, 0, core.Source)
	g.Place(2, 1, core.ConductiveWire)
	g.Place(2, 3, core.ConductiveWire)
	g.Place(2, 4, core.ConductiveWire)
	return g
}

// AndDemo is an AND gate with two signal inputs, both starting HIGH, driving
// a wire run.
func AndDemo() *core.Grid {
	g := core.NewGrid(4, 3)
	top := core.NewCell(core.Signal)
	top.Level = true
	top.StartLevel = true
	bottom := top
	g.Set(1, 0, top)
	g.Set(1, 2, bottom)
	g.Place(1, 1, core.AndGate)
	g.Place(2, 1, core.ConductiveWire)
	g.Place(3, 1, core.ConductiveWire)
	return g
}

// Blinker oscillates with period two: a negative relay drives the very
// signal that opens it.
func Blinker() *core.Grid {
	g := core.NewGrid(3, 1)
	g.Place(0, 0, core.Source)
	g.Place(1, 0, core.NegativeRelay)
	g.Place(2, 0, core.Signal)
	return g
}

// ScreenDemo feeds a screen communicator from a source through wire.
func ScreenDemo() *core.Grid {
	g := core.NewGrid(4, 1)
	g.Place(0, 0, core.Source)
	g.Place(1, 0, core.ConductiveWire)
	g.Place(2, 0, core.ConductiveWire)
	g.Place(3, 0, core.ScreenComm)
	return g
}

func init() {
	core.Register("wire-run", WireRun)
	core.Register("crossing", Crossing)
	core.Register("and-demo", AndDemo)
	core.Register("blinker", Blinker)
	core.Register("screen-demo", ScreenDemo)
}
