package core

// Class describes how a cell participates in one propagation step.
type Class uint8

const (
	// ClassInsulate never carries current.
	ClassInsulate Class = iota
	// ClassConduct carries current and couples the horizontal and vertical
	// axes through the cell, like a plain wire junction.
	ClassConduct
	// ClassConductAxis carries current along each axis independently; the
	// two axes stay electrically isolated through the cell. Insulated wires
	// are crossings, not junctions, and signals, gates and relays behave the
	// same way.
	ClassConductAxis
	// ClassSource seeds the flood fill on both axes.
	ClassSource
)

var classNames = [...]string{
	ClassInsulate:    "insulate",
	ClassConduct:     "conduct",
	ClassConductAxis: "conduct-axis",
	ClassSource:      "source",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// Conducts reports whether the flood fill may enter a cell of this class.
func (c Class) Conducts() bool { return c != ClassInsulate }

// Neighborhood holds the previous-step public state of the four orthogonal
// neighbors of a cell, in west/east/north/south order. Out-of-bounds
// neighbors are zero cells (Empty, LOW).
type Neighborhood [4]Cell

// signalInputs counts the adjacent Signal cells and how many of them were
// HIGH on the previous step.
func (n Neighborhood) signalInputs() (inputs, high int) {
	for _, nb := range n {
		if nb.Kind != Signal {
			continue
		}
		inputs++
		if nb.Level {
			high++
		}
	}
	return inputs, high
}

// GateActive evaluates the gate truth function over the previous-step levels
// of adjacent Signal cells. A gate with no signal inputs is inert.
func GateActive(k Kind, n Neighborhood) bool {
	inputs, high := n.signalInputs()
	if inputs == 0 {
		return false
	}
	switch k {
	case AndGate:
		return high == inputs
	case OrGate:
		return high > 0
	case NandGate:
		return high < inputs
	case NorGate:
		return high == 0
	}
	return false
}

// RelayClosed reports whether a relay conducts this step. A positive relay
// closes when any adjacent signal was HIGH on the previous step; a negative
// relay is normally closed and opens when one was.
func RelayClosed(k Kind, n Neighborhood) bool {
	_, high := n.signalInputs()
	if k == PositiveRelay {
		return high > 0
	}
	return high == 0
}

// LocalClass computes a cell's conduction class for the coming step from its
// own state and the previous-step state of its four orthogonal neighbors.
// It reads no global state, which keeps the classification pass order-free.
func LocalClass(c Cell, n Neighborhood) Class {
	switch c.Kind {
	case Empty:
		return ClassInsulate
	case ConductiveWire:
		return ClassConduct
	case InsulatedWire, Signal:
		return ClassConductAxis
	case Source:
		return ClassSource
	case PositiveRelay, NegativeRelay:
		if RelayClosed(c.Kind, n) {
			return ClassConductAxis
		}
		return ClassInsulate
	case AndGate, OrGate, NandGate, NorGate:
		if GateActive(c.Kind, n) {
			return ClassSource
		}
		return ClassInsulate
	case ScreenComm, FileInComm, FileOutComm:
		if c.Transmit {
			return ClassSource
		}
		return ClassConduct
	}
	return ClassInsulate
}
