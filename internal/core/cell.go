package core

// Kind identifies the element occupying a grid cell.
type Kind uint8

const (
	Empty Kind = iota
	ConductiveWire
	InsulatedWire
	Signal
	Source
	PositiveRelay
	NegativeRelay
	AndGate
	OrGate
	NandGate
	NorGate
	ScreenComm
	FileInComm
	FileOutComm
)

var kindNames = [...]string{
	Empty:          "empty",
	ConductiveWire: "wire",
	InsulatedWire:  "insulated-wire",
	Signal:         "signal",
	Source:         "source",
	PositiveRelay:  "positive-relay",
	NegativeRelay:  "negative-relay",
	AndGate:        "and-gate",
	OrGate:         "or-gate",
	NandGate:       "nand-gate",
	NorGate:        "nor-gate",
	ScreenComm:     "screen-comm",
	FileInComm:     "file-in-comm",
	FileOutComm:    "file-out-comm",
}

// String returns the element name used in circuit files and logs.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsGate reports whether the kind computes a boolean function of its inputs.
func (k Kind) IsGate() bool {
	return k == AndGate || k == OrGate || k == NandGate || k == NorGate
}

// IsRelay reports whether the kind is a signal-controlled switch.
func (k Kind) IsRelay() bool {
	return k == PositiveRelay || k == NegativeRelay
}

// IsReceiver reports whether the kind may sit on the far side of a Signal
// edge during flood fill. Only gates and relays read signal lines.
func (k Kind) IsReceiver() bool {
	return k.IsGate() || k.IsRelay()
}

// IsCommunicator reports whether the kind bridges the grid to an out-of-band
// byte stream (screen, file input, file output).
func (k Kind) IsCommunicator() bool {
	return k == ScreenComm || k == FileInComm || k == FileOutComm
}

// HasLevel reports whether the kind exposes a logic level at all.
func (k Kind) HasLevel() bool { return k != Empty }

// Cell is one element of the circuit grid. Level is the externally visible
// logic state; StartLevel is what a reset restores. Conductive only means
// something for relays, Transmit only for communicators.
type Cell struct {
	Kind            Kind
	Level           bool
	StartLevel      bool
	Conductive      bool
	StartConductive bool
	Transmit        bool
}

// NewCell returns a cell of the given kind in its starting state. Source
// cells are born HIGH and negative relays born closed.
func NewCell(k Kind) Cell {
	c := Cell{Kind: k}
	switch k {
	case Source:
		c.Level = true
		c.StartLevel = true
	case NegativeRelay:
		c.Conductive = true
		c.StartConductive = true
	}
	return c
}

// Reset restores the starting logic state. Source cells ignore resets and
// stay HIGH.
func (c *Cell) Reset() {
	if c.Kind == Source {
		c.Level = true
		return
	}
	c.Level = c.StartLevel
	c.Conductive = c.StartConductive
}
