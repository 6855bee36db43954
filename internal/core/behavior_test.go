package core

import "testing"

func highSignal() Cell {
	c := NewCell(Signal)
	c.Level = true
	return c
}

func TestGateActiveTruthTables(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		a, b bool
		want bool
	}{
		{"and TT", AndGate, true, true, true},
		{"and TF", AndGate, true, false, false},
		{"and FF", AndGate, false, false, false},
		{"or TT", OrGate, true, true, true},
		{"or TF", OrGate, true, false, true},
		{"or FF", OrGate, false, false, false},
		{"nand TT", NandGate, true, true, false},
		{"nand TF", NandGate, true, false, true},
		{"nand FF", NandGate, false, false, true},
		{"nor TT", NorGate, true, true, false},
		{"nor TF", NorGate, true, false, false},
		{"nor FF", NorGate, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Neighborhood
			n[0] = NewCell(Signal)
			n[0].Level = tt.a
			n[1] = NewCell(Signal)
			n[1].Level = tt.b
			if got := GateActive(tt.kind, n); got != tt.want {
				t.Fatalf("GateActive(%s, %v, %v) = %v, want %v", tt.kind, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestGateWithNoSignalInputsIsInert(t *testing.T) {
	var n Neighborhood
	n[0] = NewCell(ConductiveWire)
	n[0].Level = true
	for _, k := range []Kind{AndGate, OrGate, NandGate, NorGate} {
		if GateActive(k, n) {
			t.Fatalf("%s fired with no signal inputs", k)
		}
	}
}

func TestRelayClosed(t *testing.T) {
	var quiet Neighborhood
	quiet[2] = NewCell(Signal)

	var hot Neighborhood
	hot[2] = highSignal()

	if RelayClosed(PositiveRelay, quiet) {
		t.Fatal("positive relay closed without a HIGH signal")
	}
	if !RelayClosed(PositiveRelay, hot) {
		t.Fatal("positive relay open despite a HIGH signal")
	}
	if !RelayClosed(NegativeRelay, quiet) {
		t.Fatal("negative relay open without a HIGH signal")
	}
	if RelayClosed(NegativeRelay, hot) {
		t.Fatal("negative relay closed despite a HIGH signal")
	}
	// A lone negative relay is a normally-closed switch.
	if !RelayClosed(NegativeRelay, Neighborhood{}) {
		t.Fatal("isolated negative relay should conduct")
	}
}

func TestLocalClass(t *testing.T) {
	var none Neighborhood
	var hot Neighborhood
	hot[1] = highSignal()

	tests := []struct {
		name string
		cell Cell
		n    Neighborhood
		want Class
	}{
		{"empty", NewCell(Empty), none, ClassInsulate},
		{"wire", NewCell(ConductiveWire), none, ClassConduct},
		{"insulated wire", NewCell(InsulatedWire), none, ClassConductAxis},
		{"signal", NewCell(Signal), none, ClassConductAxis},
		{"source", NewCell(Source), none, ClassSource},
		{"open positive relay", NewCell(PositiveRelay), none, ClassInsulate},
		{"closed positive relay", NewCell(PositiveRelay), hot, ClassConductAxis},
		{"closed negative relay", NewCell(NegativeRelay), none, ClassConductAxis},
		{"open negative relay", NewCell(NegativeRelay), hot, ClassInsulate},
		{"inert gate", NewCell(AndGate), none, ClassInsulate},
		{"firing gate", NewCell(OrGate), hot, ClassSource},
		{"idle communicator", NewCell(ScreenComm), none, ClassConduct},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocalClass(tt.cell, tt.n); got != tt.want {
				t.Fatalf("LocalClass = %v, want %v", got, tt.want)
			}
		})
	}

	transmitting := NewCell(FileInComm)
	transmitting.Transmit = true
	if got := LocalClass(transmitting, none); got != ClassSource {
		t.Fatalf("transmitting communicator class = %v, want source", got)
	}
}
