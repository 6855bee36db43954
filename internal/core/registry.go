package core

// CircuitFactory builds a ready-to-compile circuit grid.
type CircuitFactory func() *Grid

var circuits = map[string]CircuitFactory{}

// Register adds a built-in circuit factory under the provided name.
func Register(name string, f CircuitFactory) {
	if name == "" || f == nil {
		return
	}
	circuits[name] = f
}

// Circuits exposes the registry of built-in circuit factories.
func Circuits() map[string]CircuitFactory {
	return circuits
}
