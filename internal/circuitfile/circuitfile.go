// Package circuitfile reads and writes circuits as YAML documents: one rune
// per cell laid out in rows, plus optional per-cell state overrides and
// communicator endpoint declarations. The engine never sees this format; it
// exists for the CLI and the editor layer.
package circuitfile

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"wiregrid/internal/core"
)

// Rune legend for circuit rows.
var runeKinds = map[rune]core.Kind{
	'.': core.Empty,
	'w': core.ConductiveWire,
	'i': core.InsulatedWire,
	's': core.Signal,
	'S': core.Source,
	'p': core.PositiveRelay,
	'n': core.NegativeRelay,
	'a': core.AndGate,
	'o': core.OrGate,
	'A': core.NandGate,
	'O': core.NorGate,
	'c': core.ScreenComm,
	'<': core.FileInComm,
	'>': core.FileOutComm,
}

var kindRunes = func() map[core.Kind]rune {
	m := make(map[core.Kind]rune, len(runeKinds))
	for r, k := range runeKinds {
		m[k] = r
	}
	return m
}()

// Rune returns the legend rune for a kind, or '?' for an unknown kind.
func Rune(k core.Kind) rune {
	if r, ok := kindRunes[k]; ok {
		return r
	}
	return '?'
}

// KindOf returns the kind a legend rune stands for.
func KindOf(r rune) (core.Kind, bool) {
	k, ok := runeKinds[r]
	return k, ok
}

// Circuit is a parsed circuit document: the grid plus the communicator
// endpoints it wants wired up.
type Circuit struct {
	Name  string
	Grid  *core.Grid
	Comms []CommSpec
}

// CommSpec declares the endpoint behind one communicator cell: a file path
// for file communicators, a label for screens.
type CommSpec struct {
	X, Y  int
	Kind  core.Kind
	Path  string
	Label string
}

type fileCircuit struct {
	Name  string     `yaml:"name,omitempty"`
	Rows  []string   `yaml:"rows"`
	Cells []fileCell `yaml:"cells,omitempty"`
	Comms []fileComm `yaml:"comms,omitempty"`
}

// fileCell overrides the full mutable state of one cell. Omitted fields are
// false.
type fileCell struct {
	X               int  `yaml:"x"`
	Y               int  `yaml:"y"`
	Level           bool `yaml:"level,omitempty"`
	StartLevel      bool `yaml:"start_level,omitempty"`
	Conductive      bool `yaml:"conductive,omitempty"`
	StartConductive bool `yaml:"start_conductive,omitempty"`
	Transmit        bool `yaml:"transmit,omitempty"`
}

type fileComm struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Path  string `yaml:"path,omitempty"`
	Label string `yaml:"label,omitempty"`
}

// Parse decodes a YAML circuit document.
func Parse(data []byte) (*Circuit, error) {
	var fc fileCircuit
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, errors.Wrap(err, "decode circuit")
	}
	if len(fc.Rows) == 0 {
		return nil, errors.New("circuit has no rows")
	}
	w := len([]rune(fc.Rows[0]))
	h := len(fc.Rows)
	if w == 0 {
		return nil, errors.New("circuit rows are empty")
	}
	g := core.NewGrid(w, h)
	for y, row := range fc.Rows {
		runes := []rune(row)
		if len(runes) != w {
			return nil, errors.Errorf("row %d has %d cells, want %d", y, len(runes), w)
		}
		for x, r := range runes {
			k, ok := runeKinds[r]
			if !ok {
				return nil, errors.Errorf("unknown element %q at (%d,%d)", r, x, y)
			}
			g.Place(x, y, k)
		}
	}
	for _, ov := range fc.Cells {
		if !g.InBounds(ov.X, ov.Y) {
			return nil, errors.Errorf("cell override (%d,%d) out of bounds", ov.X, ov.Y)
		}
		c := g.At(ov.X, ov.Y)
		if c.Kind == core.Empty {
			return nil, errors.Errorf("cell override (%d,%d) targets an empty cell", ov.X, ov.Y)
		}
		c.Level = ov.Level
		c.StartLevel = ov.StartLevel
		c.Conductive = ov.Conductive
		c.StartConductive = ov.StartConductive
		c.Transmit = ov.Transmit
		g.Set(ov.X, ov.Y, c)
	}
	circ := &Circuit{Name: fc.Name, Grid: g}
	for _, cm := range fc.Comms {
		if !g.InBounds(cm.X, cm.Y) {
			return nil, errors.Errorf("comm (%d,%d) out of bounds", cm.X, cm.Y)
		}
		k := g.At(cm.X, cm.Y).Kind
		if !k.IsCommunicator() {
			return nil, errors.Errorf("comm (%d,%d) targets a %s cell", cm.X, cm.Y, k)
		}
		if k != core.ScreenComm && cm.Path == "" {
			return nil, errors.Errorf("comm (%d,%d) needs a path", cm.X, cm.Y)
		}
		circ.Comms = append(circ.Comms, CommSpec{
			X: cm.X, Y: cm.Y, Kind: k, Path: cm.Path, Label: cm.Label,
		})
	}
	return circ, nil
}

// Load reads and parses a circuit file.
func Load(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read circuit file")
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return c, nil
}

// Marshal encodes a circuit back into the YAML document format. Cell
// overrides are emitted only where a cell's state differs from its kind's
// starting state.
func Marshal(c *Circuit) ([]byte, error) {
	if c.Grid == nil || c.Grid.Empty() {
		return nil, errors.New("cannot marshal an empty circuit")
	}
	fc := fileCircuit{Name: c.Name}
	for y := 0; y < c.Grid.H; y++ {
		row := make([]rune, c.Grid.W)
		for x := 0; x < c.Grid.W; x++ {
			cell := c.Grid.At(x, y)
			r, ok := kindRunes[cell.Kind]
			if !ok {
				return nil, errors.Errorf("no rune for kind %s", cell.Kind)
			}
			row[x] = r
			if cell != core.NewCell(cell.Kind) {
				fc.Cells = append(fc.Cells, fileCell{
					X: x, Y: y,
					Level:           cell.Level,
					StartLevel:      cell.StartLevel,
					Conductive:      cell.Conductive,
					StartConductive: cell.StartConductive,
					Transmit:        cell.Transmit,
				})
			}
		}
		fc.Rows = append(fc.Rows, string(row))
	}
	for _, cm := range c.Comms {
		fc.Comms = append(fc.Comms, fileComm{X: cm.X, Y: cm.Y, Path: cm.Path, Label: cm.Label})
	}
	out, err := yaml.Marshal(&fc)
	if err != nil {
		return nil, errors.Wrap(err, "encode circuit")
	}
	return out, nil
}

// Save writes a circuit file.
func Save(path string, c *Circuit) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write %s", path)
}
