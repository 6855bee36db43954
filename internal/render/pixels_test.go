package render

import (
	"testing"

	"wiregrid/internal/core"
)

func TestPaletteCoversAllKinds(t *testing.T) {
	for k := core.Empty; k <= core.FileOutComm; k++ {
		for _, level := range []bool{false, true} {
			i := slot(k, level)
			if i < 0 || i >= len(Palette) {
				t.Fatalf("slot(%s, %v) = %d out of palette range", k, level, i)
			}
			if Palette[i].A != 0xff {
				t.Fatalf("palette entry %d for %s is transparent", i, k)
			}
		}
	}
}

func TestIndicesDistinguishLevels(t *testing.T) {
	g := core.NewGrid(2, 1)
	g.Place(0, 0, core.ConductiveWire)
	c := core.NewCell(core.ConductiveWire)
	c.Level = true
	g.Set(1, 0, c)

	idx := Indices(g)
	if len(idx) != 2 {
		t.Fatalf("got %d indices", len(idx))
	}
	if idx[0] == idx[1] {
		t.Fatal("LOW and HIGH wires share a palette slot")
	}
}

func TestFillPaletteRGBA(t *testing.T) {
	cells := []uint8{0, 1, 200}
	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, Palette)
	// Out-of-range values clamp to the last palette entry.
	last := Palette[len(Palette)-1]
	if buf[8] != last.R || buf[9] != last.G || buf[10] != last.B || buf[11] != last.A {
		t.Fatal("out-of-range cell did not clamp to the last palette entry")
	}

	fillPaletteRGBA(buf, cells, nil)
	for _, b := range buf {
		if b != 0 {
			t.Fatal("empty palette should clear the buffer")
		}
	}
}
