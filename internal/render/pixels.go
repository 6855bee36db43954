package render

import (
	"image/color"

	"wiregrid/internal/core"
)

// Two palette slots per element kind: LOW then HIGH.
func slot(k core.Kind, level bool) int {
	i := int(k) * 2
	if level {
		i++
	}
	return i
}

// Palette maps palette slots to display colors. Dim shade for LOW, bright
// for HIGH.
var Palette = buildPalette()

func buildPalette() []color.RGBA {
	dim := map[core.Kind]color.RGBA{
		core.Empty:          {0x10, 0x10, 0x10, 0xff},
		core.ConductiveWire: {0x50, 0x40, 0x20, 0xff},
		core.InsulatedWire:  {0x30, 0x50, 0x30, 0xff},
		core.Signal:         {0x20, 0x30, 0x60, 0xff},
		core.Source:         {0x80, 0x20, 0x20, 0xff},
		core.PositiveRelay:  {0x50, 0x30, 0x50, 0xff},
		core.NegativeRelay:  {0x30, 0x50, 0x50, 0xff},
		core.AndGate:        {0x40, 0x40, 0x60, 0xff},
		core.OrGate:         {0x40, 0x50, 0x60, 0xff},
		core.NandGate:       {0x60, 0x40, 0x40, 0xff},
		core.NorGate:        {0x60, 0x50, 0x40, 0xff},
		core.ScreenComm:     {0x40, 0x60, 0x40, 0xff},
		core.FileInComm:     {0x60, 0x60, 0x30, 0xff},
		core.FileOutComm:    {0x30, 0x60, 0x60, 0xff},
	}
	p := make([]color.RGBA, (int(core.FileOutComm)+1)*2)
	for k, c := range dim {
		p[slot(k, false)] = c
		p[slot(k, true)] = color.RGBA{
			R: c.R + (0xff-c.R)/2 + (0xff-c.R)/4,
			G: c.G + (0xff-c.G)/2 + (0xff-c.G)/4,
			B: c.B + (0xff-c.B)/2 + (0xff-c.B)/4,
			A: 0xff,
		}
	}
	return p
}

// Indices flattens a grid into palette slot indices, row-major.
func Indices(g *core.Grid) []uint8 {
	out := make([]uint8, g.W*g.H)
	for i, c := range g.Cells() {
		out[i] = uint8(slot(c.Kind, c.Level))
	}
	return out
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// When the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
