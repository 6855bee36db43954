package core

// Grid stores a 2D field of circuit cells in row-major order. Either both
// dimensions are positive or both are zero; there is no wraparound.
type Grid struct {
	W, H  int
	cells []Cell
}

// NewGrid allocates a grid with the given dimensions. Non-positive
// dimensions yield the empty grid.
func NewGrid(w, h int) *Grid {
	if w <= 0 || h <= 0 {
		return &Grid{}
	}
	return &Grid{W: w, H: h, cells: make([]Cell, w*h)}
}

// Empty reports whether the grid has zero size.
func (g *Grid) Empty() bool { return g.W == 0 }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []Cell { return g.cells }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the cell at (x, y).
func (g *Grid) At(x, y int) Cell { return g.cells[y*g.W+x] }

// Set stores a cell at (x, y). Source cells are pinned HIGH.
func (g *Grid) Set(x, y int, c Cell) {
	if c.Kind == Source {
		c.Level = true
		c.StartLevel = true
	}
	g.cells[y*g.W+x] = c
}

// Place puts a fresh cell of the given kind at (x, y) in its starting state.
func (g *Grid) Place(x, y int, k Kind) {
	g.cells[y*g.W+x] = NewCell(k)
}

// Neighbors gathers the four orthogonal neighbors of (x, y) in
// west/east/north/south order. Out-of-bounds slots stay zero (Empty, LOW).
func (g *Grid) Neighbors(x, y int) Neighborhood {
	var n Neighborhood
	if x > 0 {
		n[0] = g.cells[y*g.W+x-1]
	}
	if x < g.W-1 {
		n[1] = g.cells[y*g.W+x+1]
	}
	if y > 0 {
		n[2] = g.cells[(y-1)*g.W+x]
	}
	if y < g.H-1 {
		n[3] = g.cells[(y+1)*g.W+x]
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{W: g.W, H: g.H}
	if len(g.cells) > 0 {
		c.cells = make([]Cell, len(g.cells))
		copy(c.cells, g.cells)
	}
	return c
}

// CopyFrom replaces the grid's dimensions and contents with a deep copy of
// src.
func (g *Grid) CopyFrom(src *Grid) {
	g.W, g.H = src.W, src.H
	if len(src.cells) == 0 {
		g.cells = nil
		return
	}
	if len(g.cells) != len(src.cells) {
		g.cells = make([]Cell, len(src.cells))
	}
	copy(g.cells, src.cells)
}

// ResetLevels restores every cell to its starting logic state.
func (g *Grid) ResetLevels() {
	for i := range g.cells {
		g.cells[i].Reset()
	}
}
