// Package engine computes one simulation step for a circuit grid: classify
// every cell from its previous-step neighborhood, then flood-fill logic
// levels outward from every source.
package engine

import "wiregrid/internal/core"

// axis selects one of the two orthogonal conduction axes through a cell.
type axis uint8

const (
	horizontal axis = iota
	vertical
)

// entry is one unit of flood-fill work: a cell entered along one axis.
type entry struct {
	x, y int
	ax   axis
}

// visited tracks flood-fill progress with one bit per axis per cell. The two
// bits are what keeps an insulated wire's crossing axes electrically
// separate: energizing the horizontal run must not energize the vertical one.
type visited struct {
	w          int
	horizontal []bool
	vertical   []bool
}

func newVisited(w, h int) *visited {
	return &visited{
		w:          w,
		horizontal: make([]bool, w*h),
		vertical:   make([]bool, w*h),
	}
}

func (v *visited) get(x, y int, ax axis) bool {
	if ax == horizontal {
		return v.horizontal[y*v.w+x]
	}
	return v.vertical[y*v.w+x]
}

func (v *visited) set(x, y int, ax axis) {
	if ax == horizontal {
		v.horizontal[y*v.w+x] = true
		return
	}
	v.vertical[y*v.w+x] = true
}

func (v *visited) any(x, y int) bool {
	return v.horizontal[y*v.w+x] || v.vertical[y*v.w+x]
}

// Step computes the next grid from old. It is a pure function: it reads only
// old, allocates a brand-new grid of the same dimensions and never mutates
// its input. A zero-sized grid steps to a zero-sized grid.
func Step(old *core.Grid) *core.Grid {
	if old.Empty() {
		return core.NewGrid(0, 0)
	}
	w, h := old.W, old.H

	// Classification pass. Every cell's class is derived from old alone, so
	// iteration order cannot leak partially updated state.
	classes := make([]core.Class, w*h)
	next := core.NewGrid(w, h)
	oldCells := old.Cells()
	nextCells := next.Cells()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			cell := oldCells[i]
			n := old.Neighbors(x, y)
			classes[i] = core.LocalClass(cell, n)

			// Seed the next grid: same kinds and starting state, levels LOW
			// until the flood fill commits them. Relay conduction is
			// recomputed from the previous step's signals here, which is
			// where the deliberate one-step switching latency comes from.
			seed := cell
			seed.Level = false
			if cell.Kind.IsRelay() {
				seed.Conductive = core.RelayClosed(cell.Kind, n)
			}
			nextCells[i] = seed
		}
	}

	// Flood fill. Explicit work stack, never recursion: connected components
	// can span the whole grid.
	vis := newVisited(w, h)
	var stack []entry
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if classes[y*w+x] == core.ClassSource {
				stack = append(stack, entry{x, y, horizontal}, entry{x, y, vertical})
			}
		}
	}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if vis.get(e.x, e.y, e.ax) {
			continue
		}
		vis.set(e.x, e.y, e.ax)

		i := e.y*w + e.x
		// A plain conductor couples the axes through the cell; axis-isolated
		// cells (insulated wires, signals, gates, relays) do not.
		if classes[i] == core.ClassConduct {
			other := horizontal
			if e.ax == horizontal {
				other = vertical
			}
			if !vis.get(e.x, e.y, other) {
				stack = append(stack, entry{e.x, e.y, other})
			}
		}

		dx, dy := 1, 0
		if e.ax == vertical {
			dx, dy = 0, 1
		}
		for _, sign := range [2]int{-1, 1} {
			nx, ny := e.x+sign*dx, e.y+sign*dy
			if !old.InBounds(nx, ny) {
				continue
			}
			if !classes[ny*w+nx].Conducts() {
				continue
			}
			if vis.get(nx, ny, e.ax) {
				continue
			}
			if !edgeAllowed(oldCells[i].Kind, oldCells[ny*w+nx].Kind) {
				continue
			}
			stack = append(stack, entry{nx, ny, e.ax})
		}
	}

	// Commit levels. Source cells are pinned HIGH, Empty never carries one.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			switch nextCells[i].Kind {
			case core.Empty:
			case core.Source:
				nextCells[i].Level = true
			default:
				nextCells[i].Level = vis.any(x, y)
			}
		}
	}
	return next
}

// edgeAllowed applies the type-gating rules for a flood edge between two
// adjacent cells. A signal line only meets the world through receivers, so a
// HIGH signal can never silently bridge into an unrelated wire network, and
// communicators only pair with their own kind.
func edgeAllowed(a, b core.Kind) bool {
	if a == core.Signal {
		return b.IsReceiver()
	}
	if b == core.Signal {
		return a.IsReceiver()
	}
	if a.IsCommunicator() && b.IsCommunicator() {
		return a == b
	}
	return true
}
