// Package sim owns the background simulation loop and the thread-safe
// snapshot hand-off between the loop and any number of readers.
package sim

import (
	"sync"
	"sync/atomic"
	"time"

	"wiregrid/internal/core"
	"wiregrid/internal/engine"
)

// Simulator runs the propagation engine repeatedly on a background goroutine
// and publishes each finished grid through an atomically swapped pointer.
// Published grids are immutable: a step always builds a new grid, so readers
// that loaded the pointer can read the pointee freely without a lock.
//
// Compile, StepOnce and Reset require the loop to be stopped; calling them
// while it runs is a caller logic error and panics.
type Simulator struct {
	published atomic.Pointer[core.Grid]
	period    atomic.Int64 // nanoseconds; 0 means run flat out

	mu      sync.Mutex // guards running/stop; never held around grid work
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup

	bindings []binding
}

// New returns a stopped simulator publishing an empty grid.
func New() *Simulator {
	s := &Simulator{}
	s.published.Store(core.NewGrid(0, 0))
	return s
}

// Running reports whether the background loop is active.
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// SetPeriod sets the delay between steps, taking effect from the next
// iteration. Zero means unconstrained.
func (s *Simulator) SetPeriod(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.period.Store(int64(d))
}

// Period returns the current step period.
func (s *Simulator) Period() time.Duration {
	return time.Duration(s.period.Load())
}

// Compile installs a deep copy of g as the current published grid,
// optionally restoring every cell to its starting state first. The loop must
// be stopped.
func (s *Simulator) Compile(g *core.Grid, resetLevels bool) {
	s.mustBeStopped("Compile")
	c := g.Clone()
	if resetLevels {
		c.ResetLevels()
	}
	s.published.Store(c)
}

// StepOnce synchronously computes and publishes one step on the calling
// goroutine. The loop must be stopped.
func (s *Simulator) StepOnce() {
	s.mustBeStopped("StepOnce")
	next := s.computeStep(s.published.Load())
	s.published.Store(next)
	s.pushOutputs(next)
}

// Reset recompiles from g with all cells restored to their starting state
// and copies the result straight back into g, so the caller sees the
// post-reset levels without a step having run.
func (s *Simulator) Reset(g *core.Grid) {
	s.Compile(g, true)
	g.CopyFrom(s.published.Load())
}

// Snapshot returns a deep copy of the most recently published grid. It is
// safe from any goroutine in either state and never blocks the loop.
func (s *Simulator) Snapshot() *core.Grid {
	return s.published.Load().Clone()
}

// Start spawns the background loop. Panics if already running.
func (s *Simulator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		panic("sim: Start while running")
	}
	s.running = true
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go s.loop(s.stop)
}

// Stop requests shutdown, wakes the sleeping loop and joins it. Once Stop
// returns no further grids will be published. Panics if not running.
func (s *Simulator) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		panic("sim: Stop while stopped")
	}
	stop := s.stop
	s.mu.Unlock()

	close(stop)
	s.wg.Wait()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

func (s *Simulator) loop(stop chan struct{}) {
	defer s.wg.Done()
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		began := time.Now()
		next := s.computeStep(s.published.Load())

		// A step that finishes after stop was requested is discarded, so
		// the state visible after Stop is exactly the last grid published
		// before the request.
		select {
		case <-stop:
			return
		default:
		}
		s.published.Store(next)
		s.pushOutputs(next)

		remaining := time.Duration(s.period.Load()) - time.Since(began)
		if remaining <= 0 {
			select {
			case <-stop:
				return
			default:
			}
			continue
		}
		timer.Reset(remaining)
		select {
		case <-stop:
			if !timer.Stop() {
				<-timer.C
			}
			return
		case <-timer.C:
		}
	}
}

// computeStep latches bound communicator inputs into the working copy of the
// grid, then runs the propagation engine.
func (s *Simulator) computeStep(g *core.Grid) *core.Grid {
	if in := s.latchInputs(g); in != nil {
		g = in
	}
	next := engine.Step(g)
	return next
}

func (s *Simulator) mustBeStopped(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		panic("sim: " + op + " while running")
	}
}
