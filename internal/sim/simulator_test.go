package sim

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"wiregrid/internal/comm"
	"wiregrid/internal/core"
)

// blinkerGrid oscillates with period two: source, negative relay, then the
// signal that controls the relay. In every consistently published grid the
// signal level equals the relay's conduction state, because both derive from
// the same previous step.
func blinkerGrid() *core.Grid {
	g := core.NewGrid(3, 1)
	g.Place(0, 0, core.Source)
	g.Place(1, 0, core.NegativeRelay)
	s := core.NewCell(core.Signal)
	s.Level = true // matches the relay's starting closed state
	g.Set(2, 0, s)
	return g
}

func TestCompileAndSnapshot(t *testing.T) {
	g := blinkerGrid()
	s := New()
	s.Compile(g, false)

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Cells(), g.Cells()) {
		t.Fatal("snapshot does not match the compiled grid")
	}

	// Snapshots are deep copies; scribbling on one must not leak back.
	snap.Place(0, 0, core.Empty)
	if s.Snapshot().At(0, 0).Kind != core.Source {
		t.Fatal("snapshot aliased the published grid")
	}
}

func TestCompileWithReset(t *testing.T) {
	g := core.NewGrid(2, 1)
	c := core.NewCell(core.Signal)
	c.StartLevel = true
	c.Level = false
	g.Set(0, 0, c)
	g.Place(1, 0, core.ConductiveWire)

	s := New()
	s.Compile(g, true)
	if !s.Snapshot().At(0, 0).Level {
		t.Fatal("compile with reset did not restore starting levels")
	}
}

func TestStepOncePublishes(t *testing.T) {
	g := core.NewGrid(2, 1)
	g.Place(0, 0, core.Source)
	g.Place(1, 0, core.ConductiveWire)

	s := New()
	s.Compile(g, false)
	if s.Snapshot().At(1, 0).Level {
		t.Fatal("wire HIGH before any step ran")
	}
	s.StepOnce()
	if !s.Snapshot().At(1, 0).Level {
		t.Fatal("wire LOW after a step")
	}
}

func TestResetRoundTrip(t *testing.T) {
	g := blinkerGrid()
	s := New()
	s.Compile(g, false)
	s.StepOnce()
	s.StepOnce()

	work := blinkerGrid()
	// Dirty the caller's copy to prove Reset writes the result back.
	c := work.At(2, 0)
	c.Level = false
	work.Set(2, 0, c)

	s.Reset(work)
	for i, cell := range work.Cells() {
		if cell.Level != cell.StartLevel && cell.Kind != core.Source {
			t.Fatalf("cell %d level %v != starting level %v", i, cell.Level, cell.StartLevel)
		}
		if cell.Conductive != cell.StartConductive {
			t.Fatalf("cell %d conduction not restored", i)
		}
	}
	if !reflect.DeepEqual(work.Cells(), s.Snapshot().Cells()) {
		t.Fatal("caller grid and published grid disagree after reset")
	}
}

func TestRunningStateAndPreconditions(t *testing.T) {
	s := New()
	s.Compile(blinkerGrid(), false)
	if s.Running() {
		t.Fatal("fresh simulator reports running")
	}
	s.Start()
	if !s.Running() {
		t.Fatal("Start did not mark the loop running")
	}

	mustPanic := func(name string, f func()) {
		defer func() {
			if recover() == nil {
				t.Fatalf("%s while running did not panic", name)
			}
		}()
		f()
	}
	mustPanic("StepOnce", func() { s.StepOnce() })
	mustPanic("Compile", func() { s.Compile(blinkerGrid(), false) })
	mustPanic("Start", func() { s.Start() })

	s.Stop()
	if s.Running() {
		t.Fatal("Stop did not mark the loop stopped")
	}
	mustPanic("Stop", func() { s.Stop() })
}

func TestSetPeriod(t *testing.T) {
	s := New()
	s.SetPeriod(42 * time.Millisecond)
	if s.Period() != 42*time.Millisecond {
		t.Fatalf("period = %v", s.Period())
	}
	s.SetPeriod(-time.Second)
	if s.Period() != 0 {
		t.Fatal("negative period should clamp to zero")
	}
}

// Concurrent snapshots during a running, unconstrained loop must always see
// a complete grid from a single step: correct dimensions, source pinned
// HIGH, and the blinker's signal level in lockstep with the relay state.
func TestSnapshotConsistencyUnderLoad(t *testing.T) {
	s := New()
	s.Compile(blinkerGrid(), false)
	s.SetPeriod(0)
	s.Start()

	var wg sync.WaitGroup
	deadline := time.Now().Add(100 * time.Millisecond)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(deadline) {
				g := s.Snapshot()
				if g.W != 3 || g.H != 1 {
					t.Errorf("torn snapshot dimensions %dx%d", g.W, g.H)
					return
				}
				if !g.At(0, 0).Level {
					t.Error("source LOW in a snapshot")
					return
				}
				if g.At(2, 0).Level != g.At(1, 0).Conductive {
					t.Error("snapshot mixes two steps' results")
					return
				}
			}
		}()
	}
	wg.Wait()
	s.Stop()
}

// After Stop returns, no further step may be published.
func TestStopQuiescesPublishing(t *testing.T) {
	s := New()
	s.Compile(blinkerGrid(), false)
	s.SetPeriod(0)
	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	before := s.Snapshot()
	time.Sleep(20 * time.Millisecond)
	after := s.Snapshot()
	if !reflect.DeepEqual(before.Cells(), after.Cells()) {
		t.Fatal("grid changed after Stop returned")
	}
}

func TestStopWakesSleepingLoop(t *testing.T) {
	s := New()
	s.Compile(blinkerGrid(), false)
	s.SetPeriod(time.Hour)
	s.Start()
	time.Sleep(5 * time.Millisecond) // let the loop reach its sleep

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a sleeping loop")
	}
}

func TestFileCommunicatorRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.bits")
	outPath := filepath.Join(dir, "out.bits")
	if err := os.WriteFile(inPath, []byte("101"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := core.NewGrid(3, 1)
	g.Place(0, 0, core.FileInComm)
	g.Place(1, 0, core.ConductiveWire)
	g.Place(2, 0, core.FileOutComm)

	src, err := comm.OpenFileSource(inPath)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	sink, err := comm.CreateFileSink(outPath)
	if err != nil {
		t.Fatal(err)
	}

	s := New()
	s.Compile(g, false)
	s.BindInput(0, 0, src)
	s.BindOutput(2, 0, sink)
	for i := 0; i < 3; i++ {
		s.StepOnce()
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "101" {
		t.Fatalf("output stream = %q, want %q", out, "101")
	}
}
