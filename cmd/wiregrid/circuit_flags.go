package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"wiregrid/internal/circuitfile"
	"wiregrid/internal/comm"
	"wiregrid/internal/core"
	"wiregrid/internal/sim"
)

// addCircuitFlags attaches the circuit-selection and timing flags shared by
// the run, serve and ui commands.
func addCircuitFlags(cmd *cobra.Command) {
	cmd.Flags().String("circuit", "wire-run", "built-in circuit to load")
	cmd.Flags().String("file", "", "circuit file to load (overrides --circuit)")
	cmd.Flags().Float64("period", 100, "step period in milliseconds (0 = as fast as possible)")
}

// loadCircuit resolves the flags into a circuit: a file when --file is set,
// otherwise a registered built-in.
func loadCircuit(cmd *cobra.Command) (*circuitfile.Circuit, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return circuitfile.Load(path)
	}
	name, _ := cmd.Flags().GetString("circuit")
	factory, ok := core.Circuits()[name]
	if !ok {
		return nil, errors.Errorf("unknown circuit %q (see the circuits command)", name)
	}
	return &circuitfile.Circuit{Name: name, Grid: factory()}, nil
}

func periodFlag(cmd *cobra.Command) time.Duration {
	ms, _ := cmd.Flags().GetFloat64("period")
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// buildSimulator compiles the circuit and wires up its declared communicator
// endpoints. The returned closers flush file communicators on shutdown.
func buildSimulator(circ *circuitfile.Circuit, logger *log.Logger) (*sim.Simulator, []io.Closer, error) {
	s := sim.New()
	s.Compile(circ.Grid, false)

	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			c.Close()
		}
	}
	for _, spec := range circ.Comms {
		switch spec.Kind {
		case core.FileInComm:
			src, err := comm.OpenFileSource(spec.Path)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			closers = append(closers, src)
			s.BindInput(spec.X, spec.Y, src)
		case core.FileOutComm:
			sink, err := comm.CreateFileSink(spec.Path)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			closers = append(closers, sink)
			s.BindOutput(spec.X, spec.Y, sink)
		case core.ScreenComm:
			label := spec.Label
			if label == "" {
				label = fmt.Sprintf("(%d,%d)", spec.X, spec.Y)
			}
			s.BindOutput(spec.X, spec.Y, comm.NewScreen(label, logger))
		}
	}
	return s, closers, nil
}
