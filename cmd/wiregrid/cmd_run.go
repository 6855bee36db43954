package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"wiregrid/internal/circuitfile"
	"wiregrid/internal/core"
)

func newRunCmd(logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a circuit headless and print the final state",
		RunE: func(cmd *cobra.Command, args []string) error {
			circ, err := loadCircuit(cmd)
			if err != nil {
				return err
			}
			s, closers, err := buildSimulator(circ, logger)
			if err != nil {
				return err
			}
			defer func() {
				for _, c := range closers {
					c.Close()
				}
			}()

			steps, _ := cmd.Flags().GetInt("steps")
			duration, _ := cmd.Flags().GetDuration("duration")
			s.SetPeriod(periodFlag(cmd))

			logger.Info("running", "circuit", circ.Name,
				"w", circ.Grid.W, "h", circ.Grid.H, "steps", steps)

			if duration > 0 {
				s.Start()
				time.Sleep(duration)
				s.Stop()
			} else {
				for i := 0; i < steps; i++ {
					s.StepOnce()
				}
			}

			printGrid(cmd.OutOrStdout(), s.Snapshot())
			return nil
		},
	}
	addCircuitFlags(cmd)
	cmd.Flags().Int("steps", 32, "number of steps to run synchronously")
	cmd.Flags().Duration("duration", 0, "run on the background loop for this long instead of --steps")
	return cmd
}

// printGrid writes the grid as legend runes alongside a 0/1 column of the
// same rows showing the logic levels.
func printGrid(w io.Writer, g *core.Grid) {
	if g.Empty() {
		fmt.Fprintln(w, "(empty grid)")
		return
	}
	for y := 0; y < g.H; y++ {
		kinds := make([]rune, g.W)
		levels := make([]rune, g.W)
		for x := 0; x < g.W; x++ {
			c := g.At(x, y)
			kinds[x] = circuitfile.Rune(c.Kind)
			levels[x] = '0'
			if c.Level {
				levels[x] = '1'
			}
		}
		fmt.Fprintf(w, "%s   %s\n", string(kinds), string(levels))
	}
}
