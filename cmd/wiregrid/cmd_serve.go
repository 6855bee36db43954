package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"wiregrid/internal/server"
)

func newServeCmd(logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live view of the simulation over WebSocket",
		Long: `serve compiles a circuit, starts the simulation loop and exposes it on
/ws: JSON frames of the latest snapshot go out at --fps, and viewers can
send start/stop/step/reset/set_period control messages back.`,
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

			s.SetPeriod(periodFlag(cmd))
			s.Start()
			defer func() {
				if s.Running() {
					s.Stop()
				}
			}()

			addr, _ := cmd.Flags().GetString("addr")
			fps, _ := cmd.Flags().GetInt("fps")
			return server.New(s, circ.Grid, addr, fps, logger).Run()
		},
	}
	addCircuitFlags(cmd)
	cmd.Flags().String("addr", ":8089", "listen address")
	cmd.Flags().Int("fps", 30, "snapshot frames per second pushed to viewers")
	return cmd
}
