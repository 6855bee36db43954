package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"wiregrid/internal/app"
)

func newUICmd(logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive viewer (requires the 'ebiten' build tag)",
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

			scale, _ := cmd.Flags().GetInt("scale")
			game := app.New(s, circ.Grid, scale)
			title := "wiregrid"
			if circ.Name != "" {
				title += ": " + circ.Name
			}
			return app.Run(game, title, periodFlag(cmd))
		},
	}
	addCircuitFlags(cmd)
	cmd.Flags().Int("scale", 16, "pixel scale multiplier")
	return cmd
}
