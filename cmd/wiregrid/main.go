package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	_ "wiregrid/internal/circuits"
)

var version = "0.1.0-dev"

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	rootCmd := &cobra.Command{
		Use:   "wiregrid",
		Short: "Interactive digital-logic grid simulator",
		Long: `wiregrid simulates a 2D grid of circuit elements: wires, insulated
crossings, signals, sources, relays, logic gates and I/O communicators.

Logic levels are recomputed by flood-filling from every source each step,
on a background loop whose latest state can always be snapshotted.`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			logger.SetLevel(log.DebugLevel)
		}
	}

	rootCmd.AddCommand(
		newRunCmd(logger),
		newServeCmd(logger),
		newUICmd(logger),
		newCircuitsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}
