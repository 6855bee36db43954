package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"wiregrid/internal/core"
)

func newCircuitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "circuits",
		Short: "List the built-in circuits",
		Run: func(cmd *cobra.Command, args []string) {
			var names []string
			for name := range core.Circuits() {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
