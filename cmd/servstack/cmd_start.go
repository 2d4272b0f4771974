package main

import (
	"github.com/spf13/cobra"
)

// startCmd brings up service containers.
var startCmd = &cobra.Command{
	Use:   "start [name]",
	Short: "Start one service container, or all added services",
	Long: `Builds and starts service containers in detached mode.

With a name, starts that service; it must be added and have a compose
definition. Without a name, starts every added service that has a compose
definition.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStack(cmd)
		if err != nil {
			return err
		}
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return s.Start(cmd.Context(), name)
	},
}
