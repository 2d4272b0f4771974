package main

import (
	"github.com/spf13/cobra"
)

// stopCmd stops service containers.
var stopCmd = &cobra.Command{
	Use:   "stop [name]",
	Short: "Stop one service container, or all added services",
	Long: `Stops service containers without removing them.

With a name, stops that service; a compose definition is enough, the service
does not need to still be in the added set. Without a name, stops every added
service that has a compose definition.`,
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
		return s.Stop(cmd.Context(), name)
	},
}
