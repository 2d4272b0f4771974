package main

import (
	"github.com/spf13/cobra"
)

// removeCmd untracks a service.
var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a service from the managed set",
	Long: `Removes a service from the managed set.

The sparse checkout shrinks to the remaining services and the service's
compose definition is deleted. Running containers are not stopped; use
'servstack stop <name>' first if the service is running.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStack(cmd)
		if err != nil {
			return err
		}
		return s.Remove(cmd.Context(), args[0])
	},
}
