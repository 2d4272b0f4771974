package main

import (
	"github.com/spf13/cobra"
)

// addCmd tracks a new service and fetches its sources.
var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a service and fetch its sources",
	Long: `Adds a service to the managed set.

The sparse checkout is extended to src/<name>/, the latest upstream sources
are fetched, and a compose service definition is generated for the service.

Example:
  servstack add github`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStack(cmd)
		if err != nil {
			return err
		}
		return s.Add(cmd.Context(), args[0])
	},
}
