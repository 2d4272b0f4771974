package main

import (
	"github.com/spf13/cobra"
)

// updateCmd fetches the latest sources for all added services.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch the latest sources for all added services",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStack(cmd)
		if err != nil {
			return err
		}
		return s.Update(cmd.Context())
	},
}
