package cli

import (
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.api.Health(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("Backend is reachable")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
