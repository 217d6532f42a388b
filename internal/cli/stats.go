package cli

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show visualization request counts by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := application.api.VisualizationStats(cmd.Context())
		if err != nil {
			// The cached request list still gives a useful local answer.
			local := application.store.Stats()
			application.logger.WithError(err).Warnf("Stats endpoint unavailable, computing from cached requests")
			return application.print(cmd, local)
		}
		return application.print(cmd, stats)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
