package cli

import (
	"github.com/spf13/cobra"

	"github.com/Astreocclu/pool-visualizer/pkg/output"
)

var screenTypesCmd = &cobra.Command{
	Use:   "screentypes",
	Short: "List the screen type catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		types, err := application.api.ScreenTypes(cmd.Context())
		if err != nil {
			return err
		}

		application.store.CacheScreenTypes(types)

		if flagOutput != "table" {
			return application.print(cmd, types)
		}

		table := output.NewTable("ID", "NAME", "DESCRIPTION")
		for _, st := range types {
			table.AddRow(st.ID, st.Name, st.Description)
		}
		return application.print(cmd, table)
	},
}

func init() {
	rootCmd.AddCommand(screenTypesCmd)
}
