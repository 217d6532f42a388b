package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Astreocclu/pool-visualizer/pkg/output"
)

var tenantsCmd = &cobra.Command{
	Use:   "tenants",
	Short: "List the registered tenant verticals",
	RunE: func(cmd *cobra.Command, args []string) error {
		descriptors := application.registry.All()

		if flagOutput != "table" {
			return application.print(cmd, descriptors)
		}

		table := output.NewTable("ID", "NAME", "STEPS", "DESCRIPTION")
		for _, d := range descriptors {
			table.AddRow(d.ID, d.Name, strconv.Itoa(len(d.Steps)), d.Description)
		}
		return application.print(cmd, table)
	},
}

var tenantsConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Fetch the backend tenant configuration document",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := application.api.TenantConfig(cmd.Context())
		if err != nil {
			return err
		}
		return application.print(cmd, cfg)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the tenant's saved selections to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		application.store.Reset()
		cmd.Printf("Selections for tenant %q reset to defaults\n", application.store.TenantID())
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(Version)
	},
}

func init() {
	tenantsCmd.AddCommand(tenantsConfigCmd)
	rootCmd.AddCommand(tenantsCmd, resetCmd, versionCmd)
}
