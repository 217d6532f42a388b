package cli

import (
	"github.com/spf13/cobra"

	"github.com/Astreocclu/pool-visualizer/pkg/api"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Security audit reports for completed visualizations",
}

var auditGenerateCmd = &cobra.Command{
	Use:   "generate <visualization-id>",
	Short: "Start audit generation for a visualization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		report, err := application.api.GenerateAudit(cmd.Context(), id)
		if err != nil {
			return err
		}
		return application.print(cmd, report)
	},
}

var auditReportCmd = &cobra.Command{
	Use:   "report <visualization-id>",
	Short: "Fetch the audit report for a visualization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		report, err := application.api.AuditReport(cmd.Context(), id)
		if api.IsNotFound(err) {
			cmd.Println("Report is not ready yet. Try again in a moment.")
			return nil
		}
		if err != nil {
			return err
		}
		return application.print(cmd, report)
	},
}

func init() {
	auditCmd.AddCommand(auditGenerateCmd, auditReportCmd)
	rootCmd.AddCommand(auditCmd)
}
