package cli

import (
	"github.com/spf13/cobra"

	"github.com/Astreocclu/pool-visualizer/pkg/models"
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Deposit payment operations",
}

var paymentsConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the publishable payment configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := application.api.PaymentsConfig(cmd.Context())
		if err != nil {
			return err
		}
		return application.print(cmd, cfg)
	},
}

var paymentsStatusCmd = &cobra.Command{
	Use:   "status <visualization-id>",
	Short: "Show the deposit status for a visualization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		status, err := application.api.DepositStatus(cmd.Context(), id)
		if err != nil {
			return err
		}
		return application.print(cmd, status)
	},
}

var flagCheckoutLead int

var paymentsCheckoutCmd = &cobra.Command{
	Use:   "checkout <visualization-id>",
	Short: "Create a deposit checkout session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		session, err := application.api.CreateDepositCheckout(cmd.Context(), models.CheckoutRequest{
			LeadID:          flagCheckoutLead,
			VisualizationID: id,
		})
		if err != nil {
			application.reporter.ReportError("payments checkout", err)
			return err
		}

		cmd.Printf("Checkout session %s created\n", session.SessionID)
		cmd.Printf("Complete the deposit at: %s\n", session.CheckoutURL)
		return nil
	},
}

func init() {
	paymentsCheckoutCmd.Flags().IntVar(&flagCheckoutLead, "lead", 0, "lead id the deposit belongs to")
	_ = paymentsCheckoutCmd.MarkFlagRequired("lead")

	paymentsCmd.AddCommand(paymentsConfigCmd, paymentsStatusCmd, paymentsCheckoutCmd)
	rootCmd.AddCommand(paymentsCmd)
}
