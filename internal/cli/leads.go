package cli

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/Astreocclu/pool-visualizer/pkg/models"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Submit quote requests",
}

var lead models.Lead

var leadsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a quote request for a visualization",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validator.New().Struct(lead); err != nil {
			return err
		}

		resp, err := application.api.CreateLead(cmd.Context(), lead)
		if err != nil {
			application.reporter.ReportError("leads create", err)
			return err
		}

		cmd.Printf("Quote request %d submitted\n", resp.ID)
		pdfURL := resp.PDFURL
		if pdfURL == "" {
			pdfURL = application.api.QuotePDFURL(lead.VisualizationID)
		}
		cmd.Printf("Quote PDF: %s\n", pdfURL)
		return nil
	},
}

func init() {
	flags := leadsCreateCmd.Flags()
	flags.IntVar(&lead.VisualizationID, "visualization", 0, "visualization request id")
	flags.StringVar(&lead.Name, "name", "", "full name")
	flags.StringVar(&lead.Email, "email", "", "email address")
	flags.StringVar(&lead.Phone, "phone", "", "phone number")
	flags.StringVar(&lead.AddressStreet, "street", "", "street address")
	flags.StringVar(&lead.AddressCity, "city", "", "city")
	flags.StringVar(&lead.AddressState, "state", "", "two-letter state code")
	flags.StringVar(&lead.AddressZip, "zip", "", "zip code")

	for _, name := range []string{"visualization", "name", "email", "phone", "street", "city", "state", "zip"} {
		_ = leadsCreateCmd.MarkFlagRequired(name)
	}

	leadsCmd.AddCommand(leadsCreateCmd)
	rootCmd.AddCommand(leadsCmd)
}
