package models

// PaymentsConfig is the publishable payment configuration from
// GET /payments/config/.
type PaymentsConfig struct {
	PublishableKey string `json:"publishable_key"`
	DepositAmount  int    `json:"deposit_amount,omitempty"`
	Currency       string `json:"currency,omitempty"`
}

// DepositStatus reports whether a deposit has been paid for a visualization.
type DepositStatus struct {
	VisualizationID int    `json:"visualization_id"`
	Paid            bool   `json:"paid"`
	Status          string `json:"status,omitempty"`
	AmountCents     int    `json:"amount_cents,omitempty"`
}

// CheckoutRequest is the payload for POST /payments/deposit/create-checkout/.
type CheckoutRequest struct {
	LeadID          int `json:"lead_id" validate:"required"`
	VisualizationID int `json:"visualization_id" validate:"required"`
}

// CheckoutSession is the created checkout redirect.
type CheckoutSession struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}
