package api

import (
	"context"
	"fmt"

	"github.com/Astreocclu/pool-visualizer/pkg/models"
)

// ScreenTypes fetches the screen type catalog, falling back to the built-in
// list when the endpoint is unreachable. The catalog is marketing content,
// not correctness-critical.
func (c *Client) ScreenTypes(ctx context.Context) ([]models.ScreenType, error) {
	var list models.ScreenTypeList
	if err := c.getJSON(ctx, "/screentypes/", nil, &list, "Failed to fetch screen types"); err != nil {
		c.logger.WithContext(ctx).WithError(err).Warnf("Screen type fetch failed, using built-in catalog")
		return models.DefaultScreenTypes(), nil
	}
	if len(list.Results) == 0 {
		return models.DefaultScreenTypes(), nil
	}
	return list.Results, nil
}

// TenantConfig fetches the backend's tenant configuration document as raw
// JSON. The local registry remains authoritative for wizard flow.
func (c *Client) TenantConfig(ctx context.Context) (map[string]any, error) {
	var cfg map[string]any
	if err := c.getJSON(ctx, "/config/", nil, &cfg, "Failed to fetch tenant config"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Health checks backend reachability.
func (c *Client) Health(ctx context.Context) error {
	return c.getJSON(ctx, "/health/", nil, nil, "Health check failed")
}

// GenerateAudit starts audit generation for a completed visualization.
func (c *Client) GenerateAudit(ctx context.Context, visualizationID int) (*models.AuditReport, error) {
	var report models.AuditReport
	path := fmt.Sprintf("/audit/%d/generate/", visualizationID)
	if err := c.postJSON(ctx, path, nil, &report, "Failed to generate audit"); err != nil {
		return nil, err
	}
	return &report, nil
}

// AuditReport fetches the audit report for a visualization. A 404 means the
// report is not ready yet.
func (c *Client) AuditReport(ctx context.Context, visualizationID int) (*models.AuditReport, error) {
	var report models.AuditReport
	path := fmt.Sprintf("/audit/%d/retrieve_report/", visualizationID)
	if err := c.getJSON(ctx, path, nil, &report, "Failed to fetch audit report"); err != nil {
		return nil, err
	}
	return &report, nil
}

// CreateLead submits a quote-request lead.
func (c *Client) CreateLead(ctx context.Context, lead models.Lead) (*models.LeadResponse, error) {
	var resp models.LeadResponse
	if err := c.postJSON(ctx, "/leads/", lead, &resp, "Failed to submit lead"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PaymentsConfig fetches the publishable payment configuration.
func (c *Client) PaymentsConfig(ctx context.Context) (*models.PaymentsConfig, error) {
	var cfg models.PaymentsConfig
	if err := c.getJSON(ctx, "/payments/config/", nil, &cfg, "Failed to fetch config"); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DepositStatus fetches the deposit state for a visualization.
func (c *Client) DepositStatus(ctx context.Context, visualizationID int) (*models.DepositStatus, error) {
	var status models.DepositStatus
	path := fmt.Sprintf("/payments/deposit/%d/status/", visualizationID)
	if err := c.getJSON(ctx, path, nil, &status, "Failed to fetch deposit status"); err != nil {
		return nil, err
	}
	return &status, nil
}

// CreateDepositCheckout creates a checkout session for a deposit.
func (c *Client) CreateDepositCheckout(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	if err := c.postJSON(ctx, "/payments/deposit/create-checkout/", req, &session, "Failed to create checkout"); err != nil {
		return nil, err
	}
	return &session, nil
}
