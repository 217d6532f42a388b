package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Astreocclu/pool-visualizer/pkg/models"
)

// CreateVisualization posts a prebuilt multipart submission. The idempotency
// key makes the create POST safe for the transport retry policy.
func (c *Client) CreateVisualization(ctx context.Context, body []byte, contentType, idempotencyKey string) (*models.VisualizationRequest, error) {
	var req models.VisualizationRequest
	err := c.postMultipart(ctx, "/visualizations/", body, contentType, idempotencyKey, &req, "Failed to create visualization request")
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListVisualizations fetches a filtered, paginated request list.
func (c *Client) ListVisualizations(ctx context.Context, opts models.ListOptions) (*models.ListResult, error) {
	query := url.Values{}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.Status != "" && opts.Status != "all" {
		query.Set("status", opts.Status)
	}
	if opts.ScreenType != "" && opts.ScreenType != "all" {
		query.Set("screen_type", opts.ScreenType)
	}
	if opts.SortBy != "" {
		query.Set("sort_by", opts.SortBy)
	}
	if opts.SortOrder != "" {
		query.Set("sort_order", opts.SortOrder)
	}

	var result models.ListResult
	if err := c.getJSON(ctx, "/visualizations/", query, &result, "Failed to fetch visualization requests"); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetVisualization fetches one request by id.
func (c *Client) GetVisualization(ctx context.Context, id int) (*models.VisualizationRequest, error) {
	var req models.VisualizationRequest
	path := fmt.Sprintf("/visualizations/%d/", id)
	if err := c.getJSON(ctx, path, nil, &req, "Failed to fetch visualization request"); err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateVisualization replaces a request's mutable fields.
func (c *Client) UpdateVisualization(ctx context.Context, id int, update any) (*models.VisualizationRequest, error) {
	var req models.VisualizationRequest
	path := fmt.Sprintf("/visualizations/%d/", id)
	if err := c.putJSON(ctx, path, update, &req, "Failed to update visualization request"); err != nil {
		return nil, err
	}
	return &req, nil
}

// DeleteVisualization removes a request.
func (c *Client) DeleteVisualization(ctx context.Context, id int) error {
	path := fmt.Sprintf("/visualizations/%d/", id)
	return c.delete(ctx, path, "Failed to delete visualization request")
}

// RetryVisualization requeues a failed request.
func (c *Client) RetryVisualization(ctx context.Context, id int) (*models.VisualizationRequest, error) {
	var req models.VisualizationRequest
	path := fmt.Sprintf("/visualizations/%d/retry/", id)
	if err := c.postJSON(ctx, path, nil, &req, "Failed to retry visualization request"); err != nil {
		return nil, err
	}
	return &req, nil
}

// RegenerateVisualization restarts generation for a request.
func (c *Client) RegenerateVisualization(ctx context.Context, id int) (*models.VisualizationRequest, error) {
	var req models.VisualizationRequest
	path := fmt.Sprintf("/visualizations/%d/regenerate/", id)
	if err := c.postJSON(ctx, path, nil, &req, "Failed to regenerate visualization request"); err != nil {
		return nil, err
	}
	return &req, nil
}

// VisualizationStats fetches aggregate counts for the current user.
func (c *Client) VisualizationStats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.getJSON(ctx, "/visualizations/stats/", nil, &stats, "Failed to fetch user statistics"); err != nil {
		return nil, err
	}
	return &stats, nil
}

// QuotePDFURL builds the download URL for a visualization's quote document.
func (c *Client) QuotePDFURL(id int) string {
	return fmt.Sprintf("%s/visualization/%d/pdf/", c.baseURL, id)
}
