package models

import "time"

// Status is the lifecycle status of a visualization request as reported by
// the backend. Complete and Failed are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether no further transitions are expected.
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// GeneratedImage is one AI-generated result image.
type GeneratedImage struct {
	ID                int    `json:"id"`
	GeneratedImageURL string `json:"generated_image_url"`
	CreatedAt         string `json:"created_at,omitempty"`
}

// VisualizationRequest is the server-owned entity representing one image
// generation job. The client observes it through polling only.
type VisualizationRequest struct {
	ID                 int              `json:"id"`
	TenantID           string           `json:"tenant_id,omitempty"`
	Status             Status           `json:"status"`
	ProgressPercentage int              `json:"progress_percentage"`
	StatusMessage      string           `json:"status_message,omitempty"`
	OriginalImageURL   string           `json:"original_image_url,omitempty"`
	CleanImageURL      string           `json:"clean_image_url,omitempty"`
	Results            []GeneratedImage `json:"results,omitempty"`
	ErrorMessage       string           `json:"error_message,omitempty"`
	CreatedAt          string           `json:"created_at,omitempty"`
	UpdatedAt          string           `json:"updated_at,omitempty"`
}

// ResultImageURL returns the first generated image URL, or empty if none.
func (r *VisualizationRequest) ResultImageURL() string {
	if len(r.Results) == 0 {
		return ""
	}
	return r.Results[0].GeneratedImageURL
}

// ListOptions are the filter and pagination parameters for listing requests.
type ListOptions struct {
	Page       int
	PageSize   int
	Status     string
	ScreenType string
	SortBy     string
	SortOrder  string
}

// ListResult is a paginated page of visualization requests.
type ListResult struct {
	Count    int                    `json:"count"`
	Next     string                 `json:"next,omitempty"`
	Previous string                 `json:"previous,omitempty"`
	Results  []VisualizationRequest `json:"results"`
}

// Stats are aggregate counts of a user's visualization requests by status.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// ComputeStats derives counts from a request list. Used as a local fallback
// when the stats endpoint is unavailable.
func ComputeStats(requests []VisualizationRequest) Stats {
	stats := Stats{Total: len(requests)}
	for _, req := range requests {
		switch req.Status {
		case StatusPending:
			stats.Pending++
		case StatusProcessing:
			stats.Processing++
		case StatusComplete:
			stats.Completed++
		case StatusFailed:
			stats.Failed++
		}
	}
	return stats
}

// AuditReport is the security audit generated for a completed visualization.
type AuditReport struct {
	ID                 int       `json:"id"`
	VisualizationID    int       `json:"visualization_id"`
	VulnerabilityCount int       `json:"vulnerability_count"`
	ReportURL          string    `json:"report_url,omitempty"`
	GeneratedAt        time.Time `json:"generated_at,omitempty"`
}
