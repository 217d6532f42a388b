// Package pipeline assembles and submits the multipart visualization
// request: the tenant-scoped selections JSON, the tenant id, and the
// uploaded photo.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
	"github.com/Astreocclu/pool-visualizer/pkg/metrics"
	"github.com/Astreocclu/pool-visualizer/pkg/models"
	"github.com/Astreocclu/pool-visualizer/pkg/tenants"
	"github.com/Astreocclu/pool-visualizer/pkg/tracing"
	"github.com/Astreocclu/pool-visualizer/pkg/wizard"
)

// submission is the pre-wire payload shape, validated before assembly.
type submission struct {
	TenantID string        `validate:"required"`
	Scope    []byte        `validate:"required"`
	Upload   wizard.Upload `validate:"required"`
}

// Creator is the API surface the submitter needs.
type Creator interface {
	CreateVisualization(ctx context.Context, body []byte, contentType, idempotencyKey string) (*models.VisualizationRequest, error)
}

// Submitter builds and posts visualization submissions.
type Submitter struct {
	api      Creator
	registry *tenants.Registry
	validate *validator.Validate
	logger   logger.Logger
}

// NewSubmitter creates a submission pipeline.
func NewSubmitter(apiClient Creator, registry *tenants.Registry, log logger.Logger) *Submitter {
	return &Submitter{
		api:      apiClient,
		registry: registry,
		validate: validator.New(),
		logger:   log,
	}
}

// Submit posts the accumulated selections and photo for the tenant. Only
// the tenant's declared selection keys are submitted; unknown keys are
// dropped and missing keys are filled from the tenant defaults. The create
// POST carries an idempotency key so a transport retry cannot produce a
// duplicate job.
func (s *Submitter) Submit(ctx context.Context, tenantID string, selections models.Selections, upload wizard.Upload) (*models.VisualizationRequest, error) {
	ctx, span := tracing.StartSpan(ctx, "pipeline submit")
	defer span.End()

	descriptor := s.registry.Config(tenantID)

	scope, err := buildScope(descriptor, selections)
	if err != nil {
		return nil, err
	}

	sub := submission{TenantID: descriptor.ID, Scope: scope, Upload: upload}
	if err := s.validate.Struct(sub); err != nil {
		return nil, fmt.Errorf("invalid submission: %w", err)
	}
	if err := wizard.ValidateUpload(upload, wizard.DefaultMaxUploadSize, wizard.DefaultAcceptedTypes()); err != nil {
		return nil, err
	}

	body, contentType, err := buildForm(descriptor.ID, scope, upload)
	if err != nil {
		return nil, err
	}

	idempotencyKey := uuid.NewString()
	s.logger.WithContext(ctx).WithFields(map[string]any{
		"tenant_id":       descriptor.ID,
		"idempotency_key": idempotencyKey,
	}).Infof("Submitting visualization request")

	req, err := s.api.CreateVisualization(ctx, body, contentType, idempotencyKey)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(descriptor.ID, "error").Inc()
		return nil, err
	}

	metrics.SubmissionsTotal.WithLabelValues(descriptor.ID, "ok").Inc()
	s.logger.WithContext(ctx).Infof("Visualization request %d created", req.ID)

	return req, nil
}

// buildScope serializes only the tenant's declared keys, filling absent
// keys from the tenant defaults so the payload is always complete.
func buildScope(descriptor *tenants.Descriptor, selections models.Selections) ([]byte, error) {
	defaults := tenants.Defaults(descriptor.ID)

	scope := make(models.Selections, len(descriptor.SelectionKeys))
	for _, key := range descriptor.SelectionKeys {
		value, ok := selections[key]
		if !ok {
			value = defaults[key]
		}
		scope[key] = value
	}

	data, err := json.Marshal(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scope: %w", err)
	}
	return data, nil
}

func buildForm(tenantID string, scope []byte, upload wizard.Upload) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("scope", string(scope)); err != nil {
		return nil, "", fmt.Errorf("failed to write scope field: %w", err)
	}
	if err := writer.WriteField("tenant_id", tenantID); err != nil {
		return nil, "", fmt.Errorf("failed to write tenant_id field: %w", err)
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = wizard.DetectContentType(upload.Filename)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="original_image"; filename="%s"`, upload.Filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write image data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}
