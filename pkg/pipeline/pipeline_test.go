package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
	"github.com/Astreocclu/pool-visualizer/pkg/models"
	"github.com/Astreocclu/pool-visualizer/pkg/tenants"
	"github.com/Astreocclu/pool-visualizer/pkg/wizard"
)

// captureCreator records the multipart body it receives.
type captureCreator struct {
	body        []byte
	contentType string
	key         string
	err         error
}

func (c *captureCreator) CreateVisualization(ctx context.Context, body []byte, contentType, idempotencyKey string) (*models.VisualizationRequest, error) {
	c.body = body
	c.contentType = contentType
	c.key = idempotencyKey
	if c.err != nil {
		return nil, c.err
	}
	return &models.VisualizationRequest{ID: 42, Status: models.StatusPending}, nil
}

func testUpload() wizard.Upload {
	return wizard.Upload{
		Filename:    "backyard.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg-bytes"),
	}
}

func parseForm(t *testing.T, body []byte, contentType string) (map[string]string, *multipart.Part, []byte) {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	fields := map[string]string{}
	reader := multipart.NewReader(strings.NewReader(string(body)), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		if part.FileName() != "" {
			data, err := io.ReadAll(part)
			require.NoError(t, err)
			return fields, part, data
		}

		value, err := io.ReadAll(part)
		require.NoError(t, err)
		fields[part.FormName()] = string(value)
	}
	return fields, nil, nil
}

func TestSubmitBuildsMultipartForm(t *testing.T) {
	creator := &captureCreator{}
	registry := tenants.NewRegistry(logger.NewNop())
	submitter := NewSubmitter(creator, registry, logger.NewNop())

	selections := tenants.Defaults("pools")
	selections["finish"] = models.String("glass_tile")
	selections["water_features"] = models.List("rock_waterfall")
	selections["stale_key"] = models.String("ignored")

	req, err := submitter.Submit(context.Background(), "pools", selections, testUpload())
	require.NoError(t, err)
	assert.Equal(t, 42, req.ID)
	assert.NotEmpty(t, creator.key)

	fields, imagePart, imageData := parseForm(t, creator.body, creator.contentType)

	assert.Equal(t, "pools", fields["tenant_id"])
	require.NotNil(t, imagePart)
	assert.Equal(t, "original_image", imagePart.FormName())
	assert.Equal(t, "backyard.jpg", imagePart.FileName())
	assert.Equal(t, "image/jpeg", imagePart.Header.Get("Content-Type"))
	assert.Equal(t, []byte("jpeg-bytes"), imageData)

	var scope models.Selections
	require.NoError(t, json.Unmarshal([]byte(fields["scope"]), &scope))

	assert.Equal(t, "glass_tile", scope["finish"].Str)
	assert.Equal(t, []string{"rock_waterfall"}, scope["water_features"].List)

	// Only declared keys cross the wire.
	_, ok := scope["stale_key"]
	assert.False(t, ok)
	assert.Len(t, scope, len(registry.Config("pools").SelectionKeys))
}

func TestSubmitFillsMissingKeysFromDefaults(t *testing.T) {
	creator := &captureCreator{}
	registry := tenants.NewRegistry(logger.NewNop())
	submitter := NewSubmitter(creator, registry, logger.NewNop())

	// Submit with no accumulated selections at all.
	_, err := submitter.Submit(context.Background(), "roofs", models.Selections{}, testUpload())
	require.NoError(t, err)

	fields, _, _ := parseForm(t, creator.body, creator.contentType)
	assert.Equal(t, "roofs", fields["tenant_id"])

	var scope models.Selections
	require.NoError(t, json.Unmarshal([]byte(fields["scope"]), &scope))
	assert.Equal(t, "asphalt_architectural", scope["roof_material"].Str)
	assert.Equal(t, "charcoal", scope["roof_color"].Str)
}

func TestSubmitUnknownTenantFallsBack(t *testing.T) {
	creator := &captureCreator{}
	registry := tenants.NewRegistry(logger.NewNop())
	submitter := NewSubmitter(creator, registry, logger.NewNop())

	_, err := submitter.Submit(context.Background(), "bathrooms", models.Selections{}, testUpload())
	require.NoError(t, err)

	fields, _, _ := parseForm(t, creator.body, creator.contentType)
	assert.Equal(t, tenants.DefaultTenantID, fields["tenant_id"])
}

func TestSubmitRejectsInvalidUpload(t *testing.T) {
	creator := &captureCreator{}
	registry := tenants.NewRegistry(logger.NewNop())
	submitter := NewSubmitter(creator, registry, logger.NewNop())

	upload := wizard.Upload{Filename: "quote.pdf", Data: []byte("%PDF")}
	_, err := submitter.Submit(context.Background(), "pools", models.Selections{}, upload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid image file")
	assert.Nil(t, creator.body)
}

func TestSubmitPropagatesCreateError(t *testing.T) {
	creator := &captureCreator{err: fmt.Errorf("backend down")}
	registry := tenants.NewRegistry(logger.NewNop())
	submitter := NewSubmitter(creator, registry, logger.NewNop())

	_, err := submitter.Submit(context.Background(), "pools", models.Selections{}, testUpload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
}
