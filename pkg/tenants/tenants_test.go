package tenants

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
)

func TestRegistryKnownTenants(t *testing.T) {
	registry := NewRegistry(logger.NewNop())

	for _, id := range []string{"pools", "windows", "roofs"} {
		descriptor := registry.Config(id)
		require.NotNil(t, descriptor, id)
		assert.Equal(t, id, descriptor.ID)
		assert.NotEmpty(t, descriptor.Steps)
		assert.NotEmpty(t, descriptor.SelectionKeys)

		// Every tenant flow ends in upload then review.
		n := len(descriptor.Steps)
		require.GreaterOrEqual(t, n, 2)
		assert.Equal(t, StepUpload, descriptor.Steps[n-2].Kind)
		assert.Equal(t, StepReview, descriptor.Steps[n-1].Kind)
	}
}

func TestRegistryUnknownTenantFallsBack(t *testing.T) {
	registry := NewRegistry(logger.NewNop())

	descriptor := registry.Config("bathrooms")
	require.NotNil(t, descriptor)
	assert.Equal(t, DefaultTenantID, descriptor.ID)

	assert.False(t, registry.IsValid("bathrooms"))
	assert.True(t, registry.IsValid("windows"))
}

func TestDefaultsCoverSelectionKeys(t *testing.T) {
	registry := NewRegistry(logger.NewNop())

	for _, id := range []string{"pools", "windows", "roofs"} {
		descriptor := registry.Config(id)
		defaults := Defaults(id)

		for _, key := range descriptor.SelectionKeys {
			_, ok := defaults[key]
			assert.True(t, ok, "tenant %s missing default for %s", id, key)
		}
	}
}

func TestDefaultsAreIndependentCopies(t *testing.T) {
	first := Defaults("pools")
	first["size"] = first["finish"]

	second := Defaults("pools")
	assert.Equal(t, "classic", second["size"].Str)
}

func TestRegistryAllSorted(t *testing.T) {
	registry := NewRegistry(logger.NewNop())

	all := registry.All()
	require.Len(t, all, 3)
	assert.Equal(t, "pools", all[0].ID)
	assert.Equal(t, "roofs", all[1].ID)
	assert.Equal(t, "windows", all[2].ID)
}

func TestLoadOverlayAddsTenant(t *testing.T) {
	overlay := `
tenants:
  - id: garages
    name: Garage Doors
    steps:
      - kind: upload
        label: Upload a photo
      - kind: review
        label: Review
    selection_keys:
      - door_style
`
	path := filepath.Join(t.TempDir(), "tenants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o600))

	registry := NewRegistry(logger.NewNop())
	require.NoError(t, registry.LoadOverlay(path))

	assert.True(t, registry.IsValid("garages"))
	descriptor := registry.Config("garages")
	assert.Equal(t, "Garage Doors", descriptor.Name)
	require.Len(t, descriptor.Steps, 2)
	assert.Equal(t, StepUpload, descriptor.Steps[0].Kind)
}

func TestLoadOverlayRejectsInvalid(t *testing.T) {
	overlay := `
tenants:
  - name: Missing ID
    steps:
      - kind: review
        label: Review
`
	path := filepath.Join(t.TempDir(), "tenants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o600))

	registry := NewRegistry(logger.NewNop())
	assert.Error(t, registry.LoadOverlay(path))
}
