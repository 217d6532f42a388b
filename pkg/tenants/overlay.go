package tenants

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overlayFile is the YAML shape of a tenant overlay document.
type overlayFile struct {
	Tenants []Descriptor `yaml:"tenants"`
}

// LoadOverlay merges tenant descriptors from a YAML file into the registry.
// Descriptors with a known identifier replace the built-in definition; new
// identifiers are added. The default tenant cannot be removed.
func (r *Registry) LoadOverlay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tenant overlay %s: %w", path, err)
	}

	var file overlayFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse tenant overlay %s: %w", path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range file.Tenants {
		desc := file.Tenants[i]
		if desc.ID == "" {
			return fmt.Errorf("tenant overlay %s contains a descriptor without an id", path)
		}
		if len(desc.Steps) == 0 {
			return fmt.Errorf("tenant %q in overlay %s has no steps", desc.ID, path)
		}
		r.tenants[desc.ID] = &desc
		r.logger.WithField("tenant_id", desc.ID).Infof("Loaded tenant %q from overlay", desc.ID)
	}

	return nil
}
