// Package tenants defines the per-vertical wizard catalogs: ordered step
// descriptors, submitted selection keys, and default selections.
package tenants

import (
	"sort"
	"sync"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
	"github.com/Astreocclu/pool-visualizer/pkg/metrics"
	"github.com/Astreocclu/pool-visualizer/pkg/models"
)

// StepKind identifies a wizard step implementation. The set is closed so
// step resolution can be checked exhaustively at compile time.
type StepKind string

const (
	StepPoolSizeShape StepKind = "pool_size_shape"
	StepPoolFinish    StepKind = "pool_finish"
	StepDeck          StepKind = "deck"
	StepWaterFeatures StepKind = "water_features"
	StepFinishing     StepKind = "finishing"

	StepProjectType   StepKind = "project_type"
	StepDoorType      StepKind = "door_type"
	StepWindowType    StepKind = "window_type"
	StepFrameMaterial StepKind = "frame_material"
	StepGrillePattern StepKind = "grille_pattern"
	StepHardwareTrim  StepKind = "hardware_trim"

	StepRoofMaterial StepKind = "roof_material"
	StepRoofColor    StepKind = "roof_color"
	StepSolarOption  StepKind = "solar_option"
	StepGutterOption StepKind = "gutter_option"

	// Universal steps shared by every tenant
	StepUpload StepKind = "upload"
	StepReview StepKind = "review"
)

// Step is one entry in a tenant's ordered wizard flow.
type Step struct {
	Kind  StepKind `yaml:"kind"`
	Label string   `yaml:"label"`
}

// Descriptor describes one tenant vertical.
type Descriptor struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Steps         []Step   `yaml:"steps"`
	SelectionKeys []string `yaml:"selection_keys"`
}

// SubmitsKey reports whether the tenant declares the given selection key.
func (d *Descriptor) SubmitsKey(key string) bool {
	for _, k := range d.SelectionKeys {
		if k == key {
			return true
		}
	}
	return false
}

// DefaultTenantID is the fallback vertical for unrecognized identifiers.
const DefaultTenantID = "pools"

// Registry resolves tenant identifiers to descriptors. Unknown identifiers
// fall back to the default tenant with a logged warning so malformed links
// stay navigable but remain observable.
type Registry struct {
	mu      sync.RWMutex
	tenants map[string]*Descriptor
	logger  logger.Logger
}

// NewRegistry creates a registry preloaded with the built-in verticals.
func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		tenants: builtinTenants(),
		logger:  log,
	}
}

// Config returns the descriptor for the tenant, falling back to the default
// tenant for unrecognized identifiers.
func (r *Registry) Config(tenantID string) *Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if desc, ok := r.tenants[tenantID]; ok {
		return desc
	}

	r.logger.WithField("tenant_id", tenantID).Warnf("Unknown tenant %q, falling back to %q", tenantID, DefaultTenantID)
	metrics.TenantFallbacksTotal.WithLabelValues(tenantID).Inc()

	return r.tenants[DefaultTenantID]
}

// IsValid reports whether the tenant identifier is recognized.
func (r *Registry) IsValid(tenantID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tenants[tenantID]
	return ok
}

// All returns every registered descriptor, sorted by identifier.
func (r *Registry) All() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Descriptor, 0, len(r.tenants))
	for _, desc := range r.tenants {
		out = append(out, desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func builtinTenants() map[string]*Descriptor {
	return map[string]*Descriptor{
		"pools": {
			ID:          "pools",
			Name:        "Pool Designer",
			Description: "Design your dream swimming pool",
			Steps: []Step{
				{Kind: StepPoolSizeShape, Label: "Size & Shape"},
				{Kind: StepPoolFinish, Label: "Finish"},
				{Kind: StepDeck, Label: "Deck"},
				{Kind: StepWaterFeatures, Label: "Water Features"},
				{Kind: StepFinishing, Label: "Finishing"},
				{Kind: StepUpload, Label: "Upload"},
				{Kind: StepReview, Label: "Review"},
			},
			SelectionKeys: []string{
				"size", "shape", "finish", "tanning_ledge", "lounger_count",
				"attached_spa", "deck_material", "deck_color", "water_features",
				"lighting", "landscaping", "furniture",
			},
		},
		"windows": {
			ID:          "windows",
			Name:        "Window & Door Designer",
			Description: "Visualize new windows and doors",
			Steps: []Step{
				{Kind: StepProjectType, Label: "Project Type"},
				{Kind: StepDoorType, Label: "Door Type"},
				{Kind: StepWindowType, Label: "Window Type"},
				{Kind: StepFrameMaterial, Label: "Frame"},
				{Kind: StepGrillePattern, Label: "Grilles"},
				{Kind: StepHardwareTrim, Label: "Hardware"},
				{Kind: StepUpload, Label: "Upload"},
				{Kind: StepReview, Label: "Review"},
			},
			SelectionKeys: []string{
				"project_type", "door_type", "window_type", "window_style",
				"frame_material", "frame_color", "grille_pattern", "glass_option",
				"hardware_finish", "trim_style",
			},
		},
		"roofs": {
			ID:          "roofs",
			Name:        "Roof & Solar Designer",
			Description: "Visualize new roofing and solar panels",
			Steps: []Step{
				{Kind: StepRoofMaterial, Label: "Material"},
				{Kind: StepRoofColor, Label: "Color"},
				{Kind: StepSolarOption, Label: "Solar"},
				{Kind: StepGutterOption, Label: "Gutters"},
				{Kind: StepUpload, Label: "Upload"},
				{Kind: StepReview, Label: "Review"},
			},
			SelectionKeys: []string{
				"roof_material", "roof_color", "solar_option", "gutter_option",
			},
		},
	}
}

// Defaults returns the initial selections for a tenant. Every key the
// tenant submits is present so a submission made without visiting a step
// still carries a complete scope payload.
func Defaults(tenantID string) models.Selections {
	switch tenantID {
	case "windows":
		return models.Selections{
			"project_type":    models.String("replace_existing"),
			"door_type":       models.String("none"),
			"window_type":     models.String("double_hung"),
			"window_style":    models.String("modern"),
			"frame_material":  models.String("vinyl"),
			"frame_color":     models.String("white"),
			"grille_pattern":  models.String("none"),
			"glass_option":    models.String("clear"),
			"hardware_finish": models.String("white"),
			"trim_style":      models.String("standard"),
		}
	case "roofs":
		return models.Selections{
			"roof_material": models.String("asphalt_architectural"),
			"roof_color":    models.String("charcoal"),
			"solar_option":  models.String("none"),
			"gutter_option": models.String("standard"),
		}
	default:
		return models.Selections{
			"size":           models.String("classic"),
			"shape":          models.String("rectangle"),
			"finish":         models.String("pebble_blue"),
			"tanning_ledge":  models.Bool(false),
			"lounger_count":  models.Int(0),
			"attached_spa":   models.Bool(false),
			"deck_material":  models.String("travertine"),
			"deck_color":     models.String("cream"),
			"water_features": models.List(),
			"lighting":       models.String("none"),
			"landscaping":    models.String("none"),
			"furniture":      models.String("none"),
		}
	}
}
