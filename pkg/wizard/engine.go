// Package wizard drives the multi-step configuration flow: step sequencing
// with clamped navigation, per-step validation, option catalogs, and the
// upload checks.
package wizard

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
	"github.com/Astreocclu/pool-visualizer/pkg/models"
	"github.com/Astreocclu/pool-visualizer/pkg/store"
	"github.com/Astreocclu/pool-visualizer/pkg/tenants"
)

// Session is one user's pass through a tenant's wizard. The step index is
// 1-based; Next and Prev clamp to [1, N].
type Session struct {
	descriptor *tenants.Descriptor
	store      *store.Store
	index      int
	upload     *Upload
	maxUpload  int64
	logger     logger.Logger
}

// NewSession starts a wizard session at step 1, resolving the tenant
// through the registry (unknown tenants fall back to the default).
func NewSession(registry *tenants.Registry, tenantID string, st *store.Store, log logger.Logger) *Session {
	return &Session{
		descriptor: registry.Config(tenantID),
		store:      st,
		index:      1,
		maxUpload:  DefaultMaxUploadSize,
		logger:     log,
	}
}

// Descriptor returns the resolved tenant descriptor.
func (s *Session) Descriptor() *tenants.Descriptor {
	return s.descriptor
}

// Index returns the current 1-based step index.
func (s *Session) Index() int {
	return s.index
}

// StepCount returns the tenant's step count.
func (s *Session) StepCount() int {
	return len(s.descriptor.Steps)
}

// Step returns the current step descriptor.
func (s *Session) Step() tenants.Step {
	return s.descriptor.Steps[s.index-1]
}

// Next validates the current step and advances, clamped to the last step.
func (s *Session) Next() error {
	if err := s.validateStep(s.Step().Kind); err != nil {
		return err
	}
	if s.index < len(s.descriptor.Steps) {
		s.index++
	}
	return nil
}

// Prev regresses one step, clamped to the first. No validation; going back
// is always allowed.
func (s *Session) Prev() {
	if s.index > 1 {
		s.index--
	}
}

// AtReview reports whether the session is on the final review step.
func (s *Session) AtReview() bool {
	return s.Step().Kind == tenants.StepReview
}

// Set records a selection through the store.
func (s *Session) Set(key string, value models.Value) error {
	if value.Kind == models.KindString && !ValidOption(key, value.Str) {
		return httperror.NewHTTPErrorf(http.StatusBadRequest, "%q is not a valid choice for %s", value.Str, key)
	}
	s.store.Set(key, value)
	return nil
}

// Get reads a selection from the store.
func (s *Session) Get(key string) (models.Value, bool) {
	return s.store.Get(key)
}

// SetMaxUploadSize overrides the upload size cap.
func (s *Session) SetMaxUploadSize(max int64) {
	s.maxUpload = max
}

// SetUpload validates and stages the photo for submission. On failure the
// staged upload is left unset.
func (s *Session) SetUpload(upload Upload) error {
	if err := ValidateUpload(upload, s.maxUpload, DefaultAcceptedTypes()); err != nil {
		return err
	}
	s.upload = &upload
	return nil
}

// Upload returns the staged photo, or nil when none passed validation.
func (s *Session) Upload() *Upload {
	return s.upload
}

// ReviewLine is one row of the review summary.
type ReviewLine struct {
	Key   string
	Value models.Value
}

// Review lists the selections the tenant will submit, in declared key
// order, filling absent keys from the tenant defaults.
func (s *Session) Review() []ReviewLine {
	defaults := tenants.Defaults(s.descriptor.ID)

	lines := make([]ReviewLine, 0, len(s.descriptor.SelectionKeys))
	for _, key := range s.descriptor.SelectionKeys {
		value, ok := s.store.Get(key)
		if !ok {
			value = defaults[key]
		}
		lines = append(lines, ReviewLine{Key: key, Value: value})
	}
	return lines
}

// validateStep enforces the per-step required selections. Optional steps
// (water features, finishing touches) always pass since their defaults are
// valid submissions.
func (s *Session) validateStep(kind tenants.StepKind) error {
	switch kind {
	case tenants.StepPoolSizeShape:
		return s.require("size", "shape")
	case tenants.StepPoolFinish:
		return s.require("finish")
	case tenants.StepDeck:
		return s.require("deck_material", "deck_color")
	case tenants.StepWaterFeatures:
		return nil
	case tenants.StepFinishing:
		return nil
	case tenants.StepProjectType:
		return s.require("project_type")
	case tenants.StepDoorType:
		return s.require("door_type")
	case tenants.StepWindowType:
		return s.require("window_type", "window_style")
	case tenants.StepFrameMaterial:
		return s.require("frame_material", "frame_color")
	case tenants.StepGrillePattern:
		return s.require("grille_pattern", "glass_option")
	case tenants.StepHardwareTrim:
		return s.require("hardware_finish", "trim_style")
	case tenants.StepRoofMaterial:
		return s.require("roof_material")
	case tenants.StepRoofColor:
		return s.require("roof_color")
	case tenants.StepSolarOption:
		return s.require("solar_option")
	case tenants.StepGutterOption:
		return s.require("gutter_option")
	case tenants.StepUpload:
		if s.upload == nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "Please upload a photo before continuing")
		}
		return nil
	case tenants.StepReview:
		return nil
	default:
		return httperror.NewHTTPErrorf(http.StatusBadRequest, "unknown step kind %q", kind)
	}
}

func (s *Session) require(keys ...string) error {
	for _, key := range keys {
		value, ok := s.store.Get(key)
		if !ok || value.IsZero() {
			return httperror.NewHTTPErrorf(http.StatusBadRequest, "%s is required to continue", key)
		}
	}
	return nil
}
