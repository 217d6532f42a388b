package polling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Astreocclu/pool-visualizer/pkg/models"
)

func TestSmootherCreepsAheadOfServer(t *testing.T) {
	s := NewSmoother()

	assert.Equal(t, 5, s.Observe(models.StatusPending, 0))
	assert.Equal(t, 25, s.Observe(models.StatusProcessing, 20))
	assert.Equal(t, 65, s.Observe(models.StatusProcessing, 60))
}

func TestSmootherNeverRegresses(t *testing.T) {
	s := NewSmoother()

	assert.Equal(t, 55, s.Observe(models.StatusProcessing, 50))
	// Server reported a lower number; display holds.
	assert.Equal(t, 55, s.Observe(models.StatusProcessing, 30))
	assert.Equal(t, 55, s.Display())
}

func TestSmootherCapsBeforeCompletion(t *testing.T) {
	s := NewSmoother()

	assert.Equal(t, 95, s.Observe(models.StatusProcessing, 99))
	assert.Equal(t, 95, s.Observe(models.StatusProcessing, 100))
}

func TestSmootherJumpsTo100OnComplete(t *testing.T) {
	s := NewSmoother()

	s.Observe(models.StatusProcessing, 40)
	assert.Equal(t, 100, s.Observe(models.StatusComplete, 87))
}

func TestSmootherFailedKeepsLastDisplay(t *testing.T) {
	s := NewSmoother()

	s.Observe(models.StatusProcessing, 40)
	assert.Equal(t, 45, s.Observe(models.StatusFailed, 40))
}
