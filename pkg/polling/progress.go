package polling

import "github.com/Astreocclu/pool-visualizer/pkg/models"

const (
	// progressLookahead is how far past the server-reported percentage the
	// display value may creep between updates
	progressLookahead = 5

	// progressCeiling caps the display value until completion
	progressCeiling = 95
)

// Smoother produces a monotonic display progress value that creeps toward
// the server-reported percentage plus a small lookahead, so the progress
// bar keeps moving between server updates. It never regresses, never
// passes the ceiling before completion, and jumps to 100 on complete.
type Smoother struct {
	display int
}

// NewSmoother starts at zero.
func NewSmoother() *Smoother {
	return &Smoother{}
}

// Observe folds in a server report and returns the display value.
func (s *Smoother) Observe(status models.Status, serverProgress int) int {
	if status == models.StatusComplete {
		s.display = 100
		return s.display
	}

	target := serverProgress + progressLookahead
	if target > progressCeiling {
		target = progressCeiling
	}

	if target > s.display {
		s.display = target
	}

	return s.display
}

// Display returns the current display value without folding in a report.
func (s *Smoother) Display() int {
	return s.display
}
