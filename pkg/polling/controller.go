// Package polling watches a visualization request until it reaches a
// terminal status, tolerating transient fetch failures and smoothing the
// reported progress for display.
package polling

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"

	"github.com/Astreocclu/pool-visualizer/pkg/api"
	"github.com/Astreocclu/pool-visualizer/pkg/logger"
	"github.com/Astreocclu/pool-visualizer/pkg/metrics"
	"github.com/Astreocclu/pool-visualizer/pkg/models"
	"github.com/Astreocclu/pool-visualizer/pkg/tracing"
)

const (
	// DefaultInterval is the delay between status fetches
	DefaultInterval = 3 * time.Second

	// DefaultMaxFailures is how many consecutive fetch failures stop the watch
	DefaultMaxFailures = 3
)

// Fetcher is the API surface the controller polls.
type Fetcher interface {
	GetVisualization(ctx context.Context, id int) (*models.VisualizationRequest, error)
}

// Update is one observed poll result. DisplayProgress is the smoothed
// monotonic progress value for rendering.
type Update struct {
	Request         *models.VisualizationRequest
	DisplayProgress int
}

// Observer receives each poll update. May be nil.
type Observer func(Update)

// Controller polls a request's status until terminal.
type Controller struct {
	api         Fetcher
	logger      logger.Logger
	interval    time.Duration
	maxFailures int
}

// NewController creates a polling controller with the default cadence.
func NewController(apiClient Fetcher, log logger.Logger) *Controller {
	return &Controller{
		api:         apiClient,
		logger:      log,
		interval:    DefaultInterval,
		maxFailures: DefaultMaxFailures,
	}
}

// SetInterval overrides the poll cadence. Useful in tests.
func (c *Controller) SetInterval(interval time.Duration) {
	c.interval = interval
}

// Watch fetches the request immediately, then re-fetches on the interval
// until a terminal status is observed. Polls are sequential; a slow
// response delays the next poll rather than overlapping it. Cancelling the
// context stops the watch and aborts the in-flight fetch. Transient
// failures are tolerated until maxFailures consecutive ones, at which point
// the watch stops with an error classified as unauthorized, not-found, or
// connectivity loss.
func (c *Controller) Watch(ctx context.Context, id int, observe Observer) (*models.VisualizationRequest, error) {
	ctx, span := tracing.StartSpan(ctx, "polling watch")
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.PollWatchDuration.Observe(time.Since(start).Seconds())
	}()

	smoother := NewSmoother()
	failures := 0
	var last *models.VisualizationRequest

	for {
		req, err := c.api.GetVisualization(ctx, id)
		switch {
		case err != nil && ctx.Err() != nil:
			metrics.PollCyclesTotal.WithLabelValues("cancelled").Inc()
			return last, ctx.Err()

		case err != nil:
			failures++
			metrics.PollCyclesTotal.WithLabelValues("error").Inc()
			c.logger.WithContext(ctx).WithError(err).Warnf("Poll %d/%d for request %d failed", failures, c.maxFailures, id)

			if failures >= c.maxFailures {
				return last, classify(err, id)
			}
			// Keep the last good state visible and keep polling.

		default:
			failures = 0
			last = req
			metrics.PollCyclesTotal.WithLabelValues("ok").Inc()

			display := smoother.Observe(req.Status, req.ProgressPercentage)
			if observe != nil {
				observe(Update{Request: req, DisplayProgress: display})
			}

			if req.Status.IsTerminal() {
				c.logger.WithContext(ctx).Infof("Request %d reached terminal status %s", id, req.Status)
				return req, nil
			}
		}

		select {
		case <-ctx.Done():
			metrics.PollCyclesTotal.WithLabelValues("cancelled").Inc()
			return last, ctx.Err()
		case <-time.After(c.interval):
		}
	}
}

// classify maps the final fetch error to a user-meaningful failure.
func classify(err error, id int) error {
	switch {
	case api.IsUnauthorized(err):
		return httperror.NewHTTPError(http.StatusUnauthorized, "Session expired. Please log in again.")
	case api.IsNotFound(err):
		return httperror.NewHTTPErrorf(http.StatusNotFound, "Visualization request #%d not found.", id)
	default:
		return httperror.NewHTTPError(http.StatusServiceUnavailable,
			"Lost connection while checking progress. Please try again later.")
	}
}
