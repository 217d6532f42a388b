// Package diagnostics posts client-side errors to the backend's debug
// endpoint, fire and forget.
package diagnostics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
)

const postTimeout = 5 * time.Second

// Report is one captured error event.
type Report struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
	Command string `json:"command,omitempty"`
	Version string `json:"version,omitempty"`
}

// Reporter posts error reports to the debug endpoint. A disabled reporter
// (empty endpoint) drops everything.
type Reporter struct {
	endpoint string
	client   *http.Client
	logger   logger.Logger
	version  string
	wg       sync.WaitGroup
}

// NewReporter creates a reporter. Pass an empty endpoint to disable.
func NewReporter(endpoint, version string, log logger.Logger) *Reporter {
	return &Reporter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: postTimeout},
		logger:   log,
		version:  version,
	}
}

// Post sends a report in the background. Failures are swallowed; the debug
// endpoint being down must never affect the user.
func (r *Reporter) Post(report Report) {
	if r.endpoint == "" {
		return
	}

	report.Version = r.version

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		payload, err := json.Marshal(report)
		if err != nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), postTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
		if err != nil {
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := r.client.Do(req)
		if err != nil {
			r.logger.WithError(err).Debugf("Debug report failed")
			return
		}
		resp.Body.Close()
	}()
}

// Flush waits for any in-flight reports to finish. Call before process
// exit; reports posted after a short-lived command would otherwise be lost.
func (r *Reporter) Flush() {
	r.wg.Wait()
}

// ReportError captures an error with the command that produced it.
func (r *Reporter) ReportError(command string, err error) {
	if err == nil {
		return
	}
	r.Post(Report{
		Type:    "error",
		Message: err.Error(),
		Command: command,
	})
}

// Recover reports a panic and re-panics. Intended as a deferred call at
// command boundaries. The report is flushed before re-panicking since the
// panic will take the process down.
func (r *Reporter) Recover(command string) {
	if rec := recover(); rec != nil {
		r.Post(Report{
			Type:    "panic",
			Message: toString(rec),
			Stack:   string(debug.Stack()),
			Command: command,
		})
		r.Flush()
		panic(rec)
	}
}

func toString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "unknown panic"
	}
	return string(data)
}
