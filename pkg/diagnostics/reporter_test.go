package diagnostics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
)

func TestReportErrorPostsToEndpoint(t *testing.T) {
	received := make(chan Report, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var report Report
		require.NoError(t, json.NewDecoder(r.Body).Decode(&report))
		received <- report
	}))
	defer server.Close()

	reporter := NewReporter(server.URL, "1.2.3", logger.NewNop())
	reporter.ReportError("results watch", fmt.Errorf("poll failed"))

	select {
	case report := <-received:
		assert.Equal(t, "error", report.Type)
		assert.Equal(t, "poll failed", report.Message)
		assert.Equal(t, "results watch", report.Command)
		assert.Equal(t, "1.2.3", report.Version)
	case <-time.After(2 * time.Second):
		t.Fatal("no report received")
	}
}

func TestReportErrorIgnoresNil(t *testing.T) {
	calls := make(chan struct{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls <- struct{}{}
	}))
	defer server.Close()

	reporter := NewReporter(server.URL, "dev", logger.NewNop())
	reporter.ReportError("noop", nil)

	select {
	case <-calls:
		t.Fatal("nil error should not be reported")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDisabledReporterDropsEverything(t *testing.T) {
	reporter := NewReporter("", "dev", logger.NewNop())

	// Must not panic or block.
	reporter.ReportError("anything", fmt.Errorf("ignored"))
	reporter.Post(Report{Type: "error", Message: "ignored"})
}

func TestRecoverReportsAndRepanics(t *testing.T) {
	received := make(chan Report, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var report Report
		require.NoError(t, json.NewDecoder(r.Body).Decode(&report))
		received <- report
	}))
	defer server.Close()

	reporter := NewReporter(server.URL, "dev", logger.NewNop())

	assert.PanicsWithValue(t, "boom", func() {
		defer reporter.Recover("wizard run")
		panic("boom")
	})

	select {
	case report := <-received:
		assert.Equal(t, "panic", report.Type)
		assert.Equal(t, "boom", report.Message)
		assert.NotEmpty(t, report.Stack)
	case <-time.After(2 * time.Second):
		t.Fatal("no report received")
	}
}

func TestFlushWaitsForInFlightReports(t *testing.T) {
	var mu sync.Mutex
	var reports []Report
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		var report Report
		require.NoError(t, json.NewDecoder(r.Body).Decode(&report))
		mu.Lock()
		reports = append(reports, report)
		mu.Unlock()
	}))
	defer server.Close()

	reporter := NewReporter(server.URL, "dev", logger.NewNop())
	reporter.ReportError("leads create", fmt.Errorf("validation failed"))
	reporter.Flush()

	// Delivery completed by the time Flush returns.
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reports, 1)
	assert.Equal(t, "validation failed", reports[0].Message)
}
