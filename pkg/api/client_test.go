package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
	"github.com/Astreocclu/pool-visualizer/pkg/models"
)

// memTokenStore is an in-memory TokenStore for tests.
type memTokenStore struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared bool
}

func (s *memTokenStore) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh
}

func (s *memTokenStore) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
}

func (s *memTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	s.cleared = true
}

func newTestClient(serverURL string, tokens TokenStore) *Client {
	return NewClient(Config{
		BaseURL:        serverURL,
		Timeout:        5 * time.Second,
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
	}, tokens, logger.NewNop())
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(models.VisualizationRequest{ID: 1})
	}))
	defer server.Close()

	client := newTestClient(server.URL, &memTokenStore{access: "access-token"})

	_, err := client.GetVisualization(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-token", gotAuth)
}

func TestClientRefreshesOnceOn401(t *testing.T) {
	var mu sync.Mutex
	var authHeaders []string
	refreshCalls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		if r.URL.Path == "/auth/refresh/" {
			refreshCalls++
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "refresh-token", payload["refresh"])
			_ = json.NewEncoder(w).Encode(map[string]string{"access": "new-access"})
			return
		}

		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		if r.Header.Get("Authorization") != "Bearer new-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(models.VisualizationRequest{ID: 1, Status: models.StatusPending})
	}))
	defer server.Close()

	tokens := &memTokenStore{access: "stale-access", refresh: "refresh-token"}
	client := newTestClient(server.URL, tokens)

	req, err := client.GetVisualization(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, req.ID)

	assert.Equal(t, 1, refreshCalls)
	require.Len(t, authHeaders, 2)
	assert.Equal(t, "Bearer stale-access", authHeaders[0])
	assert.Equal(t, "Bearer new-access", authHeaders[1])

	access, refresh := tokens.Tokens()
	assert.Equal(t, "new-access", access)
	// The old refresh token survives when the backend rotates only access.
	assert.Equal(t, "refresh-token", refresh)
}

func TestClientClearsTokensWhenRefreshFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh/" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &memTokenStore{access: "stale-access", refresh: "stale-refresh"}
	client := newTestClient(server.URL, tokens)

	_, err := client.GetVisualization(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.True(t, tokens.cleared)
}

func TestClientRetries5xxForIdempotentMethods(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(models.VisualizationRequest{ID: 9})
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	req, err := client.GetVisualization(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 9, req.ID)
	assert.Equal(t, 3, calls)
}

func TestClientDoesNotRetryPlainPost(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	_, err := client.RetryVisualization(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusBadGateway, StatusCode(err))
}

func TestClientRetriesPostWithIdempotencyKey(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	var keys []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		keys = append(keys, r.Header.Get(IdempotencyKeyHeader))
		mu.Unlock()

		if n == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(models.VisualizationRequest{ID: 3})
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	req, err := client.CreateVisualization(context.Background(), []byte("body"), "multipart/form-data; boundary=x", "key-123")
	require.NoError(t, err)
	assert.Equal(t, 3, req.ID)
	assert.Equal(t, 2, calls)

	// Both attempts carry the same key so the backend can dedupe.
	assert.Equal(t, []string{"key-123", "key-123"}, keys)
}

func TestClientNormalizesErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "water_features list too long"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	_, err := client.GetVisualization(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "water_features list too long")
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
}

func TestClientTransportErrorUsesFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately, so every dial fails

	client := newTestClient(server.URL, nil)

	_, err := client.GetVisualization(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Contains(t, err.Error(), "Failed to fetch visualization request")
}

func TestScreenTypesFallsBackToBuiltin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	types, err := client.ScreenTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultScreenTypes(), types)
}
