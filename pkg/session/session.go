// Package session manages the auth session: token pair, cached profile,
// login attempt lockout, and persistence across runs.
package session

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
	"github.com/Astreocclu/pool-visualizer/pkg/models"
	"github.com/Astreocclu/pool-visualizer/pkg/store"
)

const (
	// MaxLoginAttempts is how many consecutive failures lock the account
	MaxLoginAttempts = 5

	// LockDuration is how long a locked account stays locked
	LockDuration = 15 * time.Minute
)

// AuthAPI is the subset of the API client the session manager calls.
type AuthAPI interface {
	Login(ctx context.Context, creds models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
	Guest(ctx context.Context) (*models.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// state is the persisted session envelope.
type state struct {
	Access        string       `json:"access,omitempty"`
	Refresh       string       `json:"refresh,omitempty"`
	User          *models.User `json:"user,omitempty"`
	LoginAttempts int          `json:"login_attempts"`
	LastAttemptAt int64        `json:"last_attempt_at,omitempty"`
	Locked        bool         `json:"locked"`
}

// Manager holds the auth session. It implements the API client's TokenStore
// so token refresh flows back into the persisted session.
type Manager struct {
	mu        sync.RWMutex
	state     state
	api       AuthAPI
	persister store.Persister
	logger    logger.Logger
	now       func() time.Time
}

// NewManager restores the persisted session, discarding stale guest
// profiles and expired tokens. A nil persister keeps the session in memory.
func NewManager(persister store.Persister, log logger.Logger) *Manager {
	m := &Manager{
		persister: persister,
		logger:    log,
		now:       time.Now,
	}
	m.restore()
	return m
}

// SetAPI injects the API client after construction. The manager is created
// first because the client needs it as a token store.
func (m *Manager) SetAPI(api AuthAPI) {
	m.api = api
}

func (m *Manager) restore() {
	if m.persister == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := m.persister.Load(ctx)
	if err != nil {
		if err != store.ErrNotFound {
			m.logger.WithError(err).Debugf("Failed to load persisted session")
		}
		return
	}

	var saved state
	if err := json.Unmarshal(data, &saved); err != nil {
		m.logger.WithError(err).Debugf("Discarding corrupt persisted session")
		return
	}

	// Old guest placeholder sessions are stale; start fresh.
	if saved.User.IsGuest() {
		m.logger.Debugf("Discarding stale guest session")
		m.clearPersisted()
		return
	}

	if saved.Access != "" && TokenExpired(saved.Access, m.now()) && saved.Refresh == "" {
		m.logger.Debugf("Discarding expired session with no refresh token")
		m.clearPersisted()
		return
	}

	m.state = saved
}

// Tokens returns the current access and refresh tokens.
func (m *Manager) Tokens() (string, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Access, m.state.Refresh
}

// SetTokens replaces the token pair. Called by the API client after a
// successful refresh.
func (m *Manager) SetTokens(access, refresh string) {
	m.mu.Lock()
	m.state.Access = access
	m.state.Refresh = refresh
	m.mu.Unlock()

	m.persist()
}

// Clear wipes the session. Called on logout and on refresh failure.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.state = state{}
	m.mu.Unlock()

	m.clearPersisted()
}

// User returns the cached profile snapshot, or nil when signed out.
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state.User == nil {
		return nil
	}
	user := *m.state.User
	return &user
}

// IsAuthenticated reports whether a usable access token is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Access != "" && !TokenExpired(m.state.Access, m.now())
}

// Login authenticates with the backend. Five consecutive failures lock the
// account for fifteen minutes; a locked login is rejected before any
// network call.
func (m *Manager) Login(ctx context.Context, creds models.LoginRequest) (*models.User, error) {
	if err := m.checkLock(); err != nil {
		return nil, err
	}

	resp, err := m.api.Login(ctx, creds)
	if err != nil {
		m.recordFailure()
		return nil, err
	}

	user := resp.User
	if user == nil {
		user = &models.User{Username: creds.Username}
	}

	m.mu.Lock()
	m.state = state{
		Access:  resp.Access,
		Refresh: resp.Refresh,
		User:    user,
	}
	m.mu.Unlock()

	m.persist()
	m.logger.WithField("username", user.Username).Infof("Logged in as %s", user.Username)

	out := *user
	return &out, nil
}

// Register creates an account. When the backend auto-logs the account in,
// the returned tokens become the active session.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	resp, err := m.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	user := resp.User
	if user == nil {
		user = &models.User{Username: req.Username, Email: req.Email}
	}

	if resp.Tokens != nil {
		m.mu.Lock()
		m.state = state{
			Access:  resp.Tokens.Access,
			Refresh: resp.Tokens.Refresh,
			User:    user,
		}
		m.mu.Unlock()
		m.persist()
	}

	out := *user
	return &out, nil
}

// Guest bootstraps an anonymous session. Guest sessions are not persisted
// across runs; restore treats them as stale.
func (m *Manager) Guest(ctx context.Context) (*models.User, error) {
	resp, err := m.api.Guest(ctx)
	if err != nil {
		return nil, err
	}

	user := resp.User
	if user == nil {
		user = &models.User{Username: models.GuestUsername}
	}

	m.mu.Lock()
	m.state = state{
		Access:  resp.Access,
		Refresh: resp.Refresh,
		User:    user,
	}
	m.mu.Unlock()

	m.persist()

	out := *user
	return &out, nil
}

// Logout invalidates the session server-side best effort and always clears
// the local session.
func (m *Manager) Logout(ctx context.Context) {
	_, refresh := m.Tokens()

	if refresh != "" && m.api != nil {
		if err := m.api.Logout(ctx, refresh); err != nil {
			m.logger.WithError(err).Warnf("Logout API call failed")
		}
	}

	m.Clear()
}

func (m *Manager) checkLock() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.state.Locked {
		return nil
	}

	elapsed := m.now().Sub(time.UnixMilli(m.state.LastAttemptAt))
	if elapsed >= LockDuration {
		m.state.Locked = false
		m.state.LoginAttempts = 0
		return nil
	}

	remaining := int(math.Ceil((LockDuration - elapsed).Minutes()))
	return httperror.NewHTTPErrorf(http.StatusTooManyRequests,
		"Account locked. Try again in %d minutes.", remaining)
}

func (m *Manager) recordFailure() {
	m.mu.Lock()
	m.state.LoginAttempts++
	m.state.LastAttemptAt = m.now().UnixMilli()
	if m.state.LoginAttempts >= MaxLoginAttempts {
		m.state.Locked = true
	}
	locked := m.state.Locked
	m.mu.Unlock()

	m.persist()

	if locked {
		m.logger.Warnf("Account locked after %d failed login attempts", MaxLoginAttempts)
	}
}

func (m *Manager) persist() {
	if m.persister == nil {
		return
	}

	m.mu.RLock()
	data, err := json.Marshal(m.state)
	m.mu.RUnlock()
	if err != nil {
		m.logger.WithError(err).Debugf("Failed to marshal session")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.persister.Save(ctx, data); err != nil {
		m.logger.WithError(err).Debugf("Failed to persist session")
	}
}

func (m *Manager) clearPersisted() {
	if m.persister == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.persister.Clear(ctx); err != nil {
		m.logger.WithError(err).Debugf("Failed to clear persisted session")
	}
}

// TokenExpired checks a JWT's exp claim without verifying the signature.
// Verification belongs to the backend; the client only needs a cheap
// expiry test. Malformed tokens are treated as expired.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return exp.Before(now)
}
