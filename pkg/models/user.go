package models

// User is the profile snapshot cached alongside the auth tokens.
type User struct {
	ID       int    `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// GuestUsername is the placeholder profile name assigned by guest bootstrap.
// Persisted guest profiles are treated as stale and discarded on load.
const GuestUsername = "Guest"

// IsGuest reports whether the profile is a guest placeholder.
func (u *User) IsGuest() bool {
	return u != nil && u.Username == GuestUsername
}

// TokenPair is the access/refresh token pair issued by the auth endpoints.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginRequest are the credentials for POST /auth/login/.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the payload for POST /auth/register/.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse is the body returned by login and guest bootstrap.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user,omitempty"`
}

// RegisterResponse is the body returned by register. Tokens are present when
// the backend auto-logs the new account in.
type RegisterResponse struct {
	User   *User      `json:"user,omitempty"`
	Tokens *TokenPair `json:"tokens,omitempty"`
}
