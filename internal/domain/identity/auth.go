package identity

import (
	"time"

	"github.com/google/uuid"
)

// MinLoginTokenLength rejects obviously malformed tokens before any lookup
const MinLoginTokenLength = 10

// UserAuth is the per-user credential row: the pending one-time login token
// and the identifiers of the current session and refresh token.
type UserAuth struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	LoginToken   *string
	ExpiresAt    *time.Time
	SessionID    *string
	RefreshToken *string
	UpdatedAt    time.Time
}

// NewUserAuth creates an empty credential row for a user
func NewUserAuth(userID uuid.UUID) *UserAuth {
	return &UserAuth{
		ID:        uuid.New(),
		UserID:    userID,
		UpdatedAt: time.Now(),
	}
}

// IssueLoginToken replaces any pending login token with a fresh one valid for ttl
func (a *UserAuth) IssueLoginToken(now time.Time, ttl time.Duration) string {
	token := uuid.New().String()
	expiresAt := now.Add(ttl)
	a.LoginToken = &token
	a.ExpiresAt = &expiresAt
	a.UpdatedAt = now
	return token
}

// LoginTokenExpired reports whether the pending token is past its expiry
func (a *UserAuth) LoginTokenExpired(now time.Time) bool {
	return a.ExpiresAt != nil && a.ExpiresAt.Before(now)
}

// ClearLoginToken drops the pending token
func (a *UserAuth) ClearLoginToken() {
	a.LoginToken = nil
	a.UpdatedAt = time.Now()
}

// StartSession consumes the login token and returns new session and refresh ids
func (a *UserAuth) StartSession() (sessionID, refreshID string) {
	sessionID = uuid.New().String()
	refreshID = uuid.New().String()
	a.LoginToken = nil
	a.SessionID = &sessionID
	a.RefreshToken = &refreshID
	a.UpdatedAt = time.Now()
	return sessionID, refreshID
}

// RotateSession replaces the session id, keeping the refresh token
func (a *UserAuth) RotateSession() string {
	sessionID := uuid.New().String()
	a.SessionID = &sessionID
	a.UpdatedAt = time.Now()
	return sessionID
}

// EndSession clears every credential
func (a *UserAuth) EndSession() {
	a.LoginToken = nil
	a.ExpiresAt = nil
	a.SessionID = nil
	a.RefreshToken = nil
	a.UpdatedAt = time.Now()
}
