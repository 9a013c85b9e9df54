package domain

import "time"

// Session binds a live refresh token to its owner. Token is the raw signed
// refresh token string and is the primary key of the session store; a refresh
// token without a session row is invalid even when its signature verifies.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Username  string
}

// Expired reports whether the session's stored expiry has passed.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
