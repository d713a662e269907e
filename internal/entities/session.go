package entities

import "time"

// Session replaces the browser-side `token` storage: the access token is
// kept server side and the browser only holds the session id.
type Session struct {
	ID        string    `json:"-"`
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
