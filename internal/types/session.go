package types

import "time"

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the token bundle issued by the auth backend. A session with an
// empty access token (signup pending email confirmation) is not active.
type Session struct {
	AccessToken  string `json:"access_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         *User  `json:"user,omitempty"`
}

func (s *Session) Active() bool {
	return s != nil && s.AccessToken != ""
}

func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.ID
}

func (s *Session) Email() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.Email
}

// ExpiresWithin reports whether the access token expires before now+d.
// Sessions without an expiry never report as expiring.
func (s *Session) ExpiresWithin(now time.Time, d time.Duration) bool {
	if !s.Active() || s.ExpiresAt == 0 {
		return false
	}
	return time.Unix(s.ExpiresAt, 0).Before(now.Add(d))
}
