package entities

// Session is the per-request materialized proof of an authenticated identity.
// It is rebuilt from the credential store on every request and never persisted
// by this context. An empty UserID means the caller is anonymous.
type Session struct {
	UserID string
	Email  string
}

func (s Session) IsAuthenticated() bool {
	return s.UserID != ""
}
