package httpserver

import (
	"net/http"

	sessionhttp "meridian/contexts/identity-access/session-gateway/adapters/http"
	"meridian/contexts/identity-access/session-gateway/domain/entities"
)

// handleLogout revokes the caller's session record and clears the cookie.
// Revocation is idempotent so a logout without a cookie still succeeds.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionhttp.SessionCookieName); err == nil && cookie.Value != "" {
		if err := s.sessions.Credentials.Revoke(r.Context(), cookie.Value); err != nil {
			s.logger.Error("session revoke failed",
				"event", "http_logout_revoke_failed",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"error", err.Error(),
			)
			writeJSON(w, http.StatusInternalServerError, map[string]bool{"success": false})
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionhttp.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// requestSession returns the session the guard middleware resolved for this
// request. The zero session means anonymous.
func requestSession(r *http.Request) entities.Session {
	return sessionhttp.SessionFromContext(r.Context())
}
