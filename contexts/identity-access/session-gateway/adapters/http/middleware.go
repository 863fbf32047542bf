package httpadapter

import (
	"context"
	"log/slog"
	"net/http"

	"meridian/contexts/identity-access/session-gateway/application"
	"meridian/contexts/identity-access/session-gateway/domain/entities"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "meridian_session"

type sessionContextKey struct{}

// Middleware applies the guard decision to every request: redirects are
// terminal, allowed requests continue with the refreshed cookie set and the
// session injected into the request context.
type Middleware struct {
	Guard  application.GuardUseCase
	Logger *slog.Logger
}

func (m Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			token = cookie.Value
		}

		decision := m.Guard.Decide(r.Context(), r.URL.Path, r.URL.RawQuery, token)

		// Refresh must reach the client on every response, redirect or not,
		// so active sessions keep sliding.
		if decision.Credential.Token != "" {
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    decision.Credential.Token,
				Path:     "/",
				MaxAge:   int(decision.Credential.MaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		// Redirects are a navigation concern. Non-navigation requests (API
		// mutations under protected paths) carry their own authentication
		// gate and must see a 401 from their handler, not a Location header.
		if decision.Decision.Action == entities.ActionRedirect && isNavigation(r.Method) {
			http.Redirect(w, r, decision.Decision.Location, http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), decision.Session)))
	})
}

func isNavigation(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// WithSession stores the guard's session on the context for downstream
// handlers.
func WithSession(ctx context.Context, session entities.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFromContext returns the session placed by the middleware. The zero
// session means the caller is anonymous.
func SessionFromContext(ctx context.Context) entities.Session {
	session, _ := ctx.Value(sessionContextKey{}).(entities.Session)
	return session
}
