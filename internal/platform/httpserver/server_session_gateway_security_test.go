package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	roleservice "meridian/contexts/identity-access/role-service"
	sessiongateway "meridian/contexts/identity-access/session-gateway"
	sessionhttp "meridian/contexts/identity-access/session-gateway/adapters/http"
	tenanttransfer "meridian/contexts/internal-ops/tenant-transfer-service"
	"meridian/internal/platform/messaging"
	"meridian/internal/shared/authz"
)

const testTrustedDomain = "meridian.dev"

func newTestServer() *Server {
	logger := slog.Default()
	sessions := sessiongateway.NewInMemoryModule(logger)
	roles := roleservice.NewInMemoryModule(testTrustedDomain, logger)
	bus, _ := messaging.NewKafka(nil, logger)
	transfers := tenanttransfer.NewInMemoryModule(
		authz.RoleResolver{Query: roles.ResolveRole},
		bus,
		logger,
	)
	return New(sessions, roles, transfers, logger, ":0")
}

func issueSession(t *testing.T, server *Server, userID string, email string) string {
	t.Helper()
	credential, err := server.sessions.Store.Issue(context.Background(), userID, email)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	return credential.Token
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: sessionhttp.SessionCookieName, Value: token}
}

func TestAnonymousDashboardRedirectsToLogin(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/dashboard?tab=projects", nil)

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d body=%s", rr.Code, rr.Body.String())
	}
	want := "/login?redirect=" + "%2Fdashboard%3Ftab%3Dprojects"
	if got := rr.Header().Get("Location"); got != want {
		t.Fatalf("expected Location %q, got %q", want, got)
	}
}

func TestAnonymousReachesPublicAndAuthPages(t *testing.T) {
	server := newTestServer()
	for _, path := range []string{"/", "/login", "/signup", "/share/abc123"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		server.handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("path %s: expected 200, got %d", path, rr.Code)
		}
	}
}

func TestAuthenticatedLoginRedirectsToDashboard(t *testing.T) {
	server := newTestServer()
	token := issueSession(t, server, "user-1", "user-1@example.com")

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(sessionCookie(token))

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Location"); got != "/dashboard" {
		t.Fatalf("expected Location /dashboard, got %q", got)
	}
}

func TestAuthenticatedLoginRejectsOpenRedirect(t *testing.T) {
	server := newTestServer()
	token := issueSession(t, server, "user-1", "user-1@example.com")

	req := httptest.NewRequest(http.MethodGet, "/login?redirect=%2F%2Fevil.example", nil)
	req.AddCookie(sessionCookie(token))

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Location"); got != "/dashboard" {
		t.Fatalf("expected open redirect target to be replaced with /dashboard, got %q", got)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	server := newTestServer()
	token := issueSession(t, server, "user-1", "user-1@"+testTrustedDomain)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(sessionCookie(token))
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	// The revoked token must no longer authenticate API requests.
	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(sessionCookie(token))
	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d body=%s", rr.Code, rr.Body.String())
	}
}
