package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	roleentities "meridian/contexts/identity-access/role-service/domain/entities"
)

func TestMeRequiresSession(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestMeTrustedDomainEscalates(t *testing.T) {
	server := newTestServer()
	token := issueSession(t, server, "admin-1", "ops@"+testTrustedDomain)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(sessionCookie(token))

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		GlobalRole   string `json:"global_role"`
		IsSuperAdmin bool   `json:"is_super_admin"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.IsSuperAdmin || resp.GlobalRole != string(roleentities.RoleSuperAdmin) {
		t.Fatalf("expected super admin for trusted domain, got %+v", resp)
	}
}

func TestMeDefaultsToUserRole(t *testing.T) {
	server := newTestServer()
	token := issueSession(t, server, "user-1", "user-1@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(sessionCookie(token))

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		IsSuperAdmin bool `json:"is_super_admin"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.IsSuperAdmin {
		t.Fatalf("expected regular user, got super admin")
	}
}

func TestWorkspaceRequiresSessionAndMembership(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/me/workspace", nil)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}

	token := issueSession(t, server, "user-1", "user-1@example.com")
	req = httptest.NewRequest(http.MethodGet, "/api/me/workspace", nil)
	req.AddCookie(sessionCookie(token))
	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without membership, got %d body=%s", rr.Code, rr.Body.String())
	}

	server.roles.Store.PutMembership(roleentities.Membership{
		UserID:           "user-1",
		OrganizationID:   "org-1",
		OrganizationName: "Acme",
	})
	req = httptest.NewRequest(http.MethodGet, "/api/me/workspace", nil)
	req.AddCookie(sessionCookie(token))
	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with membership, got %d body=%s", rr.Code, rr.Body.String())
	}
}
