package application

import (
	"context"
	"testing"

	"meridian/contexts/identity-access/session-gateway/adapters/memory"
	"meridian/contexts/identity-access/session-gateway/domain/entities"
)

func newGuard(t *testing.T) (GuardUseCase, *memory.CredentialStore) {
	t.Helper()
	store := memory.NewCredentialStore()
	return GuardUseCase{Credentials: store}, store
}

func TestDecideAnonymousProtectedRedirectsToLogin(t *testing.T) {
	guard, _ := newGuard(t)

	out := guard.Decide(context.Background(), "/dashboard/projects/42", "tab=members", "")
	if out.Decision.Action != entities.ActionRedirect {
		t.Fatalf("expected redirect, got %s", out.Decision.Action)
	}
	want := "/login?redirect=%2Fdashboard%2Fprojects%2F42%3Ftab%3Dmembers"
	if out.Decision.Location != want {
		t.Fatalf("expected %q, got %q", want, out.Decision.Location)
	}
}

func TestDecideAnonymousPublicAndAuthPagesAllowed(t *testing.T) {
	guard, _ := newGuard(t)

	for _, path := range []string{"/", "/share/tok", "/login", "/signup", "/invite/tok", "/api/me"} {
		out := guard.Decide(context.Background(), path, "", "")
		if out.Decision.Action != entities.ActionAllow {
			t.Fatalf("expected allow for %s, got %s", path, out.Decision.Action)
		}
	}
}

func TestDecideAuthenticatedAuthPageHonorsReturnParam(t *testing.T) {
	guard, store := newGuard(t)
	credential, err := store.Issue(context.Background(), "user_1", "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	out := guard.Decide(context.Background(), "/login", "redirect=%2Fdashboard%2Fprojects%2F42", credential.Token)
	if out.Decision.Action != entities.ActionRedirect {
		t.Fatalf("expected redirect, got %s", out.Decision.Action)
	}
	if out.Decision.Location != "/dashboard/projects/42" {
		t.Fatalf("expected /dashboard/projects/42, got %q", out.Decision.Location)
	}
}

func TestDecideAuthenticatedAuthPageRejectsOpenRedirect(t *testing.T) {
	guard, store := newGuard(t)
	credential, err := store.Issue(context.Background(), "user_1", "")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	out := guard.Decide(context.Background(), "/login", "redirect=%2F%2Fevil.example", credential.Token)
	if out.Decision.Location != "/dashboard" {
		t.Fatalf("expected /dashboard, got %q", out.Decision.Location)
	}
}

func TestDecideAuthenticatedProtectedAllowsAndCarriesCredential(t *testing.T) {
	guard, store := newGuard(t)
	credential, err := store.Issue(context.Background(), "user_1", "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	out := guard.Decide(context.Background(), "/dashboard", "", credential.Token)
	if out.Decision.Action != entities.ActionAllow {
		t.Fatalf("expected allow, got %s", out.Decision.Action)
	}
	if out.Session.UserID != "user_1" {
		t.Fatalf("expected session user_1, got %q", out.Session.UserID)
	}
	if out.Credential.Token == "" {
		t.Fatal("expected refreshed credential on allow")
	}
}

func TestDecideBackendOutageFailsClosed(t *testing.T) {
	guard, store := newGuard(t)
	credential, err := store.Issue(context.Background(), "user_1", "")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	store.SetUnavailable(true)

	out := guard.Decide(context.Background(), "/dashboard", "", credential.Token)
	if out.Decision.Action != entities.ActionRedirect {
		t.Fatalf("backend outage must not bypass authentication, got %s", out.Decision.Action)
	}
	if out.Session.IsAuthenticated() {
		t.Fatal("expected anonymous session on backend outage")
	}
	if out.Credential.Token != "" {
		t.Fatal("expected no credential on backend outage")
	}
}
