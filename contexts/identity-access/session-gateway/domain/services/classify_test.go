package services

import (
	"testing"

	"meridian/contexts/identity-access/session-gateway/domain/entities"
)

func TestClassifyPathFirstMatchWins(t *testing.T) {
	cases := []struct {
		path string
		want entities.RouteClass
	}{
		{"/login", entities.RouteAuthPage},
		{"/login/sso", entities.RouteAuthPage},
		{"/signup", entities.RouteAuthPage},
		{"/", entities.RoutePublic},
		{"/share/abc123", entities.RoutePublic},
		{"/invite/tok", entities.RouteInvitePage},
		{"/org-invite/tok", entities.RouteInvitePage},
		{"/api", entities.RouteAPI},
		{"/api/me", entities.RouteAPI},
		{"/dashboard", entities.RouteProtected},
		{"/dashboard/projects/42", entities.RouteProtected},
		{"/settings", entities.RouteProtected},
		// overlapping literal prefixes must resolve by rule order
		{"/share", entities.RouteProtected},
		{"/invite", entities.RouteProtected},
		{"/apiary", entities.RouteAPI},
		{"", entities.RouteProtected},
	}

	for _, tc := range cases {
		if got := ClassifyPath(tc.path); got != tc.want {
			t.Fatalf("ClassifyPath(%q) = %s, want %s", tc.path, got, tc.want)
		}
		// classification is deterministic and session-independent
		if again := ClassifyPath(tc.path); again != ClassifyPath(tc.path) {
			t.Fatalf("ClassifyPath(%q) is not deterministic", tc.path)
		}
	}
}

func TestResolveReturnPathRejectsUnsafeTargets(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"/dashboard/projects/42", "/dashboard/projects/42"},
		{"/settings?tab=billing", "/settings?tab=billing"},
		{"", "/dashboard"},
		{"//evil.example", "/dashboard"},
		{"//evil.example/phish", "/dashboard"},
		{"https://evil.example", "/dashboard"},
		{"dashboard", "/dashboard"},
	}

	for _, tc := range cases {
		if got := ResolveReturnPath(tc.raw); got != tc.want {
			t.Fatalf("ResolveReturnPath(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
