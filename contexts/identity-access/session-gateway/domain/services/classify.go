package services

import (
	"strings"

	"meridian/contexts/identity-access/session-gateway/domain/entities"
)

// DefaultReturnPath is where authenticated callers land when no usable
// redirect target accompanies an auth-page request.
const DefaultReturnPath = "/dashboard"

// ClassifyPath maps a request path to its RouteClass. Rules are evaluated in
// order, first match wins; the ordering matters because the literal prefixes
// overlap (fixed categories are checked before the protected fallback).
func ClassifyPath(path string) entities.RouteClass {
	switch {
	case strings.HasPrefix(path, "/login") || strings.HasPrefix(path, "/signup"):
		return entities.RouteAuthPage
	case path == "/" || strings.HasPrefix(path, "/share/"):
		return entities.RoutePublic
	case strings.HasPrefix(path, "/invite/") || strings.HasPrefix(path, "/org-invite/"):
		return entities.RouteInvitePage
	case strings.HasPrefix(path, "/api"):
		return entities.RouteAPI
	default:
		return entities.RouteProtected
	}
}

// ResolveReturnPath validates a caller-supplied post-login destination.
// Only same-origin relative paths are honored; anything else, including
// protocol-relative values like "//evil.example", falls back to the
// dashboard to prevent open redirects.
func ResolveReturnPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return DefaultReturnPath
	}
	return raw
}
