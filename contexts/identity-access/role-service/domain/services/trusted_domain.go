package services

import "strings"

// MatchesTrustedDomain reports whether the email's domain equals the
// configured trusted domain. Pure function of its inputs so escalation is
// re-derived per request and cannot go stale under configuration reload.
// An empty configured domain never matches.
func MatchesTrustedDomain(email string, trustedDomain string) bool {
	trustedDomain = strings.ToLower(strings.TrimSpace(trustedDomain))
	if trustedDomain == "" {
		return false
	}
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	return strings.ToLower(email[at+1:]) == trustedDomain
}
