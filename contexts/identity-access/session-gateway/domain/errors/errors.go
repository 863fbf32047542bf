package errors

import "errors"

var (
	// ErrNoSession means the presented credential does not resolve to a live
	// session: absent cookie, bad signature, or an expired/revoked record.
	ErrNoSession = errors.New("no session")

	// ErrCredentialBackend means the credential store itself failed. The
	// guard collapses this into an anonymous session so a backend outage can
	// never become an authentication bypass.
	ErrCredentialBackend = errors.New("credential backend unavailable")
)
