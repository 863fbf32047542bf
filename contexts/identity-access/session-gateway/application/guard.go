package application

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"meridian/contexts/identity-access/session-gateway/domain/entities"
	domainerrors "meridian/contexts/identity-access/session-gateway/domain/errors"
	"meridian/contexts/identity-access/session-gateway/domain/services"
	"meridian/contexts/identity-access/session-gateway/ports"
)

// GuardDecision carries everything the transport needs to finish the
// request: the access outcome, the session for downstream handlers, and the
// refreshed cookie material (zero when the caller is anonymous).
type GuardDecision struct {
	Decision   entities.AccessDecision
	RouteClass entities.RouteClass
	Session    entities.Session
	Credential ports.RefreshedCredential
}

// GuardUseCase is the single choke point every request passes through before
// any business logic executes.
type GuardUseCase struct {
	Credentials ports.CredentialStore
	Logger      *slog.Logger
}

// Decide refreshes the caller's session, classifies the path, and applies
// the redirect/allow policy. A credential-backend failure is collapsed into
// an anonymous session: the guard fails closed toward re-authentication and
// never fails open.
func (u GuardUseCase) Decide(ctx context.Context, path string, rawQuery string, token string) GuardDecision {
	logger := ResolveLogger(u.Logger)

	session, credential, err := u.Credentials.Refresh(ctx, token)
	if err != nil {
		session = entities.Session{}
		credential = ports.RefreshedCredential{}
		if errors.Is(err, domainerrors.ErrCredentialBackend) {
			logger.Error("session refresh backend failed, treating caller as anonymous",
				"event", "guard_refresh_backend_failed",
				"module", "identity-access/session-gateway",
				"layer", "application",
				"path", path,
				"error", err.Error(),
			)
		}
	}

	class := services.ClassifyPath(path)
	out := GuardDecision{
		Decision:   entities.AccessDecision{Action: entities.ActionAllow},
		RouteClass: class,
		Session:    session,
		Credential: credential,
	}

	switch {
	case !session.IsAuthenticated() && class == entities.RouteProtected:
		out.Decision = entities.AccessDecision{
			Action:   entities.ActionRedirect,
			Location: loginRedirect(path, rawQuery),
		}
		logger.Info("anonymous caller redirected to login",
			"event", "guard_redirect_login",
			"module", "identity-access/session-gateway",
			"layer", "application",
			"path", path,
		)
	case session.IsAuthenticated() && class == entities.RouteAuthPage:
		target := services.ResolveReturnPath(returnParam(rawQuery))
		out.Decision = entities.AccessDecision{
			Action:   entities.ActionRedirect,
			Location: target,
		}
		logger.Info("authenticated caller redirected off auth page",
			"event", "guard_redirect_return",
			"module", "identity-access/session-gateway",
			"layer", "application",
			"path", path,
			"target", target,
		)
	}

	return out
}

// loginRedirect preserves the original path and query so the caller lands
// back where they started after authenticating.
func loginRedirect(path string, rawQuery string) string {
	original := path
	if rawQuery != "" {
		original += "?" + rawQuery
	}
	return "/login?redirect=" + url.QueryEscape(original)
}

func returnParam(rawQuery string) string {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return ""
	}
	return values.Get("redirect")
}
