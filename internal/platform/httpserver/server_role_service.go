package httpserver

import (
	"errors"
	"net/http"

	roleerrors "meridian/contexts/identity-access/role-service/domain/errors"
	rolehttp "meridian/contexts/identity-access/role-service/transport/http"
)

func writeRoleError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, rolehttp.ErrorResponse{Code: code, Message: message})
}

func writeRoleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, roleerrors.ErrInvalidUserID):
		writeRoleError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, roleerrors.ErrProfileNotFound),
		errors.Is(err, roleerrors.ErrMembershipNotFound):
		writeRoleError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeRoleError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	session := requestSession(r)
	if !session.IsAuthenticated() {
		writeRoleError(w, http.StatusUnauthorized, "unauthorized", "Not authenticated")
		return
	}

	resp, err := s.roles.Handler.MeHandler(r.Context(), session.UserID, session.Email)
	if err != nil {
		writeRoleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkspace(w http.ResponseWriter, r *http.Request) {
	session := requestSession(r)
	if !session.IsAuthenticated() {
		writeRoleError(w, http.StatusUnauthorized, "unauthorized", "Not authenticated")
		return
	}

	resp, err := s.roles.Handler.WorkspaceHandler(r.Context(), session.UserID)
	if err != nil {
		writeRoleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
