package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"meridian/contexts/internal-ops/tenant-transfer-service/domain/entities"
	transfererrors "meridian/contexts/internal-ops/tenant-transfer-service/domain/errors"
	transferhttp "meridian/contexts/internal-ops/tenant-transfer-service/transport/http"
)

func writeTransferError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, transferhttp.ErrorResponse{Error: message})
}

func writeTransferDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transfererrors.ErrUnauthenticated):
		writeTransferError(w, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, transfererrors.ErrForbidden):
		writeTransferError(w, http.StatusForbidden, "Not authorized")
	case errors.Is(err, transfererrors.ErrInvalidRequest):
		writeTransferError(w, http.StatusBadRequest, "Organization ID is required")
	case errors.Is(err, transfererrors.ErrOrganizationNotFound):
		writeTransferError(w, http.StatusNotFound, "Organization not found")
	case errors.Is(err, transfererrors.ErrProjectNotFound):
		writeTransferError(w, http.StatusNotFound, "Project not found")
	default:
		writeTransferError(w, http.StatusInternalServerError, "Failed to update project organization")
	}
}

func (s *Server) handleReassignOrganization(w http.ResponseWriter, r *http.Request) {
	// Authentication is checked before the body is touched so an anonymous
	// caller always sees 401, never a body validation error.
	session := requestSession(r)
	if !session.IsAuthenticated() {
		writeTransferError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	caller := entities.Caller{UserID: session.UserID, Email: session.Email}

	resourceID := strings.TrimSpace(r.PathValue("resource_id"))

	var req transferhttp.ReassignOrganizationRequest
	writeDecodeError := func(w http.ResponseWriter, status int, _ string, message string) {
		writeTransferError(w, status, message)
	}
	if !s.decodeJSON(w, r, &req, writeDecodeError) {
		return
	}

	resp, err := s.transfers.Handler.ReassignOrganizationHandler(r.Context(), caller, resourceID, req)
	if err != nil {
		writeTransferDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
