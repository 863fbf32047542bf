package httptransport

// ReassignOrganizationRequest is the PATCH body for a cross-tenant project
// transfer.
type ReassignOrganizationRequest struct {
	OrganizationID string `json:"organizationId"`
}

// ReassignOrganizationResponse acknowledges a committed transfer; no further
// payload is required.
type ReassignOrganizationResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
