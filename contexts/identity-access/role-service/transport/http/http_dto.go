package httptransport

// MeResponse describes the caller's resolved identity and role.
type MeResponse struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email,omitempty"`
	GlobalRole   string `json:"global_role"`
	IsSuperAdmin bool   `json:"is_super_admin"`
}

// WorkspaceResponse describes the caller's default organization context.
type WorkspaceResponse struct {
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
