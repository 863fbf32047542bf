package entities

import "time"

// Organization is a tenant: the isolation boundary most resources belong to.
type Organization struct {
	OrganizationID string
	Name           string
}

// Project is the resource whose owning organization can be reassigned across
// tenant boundaries by a super admin.
type Project struct {
	ProjectID      string
	OrganizationID string
	Name           string
	UpdatedAt      time.Time
}

// Caller is the authenticated identity attempting the mutation, as
// established by the session gateway. A zero Caller is anonymous.
type Caller struct {
	UserID string
	Email  string
}

func (c Caller) IsAuthenticated() bool {
	return c.UserID != ""
}
