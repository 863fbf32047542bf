package entities

// GlobalRole is the persisted authorization level of an identity.
type GlobalRole string

const (
	RoleUser       GlobalRole = "user"
	RoleSuperAdmin GlobalRole = "super_admin"
)

// Role is the resolved authorization level for one request. IsSuperAdmin is
// true iff the persisted role is super_admin or the identity's email matches
// the trusted domain; the trusted-domain path is evaluated fresh on every
// check and never persisted.
type Role struct {
	GlobalRole   GlobalRole
	IsSuperAdmin bool
}

// Profile is the persisted identity row backing the role lookup.
type Profile struct {
	UserID     string
	GlobalRole GlobalRole
}

// Membership binds an identity to exactly one organization for default
// dashboard context. Absence of a membership is a distinct, reportable state.
type Membership struct {
	UserID           string
	OrganizationID   string
	OrganizationName string
}
