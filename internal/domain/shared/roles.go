package shared

// Role identifies what an authenticated caller is allowed to do.
// Token issuance happens outside this service; the role arrives
// resolved in the auth context and is trusted.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
	RoleOwner    Role = "owner"
)

// IsValid checks if the role is recognized
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// CanManageAnyOrder reports whether the role may transition any order
func (r Role) CanManageAnyOrder() bool {
	return r == RoleAdmin || r == RoleOwner
}
