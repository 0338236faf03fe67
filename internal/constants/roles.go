package constants

// Role is the permission level carried in a user's token
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// String returns the role name
func (r Role) String() string { return string(r) }

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// RoleForStaff maps the is_staff flag stored on a user to a token role
func RoleForStaff(isStaff bool) Role {
	if isStaff {
		return RoleAdmin
	}
	return RoleCustomer
}
