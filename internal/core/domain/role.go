package domain

// Role is the category of an acting principal. It drives which UI
// affordances are attached to rendered cards and which API routes a
// token is accepted on.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleDoctor        Role = "doctor"
	RolePatient       Role = "patient"
	RoleLoggedPatient Role = "loggedPatient"
	RoleGuest         Role = "guest"
)

// ParseRole maps a stored role string to a Role. Anything outside the
// closed set collapses to RoleGuest so an absent or tampered value can
// never resolve to a privileged role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleDoctor, RolePatient, RoleLoggedPatient:
		return Role(s)
	default:
		return RoleGuest
	}
}

// Known reports whether r is one of the defined roles (guest included).
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient, RoleLoggedPatient, RoleGuest:
		return true
	}
	return false
}
