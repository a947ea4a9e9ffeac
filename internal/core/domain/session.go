package domain

// Session pairs a bearer token with the role it was issued for. Both
// halves are required: a token without a role (or the reverse) is an
// inconsistent state and readers must treat it as no session at all.
type Session struct {
	Token string
	Role  Role
}

// Valid reports whether both halves of the session are present.
func (s Session) Valid() bool {
	return s.Token != "" && s.Role != "" && s.Role != RoleGuest
}
