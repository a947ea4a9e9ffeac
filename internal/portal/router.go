package portal

import (
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// scrubDelay is how long after navigation the token is removed from
// the visible location. Long enough for the destination view to pick
// the token up, short enough that it is not left around to bookmark.
const scrubDelay = 500 * time.Millisecond

// destinations maps each role to its post-login view. One destination
// per role, no ambiguity.
var destinations = map[domain.Role]string{
	domain.RoleAdmin:         "/pages/adminDashboard.html",
	domain.RoleDoctor:        "/pages/doctorDashboard.html",
	domain.RoleLoggedPatient: "/pages/loggedPatientDashboard.html",
	domain.RolePatient:       "/pages/patientDashboard.html",
	domain.RoleGuest:         "/",
}

// RoleRouter computes the post-login destination for a session and
// performs the one-time navigation that transfers the token to the
// destination view.
type RoleRouter struct {
	nav      Navigator
	logger   zerolog.Logger
	schedule func(d time.Duration, f func())
}

func NewRoleRouter(nav Navigator, logger zerolog.Logger) *RoleRouter {
	return &RoleRouter{
		nav:    nav,
		logger: logger,
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// Destination returns the path a role lands on after login.
func Destination(role domain.Role) string {
	if dest, ok := destinations[role]; ok {
		return dest
	}
	return destinations[domain.RoleGuest]
}

// CompleteLogin navigates once to the role's destination with the
// token attached as a query parameter, then after a short delay
// replaces the visible location with the token-free destination. The
// scrub is best effort: the token has already reached the next view
// and the store keeps the only durable copy.
func (r *RoleRouter) CompleteLogin(session domain.Session) {
	dest := Destination(session.Role)

	q := url.Values{}
	q.Set("token", session.Token)
	r.nav.Navigate(dest + "?" + q.Encode())

	r.logger.Info().Str("role", string(session.Role)).Str("destination", dest).Msg("login routed")

	r.schedule(scrubDelay, func() {
		r.nav.Replace(dest)
	})
}

// NavigateHome returns the user to the landing page.
func (r *RoleRouter) NavigateHome() {
	r.nav.Navigate(destinations[domain.RoleGuest])
}
