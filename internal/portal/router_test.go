package portal

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

func TestDestination_PerRole(t *testing.T) {
	cases := []struct {
		role domain.Role
		want string
	}{
		{domain.RoleAdmin, "/pages/adminDashboard.html"},
		{domain.RoleDoctor, "/pages/doctorDashboard.html"},
		{domain.RoleLoggedPatient, "/pages/loggedPatientDashboard.html"},
		{domain.RolePatient, "/pages/patientDashboard.html"},
		{domain.RoleGuest, "/"},
		{domain.Role("intruder"), "/"},
	}
	for _, tc := range cases {
		if got := Destination(tc.role); got != tc.want {
			t.Fatalf("role %s: expected %q, got %q", tc.role, tc.want, got)
		}
	}
}

func TestCompleteLogin_NavigatesWithTokenThenScrubs(t *testing.T) {
	nav := &stubNav{}
	router := immediateRouter(nav)

	router.CompleteLogin(domain.Session{Token: "t0k&n", Role: domain.RoleAdmin})

	if len(nav.navigated) != 1 {
		t.Fatalf("expected one navigation, got %d", len(nav.navigated))
	}
	if nav.navigated[0] != "/pages/adminDashboard.html?token=t0k%26n" {
		t.Fatalf("token must be query-escaped: %q", nav.navigated[0])
	}
	if len(nav.replaced) != 1 || nav.replaced[0] != "/pages/adminDashboard.html" {
		t.Fatalf("expected token-free replace, got %v", nav.replaced)
	}
}

func TestCompleteLogin_ScrubIsDeferred(t *testing.T) {
	nav := &stubNav{}
	router := NewRoleRouter(nav, zerolog.Nop())

	var pending func()
	router.schedule = func(_ time.Duration, f func()) { pending = f }

	router.CompleteLogin(domain.Session{Token: "abc", Role: domain.RoleDoctor})

	if len(nav.navigated) != 1 {
		t.Fatalf("expected one navigation, got %d", len(nav.navigated))
	}
	if len(nav.replaced) != 0 {
		t.Fatalf("scrub must not run before the delay elapses")
	}
	if pending == nil {
		t.Fatalf("expected a scheduled scrub")
	}
	pending()
	if len(nav.replaced) != 1 || nav.replaced[0] != "/pages/doctorDashboard.html" {
		t.Fatalf("expected deferred scrub, got %v", nav.replaced)
	}
}
