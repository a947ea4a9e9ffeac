package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware
// and performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - doctor and patient roles require a non-empty subject_id linking
//     the token to an actual record; without it the JWT is structurally
//     valid but operationally unusable, so reject with 401.
func ctxClaims(c echo.Context) (role domain.Role, subjectID string, err error) {
	roleStr, _ := c.Get("role").(string)
	if roleStr == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role = domain.ParseRole(roleStr)

	subjectID, _ = c.Get("subject_id").(string)
	if (role == domain.RoleDoctor || role == domain.RolePatient) && subjectID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing subject identity")
	}

	return role, subjectID, nil
}
