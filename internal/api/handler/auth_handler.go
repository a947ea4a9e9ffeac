package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartclinic/clinic-system/internal/api/metrics"
	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// SessionRecorder tracks issued tokens so logout can revoke them.
type SessionRecorder interface {
	Put(ctx context.Context, token, role string) error
	Revoke(ctx context.Context, token string) error
}

// TokenIssuer mints anti-forgery tokens for the login pages.
type TokenIssuer interface {
	Issue() (string, error)
}

type AuthHandler struct {
	authService ports.AuthService
	sessions    SessionRecorder
	csrf        TokenIssuer
}

func NewAuthHandler(authService ports.AuthService, sessions SessionRecorder, csrf TokenIssuer) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, csrf: csrf}
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type emailLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerPatientRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type authResponse struct {
	Token string `json:"token,omitempty"`
	Role  string `json:"role,omitempty"`
}

// AdminLogin authenticates an administrator.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Admin credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.AdminLogin(c.Request().Context(), req.Username, req.Password)
	return h.finishLogin(c, domain.RoleAdmin, result, err)
}

// DoctorLogin authenticates a doctor.
//
// @Summary      Doctor login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      emailLoginRequest  true  "Doctor credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/doctor/login [post]
func (h *AuthHandler) DoctorLogin(c echo.Context) error {
	var req emailLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.DoctorLogin(c.Request().Context(), req.Email, req.Password)
	return h.finishLogin(c, domain.RoleDoctor, result, err)
}

// PatientLogin authenticates a patient.
//
// @Summary      Patient login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      emailLoginRequest  true  "Patient credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/patient/login [post]
func (h *AuthHandler) PatientLogin(c echo.Context) error {
	var req emailLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.PatientLogin(c.Request().Context(), req.Email, req.Password)
	return h.finishLogin(c, domain.RolePatient, result, err)
}

func (h *AuthHandler) finishLogin(c echo.Context, role domain.Role, result *ports.LoginResult, err error) error {
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(string(role), "failure").Inc()
		return err
	}

	if h.sessions != nil {
		// Best effort: a cache miss only means logout cannot revoke early.
		_ = h.sessions.Put(c.Request().Context(), result.Token, string(role))
	}

	metrics.LoginsTotal.WithLabelValues(string(role), "success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, Role: string(role)})
}

// RegisterPatient creates a patient account.
//
// @Summary      Register a new patient
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerPatientRequest  true  "Patient registration details"
// @Success      201   {object}  patientResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/patient/register [post]
func (h *AuthHandler) RegisterPatient(c echo.Context) error {
	var req registerPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patient, err := h.authService.RegisterPatient(c.Request().Context(), ports.RegisterPatientInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toPatientResponse(patient))
}

// Logout revokes the presented token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	if h.sessions != nil {
		if err := h.sessions.Revoke(c.Request().Context(), token); err != nil {
			return err
		}
	}
	return c.NoContent(http.StatusNoContent)
}

type csrfTokenResponse struct {
	Token string `json:"csrf_token"`
}

// CSRFToken issues an anti-forgery token for the login pages.
//
// @Summary      Issue an anti-forgery token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  csrfTokenResponse
// @Router       /csrf [get]
func (h *AuthHandler) CSRFToken(c echo.Context) error {
	token, err := h.csrf.Issue()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, csrfTokenResponse{Token: token})
}
