// Package httpclient implements the portal's remote collaborator
// contracts over HTTP against the clinic API.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/doyensec/safeurl"

	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/portal"
)

const defaultTimeout = 10 * time.Second

// Client talks to the clinic API. It implements portal.ClinicAPI and
// portal.AntiForgeryTokenSource.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL. When httpClient is nil
// an SSRF-guarded client is used; tests inject their own.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = NewSafeHTTPClient(defaultTimeout)
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// NewSafeHTTPClient returns an HTTP client that refuses requests to
// private, loopback, and link-local addresses. The dialer re-checks
// resolved IPs, so DNS rebinding is covered too.
func NewSafeHTTPClient(timeout time.Duration) *http.Client {
	cfg := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("http", "https").
		Build()
	return safeurl.Client(cfg).Client
}

type loginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

// Login posts credentials to the role-specific endpoint, attaching
// the anti-forgery token when one is supplied.
func (c *Client) Login(ctx context.Context, role domain.Role, creds portal.Credentials, csrfToken string) (string, error) {
	var path string
	var body loginRequest
	switch role {
	case domain.RoleAdmin:
		path = "/auth/admin/login"
		body = loginRequest{Username: creds.Identifier, Password: creds.Password}
	case domain.RoleDoctor:
		path = "/auth/doctor/login"
		body = loginRequest{Email: creds.Identifier, Password: creds.Password}
	default:
		return "", &portal.ValidationError{Msg: "no login endpoint for role " + string(role)}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", &portal.TransportError{Msg: "Login failed", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", &portal.TransportError{Msg: "Login failed", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if csrfToken != "" {
		req.Header.Set("X-CSRF-Token", csrfToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &portal.TransportError{Msg: "Login failed", Err: err}
	}
	defer resp.Body.Close()

	var decoded loginResponse
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := decoded.Error
		if msg == "" {
			msg = "Login failed"
		}
		return "", &portal.AuthError{Msg: msg}
	}

	return decoded.Token, nil
}

// DeleteDoctor removes a doctor using the bearer token.
func (c *Client) DeleteDoctor(ctx context.Context, doctorID, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/doctors/"+doctorID, nil)
	if err != nil {
		return &portal.TransportError{Msg: "delete request failed", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return &portal.TransportError{Msg: "delete request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteError(resp, "delete rejected")
	}
	return nil
}

type patientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// GetPatientData fetches the authenticated patient's record.
func (c *Client) GetPatientData(ctx context.Context, token string) (*domain.Patient, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/patients/me", nil)
	if err != nil {
		return nil, &portal.TransportError{Msg: "patient fetch failed", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &portal.TransportError{Msg: "patient fetch failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, remoteError(resp, "patient fetch rejected")
	}

	var decoded patientResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &portal.ProtocolError{Msg: "malformed patient response"}
	}

	return &domain.Patient{
		ID:      decoded.ID,
		Name:    decoded.Name,
		Email:   decoded.Email,
		Phone:   decoded.Phone,
		Address: decoded.Address,
	}, nil
}

type csrfResponse struct {
	Token string `json:"csrf_token"`
}

// AntiForgeryToken fetches the page-level anti-forgery token.
func (c *Client) AntiForgeryToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/csrf", nil)
	if err != nil {
		return "", &portal.TransportError{Msg: "csrf fetch failed", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &portal.TransportError{Msg: "csrf fetch failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", remoteError(resp, "csrf fetch rejected")
	}

	var decoded csrfResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil || decoded.Token == "" {
		return "", &portal.ProtocolError{Msg: "no csrf token received"}
	}
	return decoded.Token, nil
}

// remoteError converts a non-success response into an error carrying
// the server's message when one is present.
func remoteError(resp *http.Response, fallback string) error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &body)

	msg := body.Error
	if msg == "" {
		msg = fmt.Sprintf("%s (status %d)", fallback, resp.StatusCode)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &portal.AuthError{Msg: msg}
	}
	return &portal.TransportError{Msg: msg}
}
