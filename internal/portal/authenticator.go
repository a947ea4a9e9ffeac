package portal

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// Authenticator exchanges credentials for a session token against the
// role-specific login endpoint, writes the session to the store, and
// hands off to the role router.
type Authenticator struct {
	api    ClinicAPI
	csrf   AntiForgeryTokenSource
	store  Store
	router *RoleRouter
	logger zerolog.Logger
}

func NewAuthenticator(api ClinicAPI, csrf AntiForgeryTokenSource, store Store, router *RoleRouter, logger zerolog.Logger) *Authenticator {
	return &Authenticator{api: api, csrf: csrf, store: store, router: router, logger: logger}
}

// Login authenticates the given role. Exactly one network call is made
// per invocation, and the store is written exactly once on success and
// not at all on failure. On success the role router completes the
// login with a single navigation.
func (a *Authenticator) Login(ctx context.Context, role domain.Role, creds Credentials) (domain.Session, error) {
	if role != domain.RoleAdmin && role != domain.RoleDoctor {
		return domain.Session{}, &ValidationError{Msg: "unsupported login role: " + string(role)}
	}

	creds.Identifier = strings.TrimSpace(creds.Identifier)
	creds.Password = strings.TrimSpace(creds.Password)
	if creds.Identifier == "" || creds.Password == "" {
		return domain.Session{}, &ValidationError{Msg: loginFieldPrompt(role)}
	}

	csrfToken := ""
	if a.csrf != nil {
		t, err := a.csrf.AntiForgeryToken(ctx)
		if err != nil {
			// The page-level token source is a collaborator outside
			// this flow; its failure is not the credential call's.
			a.logger.Warn().Err(err).Msg("anti-forgery token unavailable")
		} else {
			csrfToken = t
		}
	}

	token, err := a.api.Login(ctx, role, creds, csrfToken)
	if err != nil {
		a.logger.Error().Err(err).Str("role", string(role)).Msg("login failed")
		return domain.Session{}, err
	}
	if token == "" {
		// The transport reported success but the body carried no
		// token; the store must stay untouched.
		return domain.Session{}, &ProtocolError{Msg: "no token received"}
	}

	session := domain.Session{Token: token, Role: role}
	a.store.Set(KeyToken, session.Token)
	a.store.Set(KeyRole, string(session.Role))

	a.logger.Info().Str("role", string(role)).Msg("login succeeded")

	if a.router != nil {
		a.router.CompleteLogin(session)
	}
	return session, nil
}

// Logout tears the session down: the store is cleared and the user is
// returned to the landing page.
func (a *Authenticator) Logout() {
	a.store.Clear()
	if a.router != nil {
		a.router.NavigateHome()
	}
}

func loginFieldPrompt(role domain.Role) string {
	if role == domain.RoleAdmin {
		return "Please enter both username and password"
	}
	return "Please enter both email and password"
}
