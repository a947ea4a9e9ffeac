package portal

// Error kinds raised by the portal core. All of them are caught at the
// nearest UI-facing boundary (the login submit path or a card action
// handler) and converted to a user-visible message; none are fatal to
// the surrounding page.

// ValidationError reports missing or malformed user input. No network
// call is made when one is raised.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// AuthError reports a missing or rejected session token.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

// ProtocolError reports a transport-level success whose body is
// missing an expected field.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string { return e.Msg }

// TransportError reports a network failure or an unexpected remote
// status.
type TransportError struct {
	Msg string
	Err error
}

func (e *TransportError) Error() string { return e.Msg }

func (e *TransportError) Unwrap() error { return e.Err }
