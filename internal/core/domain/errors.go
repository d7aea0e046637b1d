package domain

import "errors"

// Sentinel errors returned by the core services. The HTTP layer maps each
// one to a deterministic status code; anything else is a server fault.
var (
	// ErrInvalidInput covers malformed or missing request fields, including
	// non-positive or non-finite amounts.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserExists signals a registration against an already taken username.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials signals a login with an unknown username or a
	// password that does not match the stored value.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken signals a missing, malformed or unresolvable bearer
	// token, including tokens whose user record no longer exists.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInsufficientFunds signals a withdrawal larger than the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrTooManyAttempts signals that the login throttle tripped for a
	// username before credentials were checked.
	ErrTooManyAttempts = errors.New("too many login attempts")
)
