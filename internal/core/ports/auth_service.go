package ports

import "context"

// AuthService implements registration, login and bearer-token resolution.
type AuthService interface {
	// Register creates a new user with a zero balance. No token is issued;
	// the caller logs in separately.
	Register(ctx context.Context, username, password string) error
	// Login verifies credentials and mints a fresh session token. Each call
	// yields a new, independently valid token.
	Login(ctx context.Context, username, password string) (string, error)
	// Authenticate resolves an Authorization header of the form
	// "Bearer <token>" to the username it belongs to.
	Authenticate(ctx context.Context, authHeader string) (string, error)
}

// LoginThrottle rate-limits failed login attempts per username. A nil
// throttle disables throttling entirely.
type LoginThrottle interface {
	// Allow reports whether another attempt for username may proceed.
	Allow(ctx context.Context, username string) (bool, error)
	// RecordFailure notes one failed attempt for username.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, username string) error
}
