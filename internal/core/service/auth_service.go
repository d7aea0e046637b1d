package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/finledger/ledger-api/internal/api/metrics"
	"github.com/finledger/ledger-api/internal/core/domain"
	"github.com/finledger/ledger-api/internal/core/ports"
)

// tokenBytes is the entropy of a session token. 32 random bytes is well
// beyond the 128-bit floor needed to make guessing infeasible.
const tokenBytes = 32

// AuthService implements registration, login and token resolution over the
// snapshot store. Passwords are stored verbatim and compared with string
// equality — a documented weakness of the persisted format, kept so the
// register/login contract stays stable when hashing is introduced.
type AuthService struct {
	store    ports.SnapshotStore
	throttle ports.LoginThrottle
	logger   zerolog.Logger
}

// NewAuthService wires an AuthService. throttle may be nil, which disables
// login throttling.
func NewAuthService(store ports.SnapshotStore, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{store: store, throttle: throttle, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidInput
	}

	snap := s.store.Load(ctx)
	if _, exists := snap.Users[username]; exists {
		return domain.ErrUserExists
	}

	snap.Users[username] = &domain.User{
		Username:     username,
		Password:     password,
		Balance:      0,
		Transactions: []domain.Transaction{},
	}

	if err := s.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("persist registration: %w", err)
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("username", username).Msg("user registered")
	return nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		} else if !ok {
			metrics.AuthFailuresTotal.WithLabelValues("throttled").Inc()
			return "", domain.ErrTooManyAttempts
		}
	}

	snap := s.store.Load(ctx)
	user, ok := snap.Users[username]
	if !ok || user.Password != password {
		if s.throttle != nil {
			if err := s.throttle.RecordFailure(ctx, username); err != nil {
				s.logger.Warn().Err(err).Msg("failed to record login failure")
			}
		}
		metrics.AuthFailuresTotal.WithLabelValues("bad_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	snap.Sessions[token] = username

	if err := s.store.Save(ctx, snap); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	metrics.LoginsTotal.Inc()
	s.logger.Info().Str("username", username).Msg("login succeeded")
	return token, nil
}

// Authenticate resolves "Bearer <token>" to a username. The token must be
// present in the session map and its user record must still exist.
func (s *AuthService) Authenticate(ctx context.Context, authHeader string) (string, error) {
	token, err := parseBearer(authHeader)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("bad_header").Inc()
		return "", err
	}

	snap := s.store.Load(ctx)
	username, ok := snap.Sessions[token]
	if !ok {
		metrics.AuthFailuresTotal.WithLabelValues("unknown_token").Inc()
		return "", domain.ErrInvalidToken
	}
	if _, ok := snap.Users[username]; !ok {
		metrics.AuthFailuresTotal.WithLabelValues("orphaned_token").Inc()
		return "", domain.ErrInvalidToken
	}
	return username, nil
}

// parseBearer extracts the token from an Authorization header. Any scheme
// other than Bearer, or a missing token, is rejected.
func parseBearer(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", domain.ErrInvalidToken
	}
	return parts[1], nil
}

// newToken returns an opaque hex token from a cryptographically strong
// random source.
func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
