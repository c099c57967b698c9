// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"studentbook/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password
	// was incorrect. The same value is returned for an unknown username and
	// a wrong password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

const (
	sessionTTL  = 24 * time.Hour
	rememberTTL = 30 * 24 * time.Hour
)

// AuthService handles registration, authentication and session management.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// Register validates the registration form and creates the account. On a
// validation failure (including a taken username) it returns FieldErrors and
// writes nothing.
func (s *AuthService) Register(ctx context.Context, form *RegistrationForm) (*domain.User, error) {
	if err := form.Validate(ctx, s.users); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, form.Username, string(hash))
}

// Login authenticates a user and creates a session. The remember flag
// extends the session lifetime. The returned token is the only credential
// the client holds.
func (s *AuthService) Login(ctx context.Context, username, password string, remember bool) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return "", ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.createSession(ctx, user.ID, remember)
}

// Logout invalidates a session. Logging out an unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession resolves a session token to its user. Expired sessions are
// deleted on sight.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil || session == nil {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// SessionTTL returns how long a new session lives for the given remember flag.
func SessionTTL(remember bool) time.Duration {
	if remember {
		return rememberTTL
	}
	return sessionTTL
}

// LoginWithUser creates a session for an externally authenticated user, e.g.
// one arriving through SSO. The account is auto-provisioned on first login
// with an empty password hash, so it can never log in with a password.
func (s *AuthService) LoginWithUser(ctx context.Context, username string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		user, err = s.users.Create(ctx, username, "")
		if err != nil {
			createErr := err
			// Lost a race with a concurrent first login; the row exists now.
			user, err = s.users.GetByUsername(ctx, username)
			if err != nil {
				return "", err
			}
			if user == nil {
				// Not a race, the store genuinely failed the insert.
				return "", createErr
			}
		}
	}

	return s.createSession(ctx, user.ID, false)
}

func (s *AuthService) createSession(ctx context.Context, userID int64, remember bool) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(SessionTTL(remember))
	if err := s.sessions.Create(ctx, userID, token, remember, expiresAt); err != nil {
		return "", err
	}

	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
