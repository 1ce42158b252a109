package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/newsboard/newsboard/internal/domain/auth"
	apperrors "github.com/newsboard/newsboard/internal/errors"
	"github.com/newsboard/newsboard/internal/ports"
)

const (
	// AuthFailedMessage is shown when the gateway gives no usable message.
	AuthFailedMessage = "Authentication failed"
	// SignupSucceededMessage is shown after a signup whose reply carried no message.
	SignupSucceededMessage = "Signup successful! Please log in."

	defaultSessionTTL = 720 * time.Hour
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Gateway  ports.AuthGateway
	Sessions ports.SessionStore
	TTL      time.Duration
	Logger   *slog.Logger
	Now      func() time.Time
}

// AuthService submits credentials to the gateway and keeps the resulting identity in a session.
type AuthService struct {
	gateway  ports.AuthGateway
	sessions ports.SessionStore
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		gateway:  opts.Gateway,
		sessions: opts.Sessions,
		ttl:      ttl,
		logger:   logger.With("component", "auth_service"),
		now:      now,
	}
}

// LoginResult contains the session created by a successful login.
type LoginResult struct {
	Session domainauth.Session
	Message string
}

// Login posts credentials to the gateway. On an accepted reply it persists a
// session for the submitted email. A rejected reply returns an unauthorized
// error whose message is the one to show the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	creds := domainauth.Credentials{Email: email, Password: password}
	reply, err := s.gateway.Login(ctx, creds)
	if err != nil {
		s.logger.WarnContext(ctx, "login request failed", "email", email, "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}
	if !reply.Succeeded() {
		s.logger.WarnContext(ctx, "login rejected", "email", email, "status", reply.StatusCode)
		return nil, rejection(reply)
	}

	now := s.now()
	session := domainauth.Session{
		ID:        generateSessionID(),
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &LoginResult{Session: session, Message: reply.Message}, nil
}

// Signup posts credentials with a name to the gateway. It never creates a
// session; the returned message is the confirmation to show.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (string, error) {
	creds := domainauth.Credentials{Email: email, Password: password, Name: name}
	reply, err := s.gateway.Signup(ctx, creds)
	if err != nil {
		s.logger.WarnContext(ctx, "signup request failed", "email", email, "error", err)
		return "", fmt.Errorf("signup: %w", err)
	}
	if !reply.Succeeded() {
		s.logger.WarnContext(ctx, "signup rejected", "email", email, "status", reply.StatusCode)
		return "", rejection(reply)
	}

	if reply.Message == "" {
		return SignupSucceededMessage, nil
	}
	return reply.Message, nil
}

// Authenticate dispatches to Login or Signup by mode.
func (s *AuthService) Authenticate(
	ctx context.Context,
	mode domainauth.Mode,
	creds domainauth.Credentials,
) (*LoginResult, string, error) {
	if mode == domainauth.ModeSignup {
		msg, err := s.Signup(ctx, creds.Email, creds.Password, creds.Name)
		return nil, msg, err
	}
	res, err := s.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, "", err
	}
	return res, res.Message, nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(s.now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// AuthFailureMessage returns the text to show for a failed Login or Signup:
// the gateway's message when it sent one, else AuthFailedMessage.
func AuthFailureMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeUnauthorized && appErr.Message != "" {
		return appErr.Message
	}
	return AuthFailedMessage
}

func rejection(reply domainauth.Reply) error {
	msg := reply.Message
	if msg == "" {
		msg = AuthFailedMessage
	}
	return apperrors.Unauthorized(msg)
}

func generateSessionID() string {
	return uuid.New().String()
}
