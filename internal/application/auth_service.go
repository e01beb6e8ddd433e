package application

import (
	"context"
	"fmt"
	"strings"

	"drive-rag/internal/domain"
	"drive-rag/internal/ports/input"
	"drive-rag/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure AuthService implements the input port
var _ input.AuthService = (*AuthService)(nil)

// StateSigner binds the OAuth state parameter to a session key
type StateSigner interface {
	Sign(sessionKey string) (string, error)
	Verify(state string) (string, error)
}

// AuthService struct - Application service for the Google sign-in flow and per-session settings
type AuthService struct {
	sessions    output.SessionStore
	identity    output.IdentityProvider
	state       StateSigner
	frontendURL string
}

// NewAuthService func - Creates new auth service
func NewAuthService(sessions output.SessionStore, identity output.IdentityProvider, state StateSigner, frontendURL string) *AuthService {
	return &AuthService{
		sessions:    sessions,
		identity:    identity,
		state:       state,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
	}
}

// Login func - Use case: build the consent URL for the session
func (s *AuthService) Login(ctx context.Context, sessionKey string) (*domain.LoginURL, error) {
	if sessionKey == "" {
		return nil, domain.ErrSessionKeyMissing
	}

	state, err := s.state.Sign(sessionKey)
	if err != nil {
		return nil, err
	}

	return &domain.LoginURL{URL: s.identity.AuthCodeURL(state)}, nil
}

// Callback func - Use case: store the credentials granted on the consent screen
func (s *AuthService) Callback(ctx context.Context, request domain.CallbackRequest) (string, error) {
	if request.State == "" {
		return "", domain.ErrInvalidState
	}

	sessionKey, err := s.state.Verify(request.State)
	if err != nil {
		logrus.Warnf("Rejected OAuth callback: %v", err)
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}

	if request.Code == "" {
		return "", fmt.Errorf("%w: authorization code is required", domain.ErrInvalidRequest)
	}

	credentials, err := s.identity.Exchange(ctx, request.Code)
	if err != nil {
		return "", err
	}

	// A missing profile only affects what the client displays
	profile, err := s.identity.FetchProfile(ctx, credentials)
	if err != nil {
		logrus.Warnf("Failed to fetch user profile: %v", err)
		profile = &domain.UserProfile{}
	}

	session, err := s.loadOrCreate(ctx, sessionKey)
	if err != nil {
		return "", err
	}
	session.Credentials = credentials
	session.User = profile

	if err := s.sessions.UpdateSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	logrus.Infof("Session authenticated for %s", profile.Email)

	return s.frontendURL + "?auth=success", nil
}

// Status func - Use case: report what the session is set up for
func (s *AuthService) Status(ctx context.Context, sessionKey string) (*domain.AuthStatus, error) {
	if sessionKey == "" {
		return &domain.AuthStatus{}, nil
	}

	session, err := s.sessions.GetSession(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return &domain.AuthStatus{}, nil
	}

	return &domain.AuthStatus{
		Authenticated: session.IsAuthenticated(),
		IsAPIKeySet:   session.HasAPIKey(),
		User:          session.User,
	}, nil
}

// SaveAPIKey func - Use case: remember the user's Gemini API key
func (s *AuthService) SaveAPIKey(ctx context.Context, sessionKey, apiKey string) error {
	if sessionKey == "" {
		return domain.ErrSessionKeyMissing
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("%w: api key is required", domain.ErrInvalidRequest)
	}

	session, err := s.loadOrCreate(ctx, sessionKey)
	if err != nil {
		return err
	}
	session.APIKey = apiKey

	if err := s.sessions.UpdateSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Logout func - Use case: forget everything stored for the session
func (s *AuthService) Logout(ctx context.Context, sessionKey string) error {
	if sessionKey == "" {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, sessionKey); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *AuthService) loadOrCreate(ctx context.Context, sessionKey string) (*domain.Session, error) {
	session, err := s.sessions.GetSession(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		session = domain.NewSession(sessionKey)
	}
	return session, nil
}
