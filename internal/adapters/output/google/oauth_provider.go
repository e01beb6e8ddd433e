package google

import (
	"context"
	"fmt"

	"drive-rag/configs"
	"drive-rag/internal/domain"
	"drive-rag/internal/ports/output"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// Compile-time check to ensure OAuthProvider implements IdentityProvider interface
var _ output.IdentityProvider = (*OAuthProvider)(nil)

// Scopes requested on the consent screen
var Scopes = []string{
	drive.DriveReadonlyScope,
	oauth2api.UserinfoProfileScope,
	oauth2api.UserinfoEmailScope,
	oauth2api.OpenIDScope,
}

// OAuthProvider struct - Output adapter for Google's OAuth 2.0 authorization-code flow
type OAuthProvider struct {
	config  *oauth2.Config
	options []option.ClientOption
}

// NewOAuthProvider func - Creates the identity adapter from the OAuth client config.
// opts are appended to every API client it builds.
func NewOAuthProvider(config configs.Google, opts ...option.ClientOption) *OAuthProvider {
	return &OAuthProvider{
		config: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURL,
			Scopes:       Scopes,
			Endpoint:     googleoauth.Endpoint,
		},
		options: opts,
	}
}

// AuthCodeURL returns the consent page URL. Offline access is requested so
// the exchange yields a refresh token.
func (p *OAuthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// Exchange trades an authorization code for credentials
func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*domain.Credentials, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to exchange authorization code: %v", domain.ErrInvalidRequest, err)
	}

	logrus.Debugf("Authorization code exchanged, refresh token present: %t", token.RefreshToken != "")

	return &domain.Credentials{
		Token:        token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenURI:     p.config.Endpoint.TokenURL,
		ClientID:     p.config.ClientID,
		ClientSecret: p.config.ClientSecret,
		Scopes:       append([]string(nil), p.config.Scopes...),
		Expiry:       token.Expiry,
	}, nil
}

// FetchProfile returns the signed-in user's name, email and picture
func (p *OAuthProvider) FetchProfile(ctx context.Context, credentials *domain.Credentials) (*domain.UserProfile, error) {
	opts := append([]option.ClientOption{option.WithTokenSource(TokenSource(ctx, credentials))}, p.options...)
	srv, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo service: %w", err)
	}

	info, err := srv.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}

	return &domain.UserProfile{
		Name:    info.Name,
		Email:   info.Email,
		Picture: info.Picture,
	}, nil
}

// TokenSource returns a refreshing token source for credentials. The
// credentials carry their own client id, secret and token endpoint.
// Refreshed tokens live only as long as the source and are not saved back.
func TokenSource(ctx context.Context, credentials *domain.Credentials) oauth2.TokenSource {
	endpoint := googleoauth.Endpoint
	if credentials.TokenURI != "" {
		endpoint.TokenURL = credentials.TokenURI
	}

	config := &oauth2.Config{
		ClientID:     credentials.ClientID,
		ClientSecret: credentials.ClientSecret,
		Scopes:       credentials.Scopes,
		Endpoint:     endpoint,
	}

	token := &oauth2.Token{
		AccessToken:  credentials.Token,
		RefreshToken: credentials.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       credentials.Expiry,
	}

	return config.TokenSource(ctx, token)
}
