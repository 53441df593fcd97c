// Package auth manages the InvestRight OAuth2 token lifecycle: building the
// authorization URL, exchanging the callback code for tokens, refreshing
// tokens and probing a token's liveness. Tokens are returned as plain data;
// the caller owns persistence and schedules its own refreshes.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/tradekit/investright/src/config"
	"github.com/tradekit/investright/src/models"
)

// DefaultState is the anti-forgery state used when the caller does not supply
// one.
const DefaultState = "investright_state"

const tokenValidationTimeout = 5 * time.Second

// Manager drives the OAuth2 flow against the auth host. Exchange and refresh
// never return Go errors: a failure is logged and reported as a nil token.
type Manager struct {
	cfg        config.Config
	httpClient *http.Client
}

// NewManager creates a Manager. A nil httpClient gets a default with a
// 10 second timeout.
func NewManager(cfg config.Config, httpClient *http.Client) *Manager {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	return &Manager{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// AuthorizationURL builds the URL the user opens in a browser to grant
// access. This is the one configuration check that fails hard: without a
// client id there is no flow to start.
func (m *Manager) AuthorizationURL(state string) (string, error) {
	if m.cfg.APIKey == "" {
		return "", fmt.Errorf("AuthorizationURL: broker API key is not configured")
	}

	if state == "" {
		state = DefaultState
	}

	return m.oauthConfig().AuthCodeURL(state), nil
}

// ExchangeCode trades the authorization code from the OAuth callback for a
// token set. Returns nil on any failure, including missing credentials.
func (m *Manager) ExchangeCode(ctx context.Context, code string) *models.Token {
	if m.cfg.APIKey == "" || m.cfg.APISecret == "" {
		log.Error("ExchangeCode: broker API key or secret is not configured")
		return nil
	}

	tok, err := m.oauthConfig().Exchange(m.oauthContext(ctx), code)
	if err != nil {
		log.Errorf("ExchangeCode: failed to exchange authorization code: %v", err)
		return nil
	}

	return tokenFromOAuth2(tok)
}

// RefreshToken trades a refresh token for a fresh token set. Same nil-on-
// failure contract as ExchangeCode.
func (m *Manager) RefreshToken(ctx context.Context, refreshToken string) *models.Token {
	if m.cfg.APIKey == "" || m.cfg.APISecret == "" {
		log.Error("RefreshToken: broker API key or secret is not configured")
		return nil
	}

	src := m.oauthConfig().TokenSource(m.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})

	tok, err := src.Token()
	if err != nil {
		log.Errorf("RefreshToken: failed to refresh token: %v", err)
		return nil
	}

	return tokenFromOAuth2(tok)
}

// IsTokenValid probes the account profile endpoint with the bearer token and
// a short timeout. Anything but a 200 means invalid; failures never
// propagate.
func (m *Manager) IsTokenValid(ctx context.Context, accessToken string) bool {
	ctx, cancel := context.WithTimeout(ctx, tokenValidationTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/oapi/v1/account/profile", m.cfg.AuthHost)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Warnf("IsTokenValid: failed to create request: %v", err)
		return false
	}

	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	req.Header.Add("Content-Type", "application/json")

	res, err := m.httpClient.Do(req)
	if err != nil {
		log.Warnf("IsTokenValid: token validation failed: %v", err)
		return false
	}

	defer res.Body.Close()

	return res.StatusCode == http.StatusOK
}

func (m *Manager) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     m.cfg.APIKey,
		ClientSecret: m.cfg.APISecret,
		RedirectURL:  m.cfg.RedirectURI,
		Scopes:       []string{"trading", "placement"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  fmt.Sprintf("%s/oauth/authorize", m.cfg.AuthHost),
			TokenURL: fmt.Sprintf("%s/oauth/token", m.cfg.AuthHost),
			// The token endpoint expects HTTP Basic client credentials.
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// oauthContext makes the oauth2 package use the injected HTTP client.
func (m *Manager) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
}

func tokenFromOAuth2(tok *oauth2.Token) *models.Token {
	return &models.Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}
}
