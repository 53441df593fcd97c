// Package config holds the broker credentials and endpoints. A Config is
// built once from the environment and injected into each component, so no
// package reads environment variables at call time.
package config

import "os"

const (
	DefaultAuthHost    = "https://developer.hdfcsec.com"
	DefaultAPIHost     = "https://developer.hdfcsec.com/oapi/v1"
	DefaultRedirectURI = "http://localhost:8000/auth/callback"
)

type Config struct {
	// APIKey doubles as the OAuth2 client id.
	APIKey      string
	APISecret   string
	RedirectURI string

	// AuthHost serves /oauth/* and the profile probe; APIHost serves the
	// versioned trading and market data endpoints.
	AuthHost string
	APIHost  string
}

// FromEnv builds a Config from BROKER_* environment variables, falling back
// to the production InvestRight hosts.
func FromEnv() Config {
	return Config{
		APIKey:      os.Getenv("BROKER_API_KEY"),
		APISecret:   os.Getenv("BROKER_API_SECRET"),
		RedirectURI: getenvDefault("BROKER_REDIRECT_URI", DefaultRedirectURI),
		AuthHost:    getenvDefault("INVESTRIGHT_AUTH_HOST", DefaultAuthHost),
		APIHost:     getenvDefault("INVESTRIGHT_API_HOST", DefaultAPIHost),
	}
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
