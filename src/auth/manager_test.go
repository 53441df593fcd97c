package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradekit/investright/src/config"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func testConfig(authHost string) config.Config {
	return config.Config{
		APIKey:      "client-id",
		APISecret:   "client-secret",
		RedirectURI: "http://localhost:8000/auth/callback",
		AuthHost:    authHost,
	}
}

func Test_AuthorizationURL(t *testing.T) {
	t.Run("builds the authorize URL", func(t *testing.T) {
		// arrange
		manager := NewManager(testConfig("https://broker.example"), nil)

		// act
		authURL, err := manager.AuthorizationURL("xyz")

		// assert
		require.NoError(t, err)

		parsed, err := url.Parse(authURL)
		require.NoError(t, err)
		assert.Equal(t, "/oauth/authorize", parsed.Path)
		assert.Equal(t, "client-id", parsed.Query().Get("client_id"))
		assert.Equal(t, "http://localhost:8000/auth/callback", parsed.Query().Get("redirect_uri"))
		assert.Equal(t, "code", parsed.Query().Get("response_type"))
		assert.Equal(t, "xyz", parsed.Query().Get("state"))
		assert.Equal(t, "trading placement", parsed.Query().Get("scope"))
	})

	t.Run("empty state takes the default", func(t *testing.T) {
		manager := NewManager(testConfig("https://broker.example"), nil)

		authURL, err := manager.AuthorizationURL("")
		require.NoError(t, err)

		parsed, err := url.Parse(authURL)
		require.NoError(t, err)
		require.Equal(t, DefaultState, parsed.Query().Get("state"))
	})

	t.Run("missing client id is a hard failure", func(t *testing.T) {
		manager := NewManager(config.Config{}, nil)

		_, err := manager.AuthorizationURL("xyz")

		require.Error(t, err)
	})
}

func Test_ExchangeCode(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the token set on 200", func(t *testing.T) {
		// arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/oauth/token", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			require.Equal(t, "client-id", user)
			require.Equal(t, "client-secret", pass)

			require.NoError(t, r.ParseForm())
			require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			require.Equal(t, "the-code", r.PostForm.Get("code"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"at","refresh_token":"rt","token_type":"bearer","expires_in":3600}`))
		}))
		defer server.Close()

		manager := NewManager(testConfig(server.URL), server.Client())

		// act
		token := manager.ExchangeCode(ctx, "the-code")

		// assert
		require.NotNil(t, token)
		assert.Equal(t, "at", token.AccessToken)
		assert.Equal(t, "rt", token.RefreshToken)
		assert.False(t, token.Expired())
	})

	t.Run("missing credentials yields nil without raising", func(t *testing.T) {
		manager := NewManager(config.Config{AuthHost: "https://broker.example"}, nil)

		require.Nil(t, manager.ExchangeCode(ctx, "the-code"))
	})

	t.Run("non-200 yields nil", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
		}))
		defer server.Close()

		manager := NewManager(testConfig(server.URL), server.Client())

		require.Nil(t, manager.ExchangeCode(ctx, "stale-code"))
	})

	t.Run("transport failure yields nil", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		serverURL := server.URL
		server.Close()

		manager := NewManager(testConfig(serverURL), nil)

		require.Nil(t, manager.ExchangeCode(ctx, "the-code"))
	})
}

func Test_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("posts grant_type=refresh_token", func(t *testing.T) {
		// arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			require.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
			require.Equal(t, "old-rt", r.PostForm.Get("refresh_token"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"new-at","refresh_token":"new-rt","token_type":"bearer","expires_in":3600}`))
		}))
		defer server.Close()

		manager := NewManager(testConfig(server.URL), server.Client())

		// act
		token := manager.RefreshToken(ctx, "old-rt")

		// assert
		require.NotNil(t, token)
		require.Equal(t, "new-at", token.AccessToken)
		require.Equal(t, "new-rt", token.RefreshToken)
	})

	t.Run("missing credentials yields nil", func(t *testing.T) {
		manager := NewManager(config.Config{AuthHost: "https://broker.example"}, nil)

		require.Nil(t, manager.RefreshToken(ctx, "old-rt"))
	})

	t.Run("broker rejection yields nil", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusUnauthorized)
		}))
		defer server.Close()

		manager := NewManager(testConfig(server.URL), server.Client())

		require.Nil(t, manager.RefreshToken(ctx, "revoked-rt"))
	})
}

func Test_IsTokenValid(t *testing.T) {
	ctx := context.Background()

	t.Run("200 from the profile probe means valid", func(t *testing.T) {
		// arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/oapi/v1/account/profile", r.URL.Path)
			require.Equal(t, "Bearer at", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		manager := NewManager(testConfig(server.URL), nil)

		// act + assert
		require.True(t, manager.IsTokenValid(ctx, "at"))
	})

	t.Run("non-200 means invalid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		manager := NewManager(testConfig(server.URL), nil)

		require.False(t, manager.IsTokenValid(ctx, "expired"))
	})

	t.Run("probe goes through the injected client", func(t *testing.T) {
		// arrange: a client whose transport answers without touching the network
		var probed *http.Request
		client := &http.Client{
			Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
				probed = r
				return &http.Response{
					StatusCode: http.StatusOK,
					Header:     make(http.Header),
					Body:       http.NoBody,
				}, nil
			}),
		}

		manager := NewManager(testConfig("https://broker.example"), client)

		// act
		valid := manager.IsTokenValid(ctx, "at")

		// assert
		require.True(t, valid)
		require.NotNil(t, probed)
		require.Equal(t, "/oapi/v1/account/profile", probed.URL.Path)

		deadline, ok := probed.Context().Deadline()
		require.True(t, ok)
		require.False(t, deadline.IsZero())
	})

	t.Run("transport failure means invalid, never an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		serverURL := server.URL
		server.Close()

		manager := NewManager(testConfig(serverURL), nil)

		require.False(t, manager.IsTokenValid(ctx, "at"))
	})
}
