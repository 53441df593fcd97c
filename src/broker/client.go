// Package broker implements the InvestRight order and market data gateways.
// Every gateway method performs at most one HTTP call and returns a result
// envelope with a status discriminator; transport failures never surface as
// Go errors to the caller.
package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Client performs authenticated requests against the versioned API host.
// Connection pooling and TLS belong to the injected *http.Client.
type Client struct {
	apiHost    string
	httpClient *http.Client
}

// NewClient creates a Client for the given API host, e.g.
// "https://developer.hdfcsec.com/oapi/v1". A nil httpClient gets a default
// with a 10 second timeout.
func NewClient(apiHost string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	return &Client{
		apiHost:    apiHost,
		httpClient: httpClient,
	}
}

// do performs one authenticated call and returns the raw body and status
// code. The returned error covers transport failures only; non-2xx statuses
// are the caller's concern.
func (c *Client) do(ctx context.Context, method, endpoint, auth string, payload []byte) ([]byte, int, error) {
	url := c.apiHost + endpoint

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, fmt.Errorf("Client.do: failed to create request: %w", err)
	}

	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", auth))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	log.Debugf("Request: %s %s", method, url)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("Client.do: request failed: %w", err)
	}

	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("Client.do: failed to read response body: %w", err)
	}

	return resBody, res.StatusCode, nil
}

// parseErrorMessage extracts a human-readable message from a broker error
// body. Unparseable bodies are passed through as-is.
func parseErrorMessage(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}

	var errBody struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &errBody); err != nil {
		return string(body)
	}

	if errBody.Message != "" {
		return errBody.Message
	}
	if errBody.Error != "" {
		return errBody.Error
	}

	return string(body)
}

func is2xx(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated
}
