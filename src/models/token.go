package models

import "time"

// Token is an OAuth2 token set. The adapter never persists it; callers own
// storage and pass the access token into every gateway call.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// Expired reports whether the token's expiry has passed. Tokens without an
// expiry are treated as live.
func (t Token) Expired() bool {
	if t.Expiry.IsZero() {
		return false
	}
	return t.Expiry.Before(time.Now())
}
