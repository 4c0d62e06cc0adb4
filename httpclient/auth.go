package httpclient

import "net/http"

// AuthConfig is a credential sent as a single request header.
type AuthConfig struct {
	Header string
	Value  string
}

// BearerAuth sends token as "Authorization: Bearer <token>".
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Header: "Authorization", Value: "Bearer " + token}
}

// APIKeyAuthHeader sends key verbatim under headerName.
func APIKeyAuthHeader(key, headerName string) *AuthConfig {
	return &AuthConfig{Header: headerName, Value: key}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Header == "" {
		return
	}
	req.Header.Set(a.Header, a.Value)
}
