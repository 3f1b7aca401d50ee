package transport

import (
	"net/http"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {
	// No authentication applied
}

// BearerAuth implements Bearer token authentication (Yandex.Market).
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// HeaderAuth sets a single custom header.
type HeaderAuth struct {
	Header string
	Value  string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request) {
	req.Header.Set(a.Header, a.Value)
}

// MultiAuth applies several authenticators in order.
type MultiAuth []Authenticator

// Apply implements the Authenticator interface for MultiAuth.
func (m MultiAuth) Apply(req *http.Request) {
	for _, a := range m {
		if a != nil {
			a.Apply(req)
		}
	}
}

// SellerAuth builds the Client-Id / Api-Key header pair used by Ozon.
func SellerAuth(clientID, apiKey string) Authenticator {
	return MultiAuth{
		&HeaderAuth{Header: "Client-Id", Value: clientID},
		&HeaderAuth{Header: "Api-Key", Value: apiKey},
	}
}
