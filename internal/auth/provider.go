// Package auth acquires bearer tokens for the downstream REST surfaces.
//
// Tokens are obtained with the OAuth2 client-credentials grant against the
// Entra ID v2.0 token endpoint. Tokens are cached per audience scope and
// reminted only once the provider-managed expiry passes.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenProvider yields a bearer token valid for the given audience scope.
type TokenProvider interface {
	Token(ctx context.Context, scope string) (string, error)
}

// ClientCredentialsProvider implements TokenProvider using the
// client-credentials grant. It is safe for concurrent use; all tool
// invocations share one instance so cached tokens and the underlying HTTP
// transport are reused across calls.
type ClientCredentialsProvider struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client

	mu     sync.Mutex
	tokens map[string]*oauth2.Token
}

// NewClientCredentialsProvider builds a provider for the given app
// registration. httpClient may be nil, in which case the oauth2 package's
// default client performs token requests.
func NewClientCredentialsProvider(clientID, clientSecret, tokenURL string, httpClient *http.Client) *ClientCredentialsProvider {
	return &ClientCredentialsProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		httpClient:   httpClient,
		tokens:       make(map[string]*oauth2.Token),
	}
}

// Token returns a bearer token for scope, minting one only when the cached
// token for that scope is missing or expired.
func (p *ClientCredentialsProvider) Token(ctx context.Context, scope string) (string, error) {
	if scope == "" {
		return "", fmt.Errorf("token scope must not be empty")
	}

	p.mu.Lock()
	if tok, ok := p.tokens[scope]; ok && tok.Valid() {
		p.mu.Unlock()
		return tok.AccessToken, nil
	}
	p.mu.Unlock()

	cfg := &clientcredentials.Config{
		ClientID:     p.clientID,
		ClientSecret: p.clientSecret,
		TokenURL:     p.tokenURL,
		Scopes:       []string{scope},
	}
	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}
	tok, err := cfg.TokenSource(ctx).Token()
	if err != nil {
		return "", fmt.Errorf("acquiring token for scope %s: %w", scope, err)
	}

	p.mu.Lock()
	p.tokens[scope] = tok
	p.mu.Unlock()

	return tok.AccessToken, nil
}

// StaticProvider returns a fixed token for every scope. Test helper.
type StaticProvider struct {
	AccessToken string
}

// Token implements TokenProvider.
func (s StaticProvider) Token(ctx context.Context, scope string) (string, error) {
	return s.AccessToken, nil
}
