// Package webapi issues authenticated REST calls and normalizes failures.
//
// Every outbound request carries a bearer token for the invoker's audience
// scope. Non-success responses are not retried; their bodies are normalized
// into a uniform error JSON document that the caller passes through to the
// client.
package webapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dataverse-mcp/internal/auth"
)

// Invoker sends requests to one downstream REST surface. It is stateless
// with respect to any individual call, so a single instance is shared by
// concurrent tool invocations to reuse the HTTP transport and token cache.
type Invoker struct {
	httpClient *http.Client
	tokens     auth.TokenProvider
	scope      string
	headers    map[string]string
}

// NewInvoker builds an invoker that authenticates with tokens scoped to
// scope and adds the given extra headers to every request. httpClient may
// be nil, in which case http.DefaultClient is used.
func NewInvoker(httpClient *http.Client, tokens auth.TokenProvider, scope string, headers map[string]string) *Invoker {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Invoker{
		httpClient: httpClient,
		tokens:     tokens,
		scope:      scope,
		headers:    headers,
	}
}

// Get issues a GET and returns the response body.
func (i *Invoker) Get(ctx context.Context, rawURL string) (string, error) {
	return i.do(ctx, http.MethodGet, rawURL, "")
}

// Post issues a POST with an optional JSON body and returns the response body.
func (i *Invoker) Post(ctx context.Context, rawURL, body string) (string, error) {
	return i.do(ctx, http.MethodPost, rawURL, body)
}

// Patch issues a PATCH with a JSON body and returns the response body.
func (i *Invoker) Patch(ctx context.Context, rawURL, body string) (string, error) {
	return i.do(ctx, http.MethodPatch, rawURL, body)
}

// do performs one HTTP round trip. On a non-2xx status it returns the
// normalized error document together with a *StatusError; transport and
// token failures return an empty body and a plain error.
func (i *Invoker) do(ctx context.Context, method, rawURL, body string) (string, error) {
	token, err := i.tokens.Token(ctx, i.scope)
	if err != nil {
		return "", err
	}

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return "", fmt.Errorf("building %s request for %s: %w", method, rawURL, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range i.headers {
		req.Header.Set(k, v)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response from %s: %w", rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		doc := NormalizeError(resp.StatusCode, respBody)
		return doc, &StatusError{StatusCode: resp.StatusCode, Doc: doc}
	}

	return string(respBody), nil
}
