// Package flowapi wraps the Power Automate Flow API endpoints used by the
// MCP tools. All paths live under one environment and every call pins
// api-version=2016-11-01.
package flowapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"dataverse-mcp/internal/auth"
	"dataverse-mcp/internal/odata"
	"dataverse-mcp/internal/webapi"
)

const (
	// DefaultBaseURL is the public Flow API endpoint.
	DefaultBaseURL = "https://api.flow.microsoft.com"

	// Scope is the token audience for the Flow API.
	Scope = "https://service.flow.microsoft.com/.default"

	apiVersion = "2016-11-01"
)

// Client issues Flow API calls for one Power Platform environment.
type Client struct {
	inv      *webapi.Invoker
	flowBase string
}

// NewClient builds a client for the given environment GUID. baseURL is
// overridable for tests; pass "" for the public endpoint.
func NewClient(httpClient *http.Client, tokens auth.TokenProvider, environmentID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		inv: webapi.NewInvoker(httpClient, tokens, Scope, nil),
		flowBase: fmt.Sprintf("%s/providers/Microsoft.ProcessSimple/environments/%s/flows",
			baseURL, url.PathEscape(environmentID)),
	}
}

// buildURL joins path segments onto the flows base and appends the pinned
// api-version plus any OData options.
func (c *Client) buildURL(path string, q odata.Query) string {
	v := q.Values()
	v.Set("api-version", apiVersion)
	return c.flowBase + path + "?" + v.Encode()
}

// ListFlows lists the flows in the environment.
func (c *Client) ListFlows(ctx context.Context, q odata.Query) (string, error) {
	return c.inv.Get(ctx, c.buildURL("", q))
}

// GetFlow retrieves one flow by name (a GUID).
func (c *Client) GetFlow(ctx context.Context, flow string) (string, error) {
	return c.inv.Get(ctx, c.buildURL("/"+url.PathEscape(flow), odata.Query{}))
}

// ListTriggers lists a flow's triggers.
func (c *Client) ListTriggers(ctx context.Context, flow string) (string, error) {
	return c.inv.Get(ctx, c.buildURL("/"+url.PathEscape(flow)+"/triggers", odata.Query{}))
}

// GetTriggerCallbackURL obtains the invocation URL of a request trigger.
// The Flow API models this as a POST with no body.
func (c *Client) GetTriggerCallbackURL(ctx context.Context, flow, trigger string) (string, error) {
	path := fmt.Sprintf("/%s/triggers/%s/listCallbackUrl", url.PathEscape(flow), url.PathEscape(trigger))
	return c.inv.Post(ctx, c.buildURL(path, odata.Query{}), "")
}

// ListRuns lists a flow's run history.
func (c *Client) ListRuns(ctx context.Context, flow string, q odata.Query) (string, error) {
	return c.inv.Get(ctx, c.buildURL("/"+url.PathEscape(flow)+"/runs", q))
}

// GetRun retrieves one run by name.
func (c *Client) GetRun(ctx context.Context, flow, run string) (string, error) {
	path := fmt.Sprintf("/%s/runs/%s", url.PathEscape(flow), url.PathEscape(run))
	return c.inv.Get(ctx, c.buildURL(path, odata.Query{}))
}

// GetRunActions retrieves a run with its actions expanded. The Flow API
// exposes run actions through $expand on the run resource rather than a
// sub-collection.
func (c *Client) GetRunActions(ctx context.Context, flow, run string) (string, error) {
	path := fmt.Sprintf("/%s/runs/%s", url.PathEscape(flow), url.PathEscape(run))
	return c.inv.Get(ctx, c.buildURL(path, odata.Query{Expand: "properties/actions"}))
}

// ListTriggerHistories lists the invocation history of one trigger.
func (c *Client) ListTriggerHistories(ctx context.Context, flow, trigger string, q odata.Query) (string, error) {
	path := fmt.Sprintf("/%s/triggers/%s/histories", url.PathEscape(flow), url.PathEscape(trigger))
	return c.inv.Get(ctx, c.buildURL(path, q))
}
