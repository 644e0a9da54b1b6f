// Package dataverse wraps the Dataverse Web API v9.2 endpoints used by the
// MCP tools. Each method maps to exactly one HTTP request.
package dataverse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"dataverse-mcp/internal/auth"
	"dataverse-mcp/internal/odata"
	"dataverse-mcp/internal/webapi"
)

const (
	apiPath = "/api/data/v9.2"

	// DefaultTraceLogTop caps plugin trace log listings when the caller does
	// not specify $top.
	DefaultTraceLogTop = 25

	// Workflow state transitions per the Dataverse process state model.
	WorkflowStateActive     = 1
	WorkflowStatusActivated = 2
	WorkflowStateDraft      = 0
	WorkflowStatusDraft     = 1
)

// Client issues Dataverse Web API calls for one organization.
type Client struct {
	inv     *webapi.Invoker
	baseURL string
}

// NewClient builds a client for the given org URL (no trailing slash).
// The token audience is the org itself: "{orgURL}/.default".
func NewClient(httpClient *http.Client, tokens auth.TokenProvider, orgURL string) *Client {
	headers := map[string]string{
		"OData-MaxVersion": "4.0",
		"OData-Version":    "4.0",
	}
	return &Client{
		inv:     webapi.NewInvoker(httpClient, tokens, orgURL+"/.default", headers),
		baseURL: orgURL + apiPath,
	}
}

// collectionURL joins an entity set with the encoded query options.
func (c *Client) collectionURL(entitySet string, q odata.Query) string {
	u := c.baseURL + "/" + entitySet
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// ListPluginTraceLogs queries the plugintracelogs entity set. $top defaults
// to DefaultTraceLogTop when unset.
func (c *Client) ListPluginTraceLogs(ctx context.Context, q odata.Query) (string, error) {
	if q.Top <= 0 {
		q.Top = DefaultTraceLogTop
	}
	return c.inv.Get(ctx, c.collectionURL("plugintracelogs", q))
}

// QueryTable queries an arbitrary entity set with the given options.
func (c *Client) QueryTable(ctx context.Context, entitySet string, q odata.Query) (string, error) {
	return c.inv.Get(ctx, c.collectionURL(entitySet, q))
}

// GetRow retrieves one record by primary key GUID.
func (c *Client) GetRow(ctx context.Context, entitySet, id string, q odata.Query) (string, error) {
	u := fmt.Sprintf("%s/%s(%s)", c.baseURL, entitySet, id)
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return c.inv.Get(ctx, u)
}

// ListWorkflows queries the workflows entity set.
func (c *Client) ListWorkflows(ctx context.Context, q odata.Query) (string, error) {
	return c.QueryTable(ctx, "workflows", q)
}

// GetWorkflow retrieves one workflow by GUID.
func (c *Client) GetWorkflow(ctx context.Context, id string, q odata.Query) (string, error) {
	return c.GetRow(ctx, "workflows", id, q)
}

// SetWorkflowState patches a workflow's statecode/statuscode pair. Used for
// both activation and deactivation.
func (c *Client) SetWorkflowState(ctx context.Context, id string, stateCode, statusCode int) (string, error) {
	body, err := json.Marshal(map[string]int{
		"statecode":  stateCode,
		"statuscode": statusCode,
	})
	if err != nil {
		return "", fmt.Errorf("encoding workflow state body: %w", err)
	}
	u := fmt.Sprintf("%s/workflows(%s)", c.baseURL, id)
	return c.inv.Patch(ctx, u, string(body))
}

// ListEntityDefinitions queries the EntityDefinitions metadata set.
func (c *Client) ListEntityDefinitions(ctx context.Context, q odata.Query) (string, error) {
	return c.inv.Get(ctx, c.collectionURL("EntityDefinitions", q))
}

// GetEntityDefinition retrieves one entity definition by logical name.
func (c *Client) GetEntityDefinition(ctx context.Context, logicalName string, q odata.Query) (string, error) {
	u := fmt.Sprintf("%s/EntityDefinitions(LogicalName='%s')", c.baseURL, logicalName)
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return c.inv.Get(ctx, u)
}

// ListEntityAttributes retrieves the attribute metadata of one entity.
func (c *Client) ListEntityAttributes(ctx context.Context, logicalName string, q odata.Query) (string, error) {
	u := fmt.Sprintf("%s/EntityDefinitions(LogicalName='%s')/Attributes", c.baseURL, logicalName)
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return c.inv.Get(ctx, u)
}
