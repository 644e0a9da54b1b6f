package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// HandleListPluginTraceLogs queries the plugintracelogs entity set.
// All parameters are optional; $top defaults to 25 downstream.
func (t *Toolset) HandleListPluginTraceLogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.dataverse == nil {
		return mcp.NewToolResultError(errDataverseNotConfigured), nil
	}

	q := queryFromRequest(request)
	body, err := t.dataverse.ListPluginTraceLogs(ctx, q)
	return forward(body, err)
}
