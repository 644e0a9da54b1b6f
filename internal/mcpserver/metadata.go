package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// HandleListEntityDefinitions queries the EntityDefinitions metadata set.
func (t *Toolset) HandleListEntityDefinitions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.dataverse == nil {
		return mcp.NewToolResultError(errDataverseNotConfigured), nil
	}

	q := queryFromRequest(request)
	body, err := t.dataverse.ListEntityDefinitions(ctx, q)
	return forward(body, err)
}

// HandleGetEntityDefinition retrieves one entity definition by logical name.
func (t *Toolset) HandleGetEntityDefinition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.dataverse == nil {
		return mcp.NewToolResultError(errDataverseNotConfigured), nil
	}

	entity, errResult := requireLogicalName(request, "entity")
	if errResult != nil {
		return errResult, nil
	}

	q := queryFromRequest(request)
	body, err := t.dataverse.GetEntityDefinition(ctx, entity, q)
	return forward(body, err)
}

// HandleListEntityAttributes retrieves one entity's attribute metadata.
func (t *Toolset) HandleListEntityAttributes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.dataverse == nil {
		return mcp.NewToolResultError(errDataverseNotConfigured), nil
	}

	entity, errResult := requireLogicalName(request, "entity")
	if errResult != nil {
		return errResult, nil
	}

	q := queryFromRequest(request)
	body, err := t.dataverse.ListEntityAttributes(ctx, entity, q)
	return forward(body, err)
}
