package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// HandleQueryTable queries rows from an arbitrary entity set.
// Parameters:
//   - table (string, required): entity set name
//   - select, filter, orderby, expand, apply (string, optional)
//   - top (int, optional)
func (t *Toolset) HandleQueryTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.dataverse == nil {
		return mcp.NewToolResultError(errDataverseNotConfigured), nil
	}

	table, errResult := requireLogicalName(request, "table")
	if errResult != nil {
		return errResult, nil
	}

	q := queryFromRequest(request)
	body, err := t.dataverse.QueryTable(ctx, table, q)
	return forward(body, err)
}

// HandleGetTableRow retrieves a single row by primary key GUID.
// Parameters:
//   - table (string, required): entity set name
//   - row_id (string, required): GUID of the row
//   - select, expand (string, optional)
func (t *Toolset) HandleGetTableRow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.dataverse == nil {
		return mcp.NewToolResultError(errDataverseNotConfigured), nil
	}

	table, errResult := requireLogicalName(request, "table")
	if errResult != nil {
		return errResult, nil
	}
	rowID, errResult := requireGUID(request, "row_id")
	if errResult != nil {
		return errResult, nil
	}

	q := queryFromRequest(request)
	body, err := t.dataverse.GetRow(ctx, table, rowID, q)
	return forward(body, err)
}
