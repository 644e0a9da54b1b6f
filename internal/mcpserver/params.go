package mcpserver

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"dataverse-mcp/internal/odata"
)

// logicalNameRegex validates Dataverse entity set and logical names before
// they are spliced into a request path.
var logicalNameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// isValidLogicalName checks if a name is a valid Dataverse logical name.
func isValidLogicalName(name string) bool {
	return logicalNameRegex.MatchString(name)
}

// queryFromRequest collects the optional OData parameters from a tool call.
// Absent parameters stay zero and are omitted from the built URL.
func queryFromRequest(request mcp.CallToolRequest) odata.Query {
	return odata.Query{
		Select:  request.GetString("select", ""),
		Filter:  request.GetString("filter", ""),
		OrderBy: request.GetString("orderby", ""),
		Expand:  request.GetString("expand", ""),
		Apply:   request.GetString("apply", ""),
		Top:     request.GetInt("top", 0),
	}
}

// requireGUID extracts a required GUID parameter and normalizes it to the
// canonical dashed form. Validation happens before any token acquisition or
// network call; a malformed value produces an immediate error result.
func requireGUID(request mcp.CallToolRequest, name string) (string, *mcp.CallToolResult) {
	raw, err := request.RequireString(name)
	if err != nil || raw == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("Missing required parameter: %s", name))
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", mcp.NewToolResultError(fmt.Sprintf("Parameter %s must be a valid GUID, got %q", name, raw))
	}
	return id.String(), nil
}

// requireLogicalName extracts a required entity set or logical name.
func requireLogicalName(request mcp.CallToolRequest, name string) (string, *mcp.CallToolResult) {
	raw, err := request.RequireString(name)
	if err != nil || raw == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("Missing required parameter: %s", name))
	}
	if !isValidLogicalName(raw) {
		return "", mcp.NewToolResultError(fmt.Sprintf("Invalid %s: %s", name, raw))
	}
	return raw, nil
}

// requireString extracts a required non-empty string parameter.
func requireString(request mcp.CallToolRequest, name string) (string, *mcp.CallToolResult) {
	raw, err := request.RequireString(name)
	if err != nil || raw == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("Missing required parameter: %s", name))
	}
	return raw, nil
}
