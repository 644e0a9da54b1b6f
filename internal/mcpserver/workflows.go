package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"dataverse-mcp/internal/dataverse"
)

// HandleListWorkflows queries the workflows entity set.
func (t *Toolset) HandleListWorkflows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.dataverse == nil {
		return mcp.NewToolResultError(errDataverseNotConfigured), nil
	}

	q := queryFromRequest(request)
	body, err := t.dataverse.ListWorkflows(ctx, q)
	return forward(body, err)
}

// HandleGetWorkflow retrieves one workflow by GUID.
// Parameters:
//   - workflow_id (string, required): GUID of the workflow
//   - select (string, optional)
func (t *Toolset) HandleGetWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.dataverse == nil {
		return mcp.NewToolResultError(errDataverseNotConfigured), nil
	}

	id, errResult := requireGUID(request, "workflow_id")
	if errResult != nil {
		return errResult, nil
	}

	q := queryFromRequest(request)
	body, err := t.dataverse.GetWorkflow(ctx, id, q)
	return forward(body, err)
}

// HandleActivateWorkflow sets a workflow to the active state.
// The workflow_id is validated as a GUID before any network call.
func (t *Toolset) HandleActivateWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.setWorkflowState(ctx, request, dataverse.WorkflowStateActive, dataverse.WorkflowStatusActivated)
}

// HandleDeactivateWorkflow sets a workflow back to the draft state.
func (t *Toolset) HandleDeactivateWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.setWorkflowState(ctx, request, dataverse.WorkflowStateDraft, dataverse.WorkflowStatusDraft)
}

func (t *Toolset) setWorkflowState(ctx context.Context, request mcp.CallToolRequest, stateCode, statusCode int) (*mcp.CallToolResult, error) {
	if t.dataverse == nil {
		return mcp.NewToolResultError(errDataverseNotConfigured), nil
	}

	id, errResult := requireGUID(request, "workflow_id")
	if errResult != nil {
		return errResult, nil
	}

	body, err := t.dataverse.SetWorkflowState(ctx, id, stateCode, statusCode)
	if err == nil && body == "" {
		// Dataverse answers PATCH with 204 No Content on success.
		return mcp.NewToolResultText("Workflow state updated."), nil
	}
	return forward(body, err)
}
