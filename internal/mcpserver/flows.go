package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// HandleListFlows lists the flows in the configured environment.
func (t *Toolset) HandleListFlows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.flow == nil {
		return mcp.NewToolResultError(errFlowNotConfigured), nil
	}

	q := queryFromRequest(request)
	body, err := t.flow.ListFlows(ctx, q)
	return forward(body, err)
}

// HandleGetFlow retrieves one flow by its GUID name.
func (t *Toolset) HandleGetFlow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.flow == nil {
		return mcp.NewToolResultError(errFlowNotConfigured), nil
	}

	flow, errResult := requireGUID(request, "flow_name")
	if errResult != nil {
		return errResult, nil
	}

	body, err := t.flow.GetFlow(ctx, flow)
	return forward(body, err)
}

// HandleListFlowTriggers lists a flow's triggers.
func (t *Toolset) HandleListFlowTriggers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.flow == nil {
		return mcp.NewToolResultError(errFlowNotConfigured), nil
	}

	flow, errResult := requireGUID(request, "flow_name")
	if errResult != nil {
		return errResult, nil
	}

	body, err := t.flow.ListTriggers(ctx, flow)
	return forward(body, err)
}

// HandleGetFlowTriggerCallbackURL obtains the callback URL of a request trigger.
// Parameters:
//   - flow_name (string, required): GUID name of the flow
//   - trigger_name (string, required): trigger name
func (t *Toolset) HandleGetFlowTriggerCallbackURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.flow == nil {
		return mcp.NewToolResultError(errFlowNotConfigured), nil
	}

	flow, errResult := requireGUID(request, "flow_name")
	if errResult != nil {
		return errResult, nil
	}
	trigger, errResult := requireString(request, "trigger_name")
	if errResult != nil {
		return errResult, nil
	}

	body, err := t.flow.GetTriggerCallbackURL(ctx, flow, trigger)
	return forward(body, err)
}

// HandleListFlowRuns lists a flow's run history.
func (t *Toolset) HandleListFlowRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.flow == nil {
		return mcp.NewToolResultError(errFlowNotConfigured), nil
	}

	flow, errResult := requireGUID(request, "flow_name")
	if errResult != nil {
		return errResult, nil
	}

	q := queryFromRequest(request)
	body, err := t.flow.ListRuns(ctx, flow, q)
	return forward(body, err)
}

// HandleGetFlowRun retrieves one run by name.
func (t *Toolset) HandleGetFlowRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.flow == nil {
		return mcp.NewToolResultError(errFlowNotConfigured), nil
	}

	flow, errResult := requireGUID(request, "flow_name")
	if errResult != nil {
		return errResult, nil
	}
	run, errResult := requireString(request, "run_name")
	if errResult != nil {
		return errResult, nil
	}

	body, err := t.flow.GetRun(ctx, flow, run)
	return forward(body, err)
}

// HandleGetFlowRunActions retrieves one run with its actions expanded.
func (t *Toolset) HandleGetFlowRunActions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.flow == nil {
		return mcp.NewToolResultError(errFlowNotConfigured), nil
	}

	flow, errResult := requireGUID(request, "flow_name")
	if errResult != nil {
		return errResult, nil
	}
	run, errResult := requireString(request, "run_name")
	if errResult != nil {
		return errResult, nil
	}

	body, err := t.flow.GetRunActions(ctx, flow, run)
	return forward(body, err)
}

// HandleListFlowTriggerHistories lists the invocation history of a trigger.
func (t *Toolset) HandleListFlowTriggerHistories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.flow == nil {
		return mcp.NewToolResultError(errFlowNotConfigured), nil
	}

	flow, errResult := requireGUID(request, "flow_name")
	if errResult != nil {
		return errResult, nil
	}
	trigger, errResult := requireString(request, "trigger_name")
	if errResult != nil {
		return errResult, nil
	}

	q := queryFromRequest(request)
	body, err := t.flow.ListTriggerHistories(ctx, flow, trigger, q)
	return forward(body, err)
}
