package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"dataverse-mcp/internal/config"
)

// NewServer creates and configures a new MCP server with all Dataverse and
// Flow API tools registered. The Toolset built from cfg is shared by every
// handler so concurrent calls reuse one HTTP transport and token cache.
func NewServer(cfg config.Config) (*server.MCPServer, error) {
	ts := NewToolset(cfg)

	s := server.NewMCPServer(
		"dataverse-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Dataverse Web API tools
	s.AddTool(listPluginTraceLogsTool(), ts.HandleListPluginTraceLogs)
	s.AddTool(queryTableTool(), ts.HandleQueryTable)
	s.AddTool(getTableRowTool(), ts.HandleGetTableRow)
	s.AddTool(listWorkflowsTool(), ts.HandleListWorkflows)
	s.AddTool(getWorkflowTool(), ts.HandleGetWorkflow)
	s.AddTool(activateWorkflowTool(), ts.HandleActivateWorkflow)
	s.AddTool(deactivateWorkflowTool(), ts.HandleDeactivateWorkflow)
	s.AddTool(listEntityDefinitionsTool(), ts.HandleListEntityDefinitions)
	s.AddTool(getEntityDefinitionTool(), ts.HandleGetEntityDefinition)
	s.AddTool(listEntityAttributesTool(), ts.HandleListEntityAttributes)

	// Power Automate Flow API tools
	s.AddTool(listFlowsTool(), ts.HandleListFlows)
	s.AddTool(getFlowTool(), ts.HandleGetFlow)
	s.AddTool(listFlowTriggersTool(), ts.HandleListFlowTriggers)
	s.AddTool(getFlowTriggerCallbackURLTool(), ts.HandleGetFlowTriggerCallbackURL)
	s.AddTool(listFlowRunsTool(), ts.HandleListFlowRuns)
	s.AddTool(getFlowRunTool(), ts.HandleGetFlowRun)
	s.AddTool(getFlowRunActionsTool(), ts.HandleGetFlowRunActions)
	s.AddTool(listFlowTriggerHistoriesTool(), ts.HandleListFlowTriggerHistories)

	return s, nil
}
