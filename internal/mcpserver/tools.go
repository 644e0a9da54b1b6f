// Package mcpserver provides an MCP server exposing Dataverse Web API and
// Power Automate Flow API operations as tools.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ---------------------------------------------------------------------------
// Dataverse tool definitions
// ---------------------------------------------------------------------------

// listPluginTraceLogsTool returns a tool definition for querying plugin trace logs.
func listPluginTraceLogsTool() mcp.Tool {
	return mcp.NewTool("list_plugin_trace_logs",
		mcp.WithDescription("Query Dataverse plugin trace logs (plugintracelogs). Returns at most 25 entries unless 'top' is specified."),
		mcp.WithString("select",
			mcp.Description("OData $select: comma-separated columns to return")),
		mcp.WithString("filter",
			mcp.Description("OData $filter expression (e.g. \"typename eq 'MyPlugin'\")")),
		mcp.WithString("orderby",
			mcp.Description("OData $orderby expression (e.g. 'createdon desc')")),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of entries to return (default 25)")),
	)
}

// queryTableTool returns a tool definition for querying an arbitrary table.
func queryTableTool() mcp.Tool {
	return mcp.NewTool("query_table",
		mcp.WithDescription("Query rows from a Dataverse table by its entity set name (e.g. 'accounts', 'contacts'). Supports the common OData query options."),
		mcp.WithString("table",
			mcp.Required(),
			mcp.Description("Entity set name of the table to query")),
		mcp.WithString("select",
			mcp.Description("OData $select: comma-separated columns to return")),
		mcp.WithString("filter",
			mcp.Description("OData $filter expression")),
		mcp.WithString("orderby",
			mcp.Description("OData $orderby expression")),
		mcp.WithString("expand",
			mcp.Description("OData $expand: related records to include")),
		mcp.WithString("apply",
			mcp.Description("OData $apply: aggregation/grouping expression")),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of rows to return")),
	)
}

// getTableRowTool returns a tool definition for retrieving a single row.
func getTableRowTool() mcp.Tool {
	return mcp.NewTool("get_table_row",
		mcp.WithDescription("Retrieve a single Dataverse row by its primary key GUID."),
		mcp.WithString("table",
			mcp.Required(),
			mcp.Description("Entity set name of the table")),
		mcp.WithString("row_id",
			mcp.Required(),
			mcp.Description("GUID of the row to retrieve")),
		mcp.WithString("select",
			mcp.Description("OData $select: comma-separated columns to return")),
		mcp.WithString("expand",
			mcp.Description("OData $expand: related records to include")),
	)
}

// listWorkflowsTool returns a tool definition for querying workflows.
func listWorkflowsTool() mcp.Tool {
	return mcp.NewTool("list_workflows",
		mcp.WithDescription("Query Dataverse workflows/processes (the workflows table), including cloud flow definitions."),
		mcp.WithString("select",
			mcp.Description("OData $select: comma-separated columns to return")),
		mcp.WithString("filter",
			mcp.Description("OData $filter expression (e.g. 'category eq 5' for modern flows)")),
		mcp.WithString("orderby",
			mcp.Description("OData $orderby expression")),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of workflows to return")),
	)
}

// getWorkflowTool returns a tool definition for retrieving one workflow.
func getWorkflowTool() mcp.Tool {
	return mcp.NewTool("get_workflow",
		mcp.WithDescription("Retrieve a single Dataverse workflow by its workflowid GUID."),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("GUID of the workflow")),
		mcp.WithString("select",
			mcp.Description("OData $select: comma-separated columns to return")),
	)
}

// activateWorkflowTool returns a tool definition for activating a workflow.
func activateWorkflowTool() mcp.Tool {
	return mcp.NewTool("activate_workflow",
		mcp.WithDescription("Activate a Dataverse workflow (set statecode=1, statuscode=2)."),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("GUID of the workflow to activate")),
	)
}

// deactivateWorkflowTool returns a tool definition for deactivating a workflow.
func deactivateWorkflowTool() mcp.Tool {
	return mcp.NewTool("deactivate_workflow",
		mcp.WithDescription("Deactivate a Dataverse workflow (set statecode=0, statuscode=1)."),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("GUID of the workflow to deactivate")),
	)
}

// listEntityDefinitionsTool returns a tool definition for listing entity metadata.
func listEntityDefinitionsTool() mcp.Tool {
	return mcp.NewTool("list_entity_definitions",
		mcp.WithDescription("Query Dataverse entity metadata (EntityDefinitions)."),
		mcp.WithString("select",
			mcp.Description("OData $select: comma-separated metadata properties to return")),
		mcp.WithString("filter",
			mcp.Description("OData $filter expression (e.g. 'IsCustomEntity eq true')")),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of definitions to return")),
	)
}

// getEntityDefinitionTool returns a tool definition for one entity's metadata.
func getEntityDefinitionTool() mcp.Tool {
	return mcp.NewTool("get_entity_definition",
		mcp.WithDescription("Retrieve the metadata definition of one Dataverse entity by logical name."),
		mcp.WithString("entity",
			mcp.Required(),
			mcp.Description("Logical name of the entity (e.g. 'account')")),
		mcp.WithString("select",
			mcp.Description("OData $select: comma-separated metadata properties to return")),
		mcp.WithString("expand",
			mcp.Description("OData $expand (e.g. 'Attributes')")),
	)
}

// listEntityAttributesTool returns a tool definition for one entity's attributes.
func listEntityAttributesTool() mcp.Tool {
	return mcp.NewTool("list_entity_attributes",
		mcp.WithDescription("List the attribute metadata of one Dataverse entity by logical name."),
		mcp.WithString("entity",
			mcp.Required(),
			mcp.Description("Logical name of the entity (e.g. 'account')")),
		mcp.WithString("select",
			mcp.Description("OData $select: comma-separated metadata properties to return")),
		mcp.WithString("filter",
			mcp.Description("OData $filter expression (e.g. \"AttributeType eq 'Lookup'\")")),
	)
}

// ---------------------------------------------------------------------------
// Flow API tool definitions
// ---------------------------------------------------------------------------

// listFlowsTool returns a tool definition for listing flows.
func listFlowsTool() mcp.Tool {
	return mcp.NewTool("list_flows",
		mcp.WithDescription("List the cloud flows in the configured Power Platform environment."),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of flows to return")),
	)
}

// getFlowTool returns a tool definition for retrieving one flow.
func getFlowTool() mcp.Tool {
	return mcp.NewTool("get_flow",
		mcp.WithDescription("Retrieve a single cloud flow by its flow name GUID."),
		mcp.WithString("flow_name",
			mcp.Required(),
			mcp.Description("GUID name of the flow")),
	)
}

// listFlowTriggersTool returns a tool definition for listing a flow's triggers.
func listFlowTriggersTool() mcp.Tool {
	return mcp.NewTool("list_flow_triggers",
		mcp.WithDescription("List the triggers of a cloud flow."),
		mcp.WithString("flow_name",
			mcp.Required(),
			mcp.Description("GUID name of the flow")),
	)
}

// getFlowTriggerCallbackURLTool returns a tool definition for a trigger's callback URL.
func getFlowTriggerCallbackURLTool() mcp.Tool {
	return mcp.NewTool("get_flow_trigger_callback_url",
		mcp.WithDescription("Get the callback URL of a request trigger, used to invoke the flow over HTTP."),
		mcp.WithString("flow_name",
			mcp.Required(),
			mcp.Description("GUID name of the flow")),
		mcp.WithString("trigger_name",
			mcp.Required(),
			mcp.Description("Name of the trigger (e.g. 'manual')")),
	)
}

// listFlowRunsTool returns a tool definition for listing a flow's runs.
func listFlowRunsTool() mcp.Tool {
	return mcp.NewTool("list_flow_runs",
		mcp.WithDescription("List the run history of a cloud flow."),
		mcp.WithString("flow_name",
			mcp.Required(),
			mcp.Description("GUID name of the flow")),
		mcp.WithString("filter",
			mcp.Description("OData $filter expression (e.g. \"status eq 'Failed'\")")),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of runs to return")),
	)
}

// getFlowRunTool returns a tool definition for retrieving one run.
func getFlowRunTool() mcp.Tool {
	return mcp.NewTool("get_flow_run",
		mcp.WithDescription("Retrieve a single flow run by its run name."),
		mcp.WithString("flow_name",
			mcp.Required(),
			mcp.Description("GUID name of the flow")),
		mcp.WithString("run_name",
			mcp.Required(),
			mcp.Description("Name of the run")),
	)
}

// getFlowRunActionsTool returns a tool definition for a run's actions.
func getFlowRunActionsTool() mcp.Tool {
	return mcp.NewTool("get_flow_run_actions",
		mcp.WithDescription("Retrieve a flow run with its actions expanded, showing per-action status and timing."),
		mcp.WithString("flow_name",
			mcp.Required(),
			mcp.Description("GUID name of the flow")),
		mcp.WithString("run_name",
			mcp.Required(),
			mcp.Description("Name of the run")),
	)
}

// listFlowTriggerHistoriesTool returns a tool definition for trigger histories.
func listFlowTriggerHistoriesTool() mcp.Tool {
	return mcp.NewTool("list_flow_trigger_histories",
		mcp.WithDescription("List the invocation history of one flow trigger."),
		mcp.WithString("flow_name",
			mcp.Required(),
			mcp.Description("GUID name of the flow")),
		mcp.WithString("trigger_name",
			mcp.Required(),
			mcp.Description("Name of the trigger")),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of history entries to return")),
	)
}
