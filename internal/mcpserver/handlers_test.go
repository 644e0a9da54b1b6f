package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"dataverse-mcp/internal/auth"
	"dataverse-mcp/internal/dataverse"
	"dataverse-mcp/internal/flowapi"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// countingTransport fails every request and counts attempts. Used to prove
// that validation failures never reach the network.
type countingTransport struct {
	calls int
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return nil, errors.New("network disabled in test")
}

// offlineToolset builds a Toolset whose clients fail on any network use,
// returning the transport so tests can assert on the attempt count.
func offlineToolset() (*Toolset, *countingTransport) {
	ct := &countingTransport{}
	httpClient := &http.Client{Transport: ct}
	tokens := auth.StaticProvider{AccessToken: "t"}
	return &Toolset{
		dataverse: dataverse.NewClient(httpClient, tokens, "https://org.example"),
		flow:      flowapi.NewClient(httpClient, tokens, "env-id", ""),
	}, ct
}

// onlineToolset builds a Toolset whose Dataverse and Flow clients both point
// at the given fake endpoint.
func onlineToolset(t *testing.T, handler http.HandlerFunc) *Toolset {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := auth.StaticProvider{AccessToken: "t"}
	return &Toolset{
		dataverse: dataverse.NewClient(srv.Client(), tokens, srv.URL),
		flow:      flowapi.NewClient(srv.Client(), tokens, "env-id", srv.URL),
	}
}

// makeRequest builds a CallToolRequest with the given arguments.
func makeRequest(tool string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      tool,
			Arguments: args,
		},
	}
}

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("result.Content[0] is %T, want mcp.TextContent", result.Content[0])
	}
	return tc.Text
}

const validGUID = "0f9bde70-6d53-4f8a-9a10-3a7f2a4f5f11"

// ---------------------------------------------------------------------------
// GUID validation: no network call on malformed input
// ---------------------------------------------------------------------------

func Test_GUIDValidation_MalformedInputMakesNoNetworkCall(t *testing.T) {
	t.Parallel()

	type handlerFunc func(*Toolset, context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

	tests := []struct {
		name    string
		handler handlerFunc
		args    map[string]any
	}{
		{
			name:    "activate_workflow bad guid",
			handler: (*Toolset).HandleActivateWorkflow,
			args:    map[string]any{"workflow_id": "not-a-guid"},
		},
		{
			name:    "deactivate_workflow bad guid",
			handler: (*Toolset).HandleDeactivateWorkflow,
			args:    map[string]any{"workflow_id": "12345"},
		},
		{
			name:    "get_workflow bad guid",
			handler: (*Toolset).HandleGetWorkflow,
			args:    map[string]any{"workflow_id": "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"},
		},
		{
			name:    "get_table_row bad guid",
			handler: (*Toolset).HandleGetTableRow,
			args:    map[string]any{"table": "accounts", "row_id": "nope"},
		},
		{
			name:    "get_flow bad guid",
			handler: (*Toolset).HandleGetFlow,
			args:    map[string]any{"flow_name": "my-flow"},
		},
		{
			name:    "list_flow_runs bad guid",
			handler: (*Toolset).HandleListFlowRuns,
			args:    map[string]any{"flow_name": "{not quite a guid}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts, ct := offlineToolset()
			result, err := tt.handler(ts, context.Background(), makeRequest("x", tt.args))
			if err != nil {
				t.Fatalf("handler returned protocol error: %v", err)
			}
			if result == nil || !result.IsError {
				t.Fatal("handler result is not an error result")
			}
			if ct.calls != 0 {
				t.Errorf("handler made %d network calls, want 0", ct.calls)
			}
		})
	}
}

func Test_GUIDValidation_AcceptsCanonicalAndBracedForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"canonical", validGUID},
		{"upper case", strings.ToUpper(validGUID)},
		{"braced", "{" + validGUID + "}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := onlineToolset(t, func(w http.ResponseWriter, r *http.Request) {
				// The normalized dashed lowercase form must appear in the path.
				if !strings.Contains(r.URL.Path, validGUID) {
					t.Errorf("path %q does not contain normalized GUID", r.URL.Path)
				}
				_, _ = w.Write([]byte(`{}`))
			})

			result, err := ts.HandleGetWorkflow(context.Background(), makeRequest("get_workflow",
				map[string]any{"workflow_id": tt.input}))
			if err != nil {
				t.Fatalf("HandleGetWorkflow() protocol error: %v", err)
			}
			if result.IsError {
				t.Errorf("HandleGetWorkflow() rejected valid GUID form %q: %s", tt.input, resultText(t, result))
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Missing required parameters
// ---------------------------------------------------------------------------

func Test_Handlers_MissingRequiredParams(t *testing.T) {
	t.Parallel()

	type handlerFunc func(*Toolset, context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

	tests := []struct {
		name    string
		handler handlerFunc
		args    map[string]any
	}{
		{"query_table no table", (*Toolset).HandleQueryTable, map[string]any{}},
		{"get_table_row no row_id", (*Toolset).HandleGetTableRow, map[string]any{"table": "accounts"}},
		{"get_workflow no id", (*Toolset).HandleGetWorkflow, map[string]any{}},
		{"activate_workflow no id", (*Toolset).HandleActivateWorkflow, map[string]any{}},
		{"get_entity_definition no entity", (*Toolset).HandleGetEntityDefinition, map[string]any{}},
		{"get_flow no name", (*Toolset).HandleGetFlow, map[string]any{}},
		{"callback url no trigger", (*Toolset).HandleGetFlowTriggerCallbackURL, map[string]any{"flow_name": validGUID}},
		{"get_flow_run no run", (*Toolset).HandleGetFlowRun, map[string]any{"flow_name": validGUID}},
		{"trigger histories no trigger", (*Toolset).HandleListFlowTriggerHistories, map[string]any{"flow_name": validGUID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts, ct := offlineToolset()
			result, err := tt.handler(ts, context.Background(), makeRequest("x", tt.args))
			if err != nil {
				t.Fatalf("handler returned protocol error: %v", err)
			}
			if result == nil || !result.IsError {
				t.Fatal("handler result is not an error result")
			}
			if !strings.Contains(resultText(t, result), "parameter") && !strings.Contains(resultText(t, result), "Invalid") {
				t.Errorf("error text %q does not mention the parameter problem", resultText(t, result))
			}
			if ct.calls != 0 {
				t.Errorf("handler made %d network calls, want 0", ct.calls)
			}
		})
	}
}

func Test_QueryTable_RejectsInvalidEntitySetName(t *testing.T) {
	t.Parallel()

	ts, ct := offlineToolset()
	result, err := ts.HandleQueryTable(context.Background(), makeRequest("query_table",
		map[string]any{"table": "accounts;DROP"}))
	if err != nil {
		t.Fatalf("HandleQueryTable() protocol error: %v", err)
	}
	if !result.IsError {
		t.Fatal("HandleQueryTable() accepted an invalid entity set name")
	}
	if ct.calls != 0 {
		t.Errorf("handler made %d network calls, want 0", ct.calls)
	}
}

// ---------------------------------------------------------------------------
// Unconfigured API surfaces
// ---------------------------------------------------------------------------

func Test_Handlers_UnconfiguredSurfaceReturnsConfigError(t *testing.T) {
	t.Parallel()

	empty := &Toolset{}

	dvResult, err := empty.HandleListPluginTraceLogs(context.Background(), makeRequest("list_plugin_trace_logs", nil))
	if err != nil {
		t.Fatalf("HandleListPluginTraceLogs() protocol error: %v", err)
	}
	if !dvResult.IsError || !strings.Contains(resultText(t, dvResult), "Dataverse is not configured") {
		t.Errorf("unexpected result for unconfigured Dataverse: %s", resultText(t, dvResult))
	}

	flowResult, err := empty.HandleListFlows(context.Background(), makeRequest("list_flows", nil))
	if err != nil {
		t.Fatalf("HandleListFlows() protocol error: %v", err)
	}
	if !flowResult.IsError || !strings.Contains(resultText(t, flowResult), "Flow API is not configured") {
		t.Errorf("unexpected result for unconfigured Flow API: %s", resultText(t, flowResult))
	}
}

// ---------------------------------------------------------------------------
// Forwarding: success bodies pass through verbatim
// ---------------------------------------------------------------------------

func Test_Handlers_SuccessBodyPassesThrough(t *testing.T) {
	t.Parallel()

	body := `{"value":[{"messagename":"Update","performanceexecutionduration":42}]}`
	ts := onlineToolset(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	result, err := ts.HandleListPluginTraceLogs(context.Background(), makeRequest("list_plugin_trace_logs", nil))
	if err != nil {
		t.Fatalf("HandleListPluginTraceLogs() protocol error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	if got := resultText(t, result); got != body {
		t.Errorf("result text = %q, want downstream body %q", got, body)
	}
}

// ---------------------------------------------------------------------------
// Forwarding: non-success statuses yield the error envelope
// ---------------------------------------------------------------------------

func Test_Handlers_NonSuccessYieldsErrorEnvelope(t *testing.T) {
	t.Parallel()

	ts := onlineToolset(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	result, err := ts.HandleListWorkflows(context.Background(), makeRequest("list_workflows", nil))
	if err != nil {
		t.Fatalf("HandleListWorkflows() protocol error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for HTTP 502")
	}

	var env map[string]map[string]any
	text := resultText(t, result)
	if jsonErr := json.Unmarshal([]byte(text), &env); jsonErr != nil {
		t.Fatalf("error result %q is not JSON: %v", text, jsonErr)
	}
	if env["error"]["code"] != "HTTP502" {
		t.Errorf("error.code = %v, want HTTP502", env["error"]["code"])
	}
	if env["error"]["message"] != "upstream exploded" {
		t.Errorf("error.message = %v", env["error"]["message"])
	}
}

func Test_Handlers_DownstreamErrorDocumentPassesThrough(t *testing.T) {
	t.Parallel()

	downstream := `{"error":{"code":"0x80048d19","message":"Workflow must be in Draft state"}}`
	ts := onlineToolset(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(downstream))
	})

	result, err := ts.HandleActivateWorkflow(context.Background(), makeRequest("activate_workflow",
		map[string]any{"workflow_id": validGUID}))
	if err != nil {
		t.Fatalf("HandleActivateWorkflow() protocol error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for HTTP 400")
	}
	if got := resultText(t, result); got != downstream {
		t.Errorf("result text = %q, want pass-through %q", got, downstream)
	}
}

// ---------------------------------------------------------------------------
// Workflow state updates
// ---------------------------------------------------------------------------

func Test_HandleActivateWorkflow_NoContentSuccess(t *testing.T) {
	t.Parallel()

	var gotMethod, gotBody string
	ts := onlineToolset(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.WriteHeader(http.StatusNoContent)
	})

	result, err := ts.HandleActivateWorkflow(context.Background(), makeRequest("activate_workflow",
		map[string]any{"workflow_id": validGUID}))
	if err != nil {
		t.Fatalf("HandleActivateWorkflow() protocol error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", gotMethod)
	}
	if gotBody != `{"statecode":1,"statuscode":2}` {
		t.Errorf("body = %q", gotBody)
	}
	if got := resultText(t, result); !strings.Contains(got, "updated") {
		t.Errorf("result text = %q, want confirmation message", got)
	}
}

// ---------------------------------------------------------------------------
// Transport failures
// ---------------------------------------------------------------------------

func Test_Handlers_TransportFailureReturnsPlainError(t *testing.T) {
	t.Parallel()

	ts, _ := offlineToolset()
	result, err := ts.HandleListFlows(context.Background(), makeRequest("list_flows", nil))
	if err != nil {
		t.Fatalf("HandleListFlows() protocol error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for a transport failure")
	}
	if got := resultText(t, result); !strings.Contains(got, "Request failed") {
		t.Errorf("result text = %q, want a transport failure message", got)
	}
}
