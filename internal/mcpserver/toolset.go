package mcpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"dataverse-mcp/internal/auth"
	"dataverse-mcp/internal/config"
	"dataverse-mcp/internal/dataverse"
	"dataverse-mcp/internal/flowapi"
	"dataverse-mcp/internal/webapi"
)

const (
	errDataverseNotConfigured = "Dataverse is not configured. Set orgUrl in config.yaml or the DATAVERSE_ORG_URL environment variable."
	errFlowNotConfigured      = "The Flow API is not configured. Set flowEnvironmentId in config.yaml or the FLOW_ENVIRONMENT_ID environment variable."
)

// Toolset holds the downstream API clients shared by all tool handlers.
// Both clients are stateless per call, so concurrent invocations share one
// Toolset and with it one HTTP transport and one token cache.
type Toolset struct {
	dataverse *dataverse.Client
	flow      *flowapi.Client
}

// NewToolset wires the downstream clients from the loaded configuration.
// A client is left nil when its API surface is not configured; the
// corresponding handlers then return a configuration error result.
func NewToolset(cfg config.Config) *Toolset {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
	}
	tokens := auth.NewClientCredentialsProvider(cfg.ClientID, cfg.ClientSecret, cfg.TokenURL(), httpClient)

	ts := &Toolset{}
	if cfg.OrgURL != "" {
		ts.dataverse = dataverse.NewClient(httpClient, tokens, cfg.NormalizedOrgURL())
	}
	if cfg.FlowEnvironmentID != "" {
		ts.flow = flowapi.NewClient(httpClient, tokens, cfg.FlowEnvironmentID, "")
	}
	return ts
}

// forward converts a downstream call outcome into a tool result. Error
// documents from non-success HTTP statuses are surfaced as error results
// carrying the normalized JSON; transport failures become plain messages.
func forward(body string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		var statusErr *webapi.StatusError
		if errors.As(err, &statusErr) {
			return mcp.NewToolResultError(statusErr.Doc), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Request failed: %v", err)), nil
	}
	return mcp.NewToolResultText(body), nil
}
