package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/ports"
)

// MCPClient talks to the tool-orchestration surface of the backend.
type MCPClient struct {
	*Client
}

var _ ports.ToolService = (*MCPClient)(nil)

func NewMCPClient(client *Client) *MCPClient {
	return &MCPClient{Client: client}
}

func (m *MCPClient) Status(ctx context.Context) (domain.MCPStatus, error) {
	var status domain.MCPStatus
	err := m.get(ctx, "/mcp/status", &status, m.settings.MetadataTimeout())
	return status, err
}

func (m *MCPClient) Tools(ctx context.Context) ([]domain.Tool, error) {
	var payload struct {
		Tools []domain.Tool `json:"tools"`
	}
	if err := m.get(ctx, "/mcp/tools", &payload, m.settings.Timeout()); err != nil {
		return nil, err
	}
	return payload.Tools, nil
}

// Search asks the backend to rank tools against a free-text query. The query
// travels as a query parameter on a POST, matching the backend contract.
func (m *MCPClient) Search(ctx context.Context, query string) ([]domain.Tool, error) {
	var payload struct {
		Tools []domain.Tool `json:"tools"`
	}
	params := url.Values{"query": {query}}
	if err := m.postQuery(ctx, "/mcp/tools/search", params, nil, &payload, m.settings.Timeout()); err != nil {
		return nil, err
	}
	return payload.Tools, nil
}

// Execute dispatches a tool invocation. The tool id is a query parameter;
// the parameter map is the JSON body.
func (m *MCPClient) Execute(ctx context.Context, toolID string, params map[string]any) (json.RawMessage, error) {
	if params == nil {
		params = map[string]any{}
	}
	var result json.RawMessage
	query := url.Values{"tool_id": {toolID}}
	if err := m.postQuery(ctx, "/mcp/tools/execute", query, params, &result, m.settings.ExecuteTimeout()); err != nil {
		return nil, err
	}
	return result, nil
}

func (m *MCPClient) TestWorkflow(ctx context.Context, message, sessionID string) (json.RawMessage, error) {
	var result json.RawMessage
	query := url.Values{"message": {message}, "session_id": {sessionID}}
	if err := m.postQuery(ctx, "/mcp/test-workflow", query, nil, &result, m.settings.ExecuteTimeout()); err != nil {
		return nil, err
	}
	return result, nil
}

func (m *MCPClient) Agents(ctx context.Context) (map[string]domain.AgentInfo, error) {
	var payload struct {
		Agents map[string]domain.AgentInfo `json:"agents"`
	}
	if err := m.get(ctx, "/mcp/agents", &payload, m.settings.Timeout()); err != nil {
		return nil, err
	}
	return payload.Agents, nil
}

// RefreshDiscovery forces a backend-side rescan of available tools and
// returns the post-scan tool count.
func (m *MCPClient) RefreshDiscovery(ctx context.Context) (int, error) {
	var payload struct {
		ToolCount int `json:"tool_count"`
	}
	if err := m.post(ctx, "/mcp/discovery/refresh", nil, &payload, m.settings.Timeout()); err != nil {
		return 0, err
	}
	return payload.ToolCount, nil
}
