package domain

// Tool is a backend-registered capability with a declared parameter schema.
type Tool struct {
	ID             string         `json:"tool_id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Category       string         `json:"category"`
	Source         string         `json:"source"`
	Capabilities   []string       `json:"capabilities,omitempty"`
	Parameters     map[string]any `json:"parameters,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	RelevanceScore float64        `json:"relevance_score,omitempty"`
}

// HasParameters reports whether the tool declares a parameter schema.
func (t Tool) HasParameters() bool {
	return len(t.Parameters) > 0
}

// ToolDiscovery summarizes the backend's discovery subsystem.
type ToolDiscovery struct {
	DiscoveredTools  int  `json:"discovered_tools"`
	DiscoverySources int  `json:"discovery_sources"`
	IsRunning        bool `json:"is_running"`
}

// MCPStatus is the framework status reported by /mcp/status.
type MCPStatus struct {
	Status        string            `json:"status"`
	ToolDiscovery ToolDiscovery     `json:"tool_discovery"`
	Services      map[string]string `json:"services"`
}

// AgentInfo describes one backend agent and its tool wiring.
type AgentInfo struct {
	Status     string `json:"status"`
	MCPEnabled bool   `json:"mcp_enabled"`
	ToolCount  int    `json:"tool_count"`
	Note       string `json:"note,omitempty"`
}
