package domain

// ChatRequest is a single assistant request.
type ChatRequest struct {
	Message   string         `json:"message"`
	SessionID string         `json:"session_id,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
}

// ChatResponse is the routed assistant reply.
type ChatResponse struct {
	Reply           string         `json:"reply"`
	Route           string         `json:"route"`
	Intent          string         `json:"intent"`
	SessionID       string         `json:"session_id"`
	Context         map[string]any `json:"context,omitempty"`
	StructuredData  map[string]any `json:"structured_data,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty"`
	Confidence      float64        `json:"confidence,omitempty"`
}
