package api

import (
	"context"

	"github.com/wareops/opsctl/internal/domain"
)

// ChatClient routes free-text operator messages through the assistant.
type ChatClient struct {
	*Client
}

func NewChatClient(client *Client) *ChatClient {
	return &ChatClient{Client: client}
}

func (c *ChatClient) Send(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	var resp domain.ChatResponse
	err := c.post(ctx, "/chat", req, &resp, c.settings.ExecuteTimeout())
	return resp, err
}
