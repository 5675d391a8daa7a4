package api

import (
	"context"
	"encoding/json"

	"github.com/wareops/opsctl/internal/domain"
)

// VersionClient reads backend build identity. Version info is decorative;
// failures degrade to a placeholder instead of propagating.
type VersionClient struct {
	*Client
}

func NewVersionClient(client *Client) *VersionClient {
	return &VersionClient{Client: client}
}

func (v *VersionClient) Version(ctx context.Context) domain.VersionInfo {
	var info domain.VersionInfo
	if err := v.get(ctx, "/version", &info, v.settings.MetadataTimeout()); err != nil {
		v.logger.Debug("version lookup failed", map[string]interface{}{"error": err.Error()})
		return domain.FallbackVersion()
	}
	return info
}

func (v *VersionClient) Detailed(ctx context.Context) (domain.DetailedVersionInfo, error) {
	var info domain.DetailedVersionInfo
	err := v.get(ctx, "/version/detailed", &info, v.settings.MetadataTimeout())
	return info, err
}

func (v *VersionClient) Health(ctx context.Context) (json.RawMessage, error) {
	var health json.RawMessage
	err := v.get(ctx, "/health", &health, v.settings.MetadataTimeout())
	return health, err
}
