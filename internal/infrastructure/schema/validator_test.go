package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wareops/opsctl/internal/domain"
)

func jsonSchemaTool() domain.Tool {
	return domain.Tool{
		ID: "inv_check",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"zone":  map[string]any{"type": "string"},
				"limit": map[string]any{"type": "integer"},
				"deep":  map[string]any{"type": "boolean"},
			},
			"required": []any{"zone"},
		},
	}
}

func TestValidateNoSchemaAcceptsAnything(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(domain.Tool{ID: "free"}, map[string]any{"whatever": 1}))
}

func TestValidateMissingRequired(t *testing.T) {
	v := New()
	err := v.Validate(jsonSchemaTool(), map[string]any{"limit": 5})
	require.Error(t, err)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, domain.ErrorValidation, apiErr.Type)
	assert.Contains(t, apiErr.Message, "zone")
}

func TestValidateTypeMismatch(t *testing.T) {
	v := New()

	err := v.Validate(jsonSchemaTool(), map[string]any{"zone": 42})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorValidation, domain.ClassifyError(err))

	err = v.Validate(jsonSchemaTool(), map[string]any{"zone": "A", "deep": "yes"})
	assert.Error(t, err)
}

func TestValidateAcceptsWellTyped(t *testing.T) {
	v := New()
	err := v.Validate(jsonSchemaTool(), map[string]any{
		"zone":  "A",
		"limit": float64(10), // decoded JSON numbers arrive as float64
		"deep":  true,
	})
	assert.NoError(t, err)
}

func TestValidateFlatSchema(t *testing.T) {
	tool := domain.Tool{
		ID: "pick_route",
		Parameters: map[string]any{
			"origin":      map[string]any{"type": "string", "required": true},
			"destination": map[string]any{"type": "string"},
		},
	}
	v := New()

	assert.Error(t, v.Validate(tool, map[string]any{"destination": "dock-4"}))
	assert.NoError(t, v.Validate(tool, map[string]any{"origin": "aisle-2"}))
}

func TestValidateUnknownShapePasses(t *testing.T) {
	tool := domain.Tool{
		ID:         "odd",
		Parameters: map[string]any{"description": "free-form"},
	}
	assert.NoError(t, New().Validate(tool, map[string]any{"anything": true}))
}

func TestValidateIntegerAcceptsWholeFloat(t *testing.T) {
	v := New()
	tool := jsonSchemaTool()
	assert.NoError(t, v.Validate(tool, map[string]any{"zone": "A", "limit": float64(3)}))
	assert.Error(t, v.Validate(tool, map[string]any{"zone": "A", "limit": 3.5}))
}
