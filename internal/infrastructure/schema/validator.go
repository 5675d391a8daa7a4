package schema

import (
	"fmt"
	"strings"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/ports"
)

// Validator implements the ParameterValidator port against the parameter
// schemas tools advertise. Schemas come in two shapes: a JSON-schema style
// object with "properties"/"required", or a flat map of property name to
// definition. Unknown shapes pass through unchecked.
type Validator struct{}

var _ ports.ParameterValidator = Validator{}

func New() Validator { return Validator{} }

// Validate checks required parameters are present and that provided values
// match the declared primitive types. Tools with no schema accept anything.
func (Validator) Validate(tool domain.Tool, params map[string]any) error {
	if len(tool.Parameters) == 0 {
		return nil
	}

	properties, required := normalize(tool.Parameters)
	if properties == nil {
		return nil
	}

	var missing []string
	for _, name := range required {
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &domain.APIError{
			Type:    domain.ErrorValidation,
			Message: fmt.Sprintf("tool %s: missing required parameters: %s", tool.ID, strings.Join(missing, ", ")),
		}
	}

	for name, value := range params {
		def, ok := properties[name].(map[string]any)
		if !ok {
			continue
		}
		declared, _ := def["type"].(string)
		if declared == "" {
			continue
		}
		if err := checkType(name, declared, value); err != nil {
			return &domain.APIError{
				Type:    domain.ErrorValidation,
				Message: fmt.Sprintf("tool %s: %v", tool.ID, err),
			}
		}
	}
	return nil
}

// normalize extracts the property map and required list from either schema
// shape. Returns a nil map when the schema is unrecognizable.
func normalize(schema map[string]any) (map[string]any, []string) {
	if props, ok := schema["properties"].(map[string]any); ok {
		return props, stringSlice(schema["required"])
	}

	// Flat shape: every value must itself look like a property definition.
	flat := make(map[string]any, len(schema))
	var required []string
	for name, raw := range schema {
		def, ok := raw.(map[string]any)
		if !ok {
			return nil, nil
		}
		flat[name] = def
		if req, _ := def["required"].(bool); req {
			required = append(required, name)
		}
	}
	return flat, required
}

func checkType(name, declared string, value any) error {
	if value == nil {
		return nil
	}
	switch declared {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("parameter %s: expected string, got %T", name, value)
		}
	case "number":
		if !isNumber(value) {
			return fmt.Errorf("parameter %s: expected number, got %T", name, value)
		}
	case "integer":
		if !isInteger(value) {
			return fmt.Errorf("parameter %s: expected integer, got %T", name, value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("parameter %s: expected boolean, got %T", name, value)
		}
	case "array":
		if _, ok := value.([]any); !ok {
			return fmt.Errorf("parameter %s: expected array, got %T", name, value)
		}
	case "object":
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("parameter %s: expected object, got %T", name, value)
		}
	}
	return nil
}

func isNumber(value any) bool {
	switch value.(type) {
	case float64, float32, int, int32, int64:
		return true
	}
	return false
}

func isInteger(value any) bool {
	switch v := value.(type) {
	case int, int32, int64:
		return true
	case float64:
		return v == float64(int64(v))
	case float32:
		return v == float32(int64(v))
	}
	return false
}

func stringSlice(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
