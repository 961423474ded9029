package formtools

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arreyder/forms-mcp/internal/textutil"
)

// ValidateArgs enforces a tool's input schema before its handler runs, so no
// remote call is made with incomplete arguments. Conditional requirements
// that the schema cannot express are checked per tool afterwards.
func ValidateArgs(tool *mcp.Tool, args map[string]any) error {
	schema, ok := tool.InputSchema.(map[string]any)
	if !ok {
		return fmt.Errorf("invalid input schema for tool %q", tool.Name)
	}
	if args == nil {
		args = map[string]any{}
	}
	if err := validateObject(args, schema, ""); err != nil {
		return err
	}
	return validateConditionals(tool.Name, args)
}

func validateObject(value map[string]any, schema map[string]any, path string) error {
	props, _ := schema["properties"].(map[string]any)
	var missing []string
	for _, key := range requiredFields(schema) {
		if !argPresent(value, key) {
			missing = append(missing, joinPath(path, key))
			continue
		}
		if str, ok := value[key].(string); ok && strings.TrimSpace(str) == "" {
			missing = append(missing, joinPath(path, key))
		}
	}
	if len(missing) > 0 {
		quoted := make([]string, 0, len(missing))
		for _, field := range missing {
			quoted = append(quoted, fmt.Sprintf("%q", field))
		}
		return &ValidationError{
			Field:    missing[0],
			Message:  fmt.Sprintf("missing required argument(s): %s", strings.Join(quoted, ", ")),
			Expected: "required field",
			Received: "<missing>",
			Hint:     fmt.Sprintf("Provide a value for %s.", strings.Join(quoted, ", ")),
		}
	}

	for key, val := range value {
		propSchema, ok := props[key].(map[string]any)
		if !ok {
			continue
		}
		field := joinPath(path, key)
		if err := validateValue(val, propSchema, field); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(value any, schema map[string]any, field string) error {
	typ, _ := schema["type"].(string)
	if value == nil {
		return &ValidationError{
			Field:    field,
			Message:  fmt.Sprintf("invalid argument %q: value is null", field),
			Expected: typ,
			Received: "null",
			Hint:     fmt.Sprintf("Provide a non-null value for %q or omit it.", field),
		}
	}

	switch typ {
	case "string":
		if _, ok := value.(string); !ok {
			return typeError(field, "string", value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return typeError(field, "boolean", value)
		}
	case "integer":
		if _, ok := intValue(value); !ok {
			return typeError(field, "integer", value)
		}
		return validateNumberBounds(value, schema, field)
	case "number":
		if _, ok := floatValue(value); !ok {
			return typeError(field, "number", value)
		}
		return validateNumberBounds(value, schema, field)
	case "array":
		items, ok := sliceValue(value)
		if !ok {
			return typeError(field, "array", value)
		}
		if minItems, ok := intValue(schema["minItems"]); ok && int64(len(items)) < minItems {
			return &ValidationError{
				Field:    field,
				Message:  fmt.Sprintf("invalid argument %q: expected at least %d items, got %d", field, minItems, len(items)),
				Expected: fmt.Sprintf("minimum %d items", minItems),
				Received: fmt.Sprintf("array(len=%d)", len(items)),
				Hint:     fmt.Sprintf("Provide at least %d values for %q.", minItems, field),
			}
		}
		if itemSchema, ok := schema["items"].(map[string]any); ok {
			for i, item := range items {
				if err := validateValue(item, itemSchema, fmt.Sprintf("%s[%d]", field, i)); err != nil {
					return err
				}
			}
		}
	default:
		return &ValidationError{
			Field:    field,
			Message:  fmt.Sprintf("invalid argument %q: unsupported schema type %q", field, typ),
			Expected: typ,
			Hint:     fmt.Sprintf("Check the schema for %q.", field),
		}
	}
	return nil
}

func validateNumberBounds(value any, schema map[string]any, field string) error {
	val, ok := floatValue(value)
	if !ok {
		return nil
	}
	if min, ok := floatValue(schema["minimum"]); ok && val < min {
		return &ValidationError{
			Field:    field,
			Message:  fmt.Sprintf("invalid argument %q: value %v is below minimum %v", field, val, min),
			Expected: fmt.Sprintf("number >= %v", min),
			Received: redactValue(field, value),
			Hint:     fmt.Sprintf("Provide a value >= %v for %q.", min, field),
		}
	}
	if max, ok := floatValue(schema["maximum"]); ok && val > max {
		return &ValidationError{
			Field:    field,
			Message:  fmt.Sprintf("invalid argument %q: value %v exceeds maximum %v", field, val, max),
			Expected: fmt.Sprintf("number <= %v", max),
			Received: redactValue(field, value),
			Hint:     fmt.Sprintf("Provide a value <= %v for %q.", max, field),
		}
	}
	return nil
}

func typeError(field, expected string, value any) error {
	return &ValidationError{
		Field:    field,
		Message:  fmt.Sprintf("invalid argument %q: expected %s, got %s", field, expected, valueType(value)),
		Expected: expected,
		Received: redactValue(field, value),
		Hint:     fmt.Sprintf("Provide a %s value for %q.", expected, field),
	}
}

func validateConditionals(toolName string, args map[string]any) error {
	switch toolName {
	case ToolUpdateFormInfo:
		if !argPresent(args, "title") && !argPresent(args, "description") {
			return &ValidationError{
				Field:    "title",
				Message:  "At least one of title or description is required",
				Expected: "title and/or description",
				Received: "<missing>",
				Hint:     "Provide a new title, a new description, or both.",
			}
		}
		if argPresent(args, "title") && argString(args, "title") == "" {
			return &ValidationError{
				Field:    "title",
				Message:  "invalid argument \"title\": form title cannot be empty",
				Expected: "non-empty string",
				Received: "<empty>",
				Hint:     "Omit title to leave it unchanged.",
			}
		}
	case ToolUpdateQuestion:
		if !argPresent(args, "questionTitle") && !argPresent(args, "description") && !argPresent(args, "required") {
			return &ValidationError{
				Field:    "questionTitle",
				Message:  "At least one of questionTitle, description, or required must be provided",
				Expected: "questionTitle, description and/or required",
				Received: "<missing>",
				Hint:     "Provide at least one field to change.",
			}
		}
	}
	return nil
}

func argString(args map[string]any, key string) string {
	val, ok := args[key]
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return strings.TrimSpace(str)
	}
	return ""
}

func argPresent(args map[string]any, key string) bool {
	val, ok := args[key]
	return ok && val != nil
}

func stringSlice(value any) []string {
	switch v := value.(type) {
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
	default:
		return nil
	}
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

func sliceValue(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		items := make([]any, 0, len(v))
		for _, item := range v {
			items = append(items, item)
		}
		return items, true
	default:
		return nil, false
	}
}

func intValue(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case float64:
		return wholeInt64(v)
	case json.Number:
		if parsed, err := v.Int64(); err == nil {
			return parsed, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return wholeInt64(f)
	default:
		return 0, false
	}
}

// wholeInt64 accepts integral floats such as 2.0 that fit in an int64.
func wholeInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Mod(f, 1) != 0 {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func floatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		parsed, err := v.Float64()
		return parsed, err == nil
	default:
		return 0, false
	}
}

func valueType(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, int32, float32, float64, json.Number:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func redactValue(field string, value any) string {
	if value == nil {
		return "null"
	}
	lower := strings.ToLower(field)
	if strings.Contains(lower, "token") || strings.Contains(lower, "secret") {
		return "[REDACTED]"
	}
	switch v := value.(type) {
	case string:
		return textutil.Clip(v, 200, textutil.StrategyHead)
	case []any:
		return fmt.Sprintf("array(len=%d)", len(v))
	case []string:
		return fmt.Sprintf("array(len=%d)", len(v))
	case map[string]any:
		return fmt.Sprintf("object(len=%d)", len(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}
