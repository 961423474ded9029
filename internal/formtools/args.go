package formtools

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

type formArgs struct {
	FormID string `json:"formId"`
}

type createFormArgs struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type questionArgs struct {
	FormID        string   `json:"formId"`
	QuestionTitle string   `json:"questionTitle"`
	Required      bool     `json:"required"`
	Paragraph     bool     `json:"paragraph"`
	Options       []string `json:"options"`
}

type scaleArgs struct {
	FormID        string `json:"formId"`
	QuestionTitle string `json:"questionTitle"`
	Low           int64  `json:"low"`
	High          int64  `json:"high"`
	LowLabel      string `json:"lowLabel"`
	HighLabel     string `json:"highLabel"`
	Required      bool   `json:"required"`
}

type contentItemArgs struct {
	FormID      string `json:"formId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type responsesArgs struct {
	FormID    string `json:"formId"`
	PageSize  int64  `json:"pageSize"`
	PageToken string `json:"pageToken"`
}

type responseArgs struct {
	FormID     string `json:"formId"`
	ResponseID string `json:"responseId"`
}

// Pointer fields distinguish "absent" from an explicit zero value.
type formInfoArgs struct {
	FormID      string  `json:"formId"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type indexArgs struct {
	FormID string `json:"formId"`
	Index  int64  `json:"index"`
}

type updateQuestionArgs struct {
	FormID        string  `json:"formId"`
	Index         int64   `json:"index"`
	QuestionTitle *string `json:"questionTitle"`
	Description   *string `json:"description"`
	Required      *bool   `json:"required"`
}

type moveArgs struct {
	FormID    string `json:"formId"`
	FromIndex int64  `json:"fromIndex"`
	ToIndex   int64  `json:"toIndex"`
}

// decodeArgs copies validated arguments into a typed struct. Keys without a
// matching field are ignored.
func decodeArgs(args map[string]any, dst any) error {
	data, err := json.Marshal(normalizeNumbers(args))
	if err != nil {
		return &ValidationError{
			Field:   "arguments",
			Message: fmt.Sprintf("invalid arguments: %v", err),
			Hint:    "Arguments must be a JSON object.",
		}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			expected := jsonKind(typeErr.Type)
			return &ValidationError{
				Field:    typeErr.Field,
				Message:  fmt.Sprintf("invalid argument %q: expected %s", typeErr.Field, expected),
				Expected: expected,
				Received: typeErr.Value,
				Hint:     fmt.Sprintf("Provide a %s value for %q.", expected, typeErr.Field),
			}
		}
		return &ValidationError{
			Field:   "arguments",
			Message: "invalid arguments: not a JSON object matching the tool's input schema",
			Hint:    "Check the tool's input schema.",
		}
	}
	return nil
}

// normalizeNumbers rewrites integral numbers written with a fraction or
// exponent (2.0, 1e2) as plain integers so they decode into int64 fields.
func normalizeNumbers(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for key, val := range args {
		if num, ok := val.(json.Number); ok {
			if _, err := num.Int64(); err != nil {
				if n, ok := intValue(num); ok {
					val = json.Number(strconv.FormatInt(n, 10))
				}
			}
		}
		out[key] = val
	}
	return out
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Pointer:
		return jsonKind(t.Elem())
	default:
		return "object"
	}
}
