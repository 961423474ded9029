package formtools

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arreyder/forms-mcp/internal/forms"
)

func TextResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

// JSONResult renders payload as indented JSON in a single text block.
func JSONResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty JSON response")
	}
	return TextResult(string(data)), nil
}

// ErrorResult is the uniform failure envelope: IsError plus one text block
// "Error: <message>". Kind and details ride along as structured content.
func ErrorResult(err error) *mcp.CallToolResult {
	payload := buildErrorPayload(err)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + payload["message"].(string)}},
		StructuredContent: map[string]any{
			"error": payload,
		},
	}
}

func buildErrorPayload(err error) map[string]any {
	message := "Unknown error"
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		message = strings.TrimSpace(err.Error())
	}
	kind := KindOf(err)

	details := map[string]any{}
	var verr *ValidationError
	var rerr *RemoteError
	switch {
	case errors.As(err, &verr):
		details["field"] = verr.Field
		if verr.Expected != "" {
			details["expected"] = verr.Expected
		}
		if verr.Received != "" {
			details["received"] = verr.Received
		}
		if verr.Hint != "" {
			details["hint"] = verr.Hint
		}
	case errors.As(err, &rerr):
		details["operation"] = rerr.Op
		if status := forms.StatusCode(rerr.Err); status != 0 {
			details["status"] = status
		}
	}

	payload := map[string]any{
		"message": message,
		"code":    string(kind),
		"rpcCode": kind.Code(),
	}
	if len(details) > 0 {
		payload["details"] = details
	}
	return payload
}

// render turns a handler payload into a success envelope.
func render(payload any) (*mcp.CallToolResult, error) {
	switch v := payload.(type) {
	case *mcp.CallToolResult:
		return v, nil
	case string:
		return TextResult(v), nil
	default:
		return JSONResult(v)
	}
}

// ResultText concatenates the text blocks of a result.
func ResultText(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}
