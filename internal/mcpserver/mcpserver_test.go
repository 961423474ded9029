package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	formsapi "google.golang.org/api/forms/v1"

	"github.com/arreyder/forms-mcp/internal/forms"
	"github.com/arreyder/forms-mcp/internal/formtools"
)

// stubAPI answers every call with fixed data and counts batch updates.
type stubAPI struct {
	mu      sync.Mutex
	batches []*formsapi.BatchUpdateFormRequest
}

func (s *stubAPI) Create(_ context.Context, _ *formsapi.Form) (*formsapi.Form, error) {
	return &formsapi.Form{FormId: "X"}, nil
}

func (s *stubAPI) Get(_ context.Context, formID string) (*formsapi.Form, error) {
	return &formsapi.Form{FormId: formID, Items: []*formsapi.Item{{ItemId: "i0", Title: "Q"}}}, nil
}

func (s *stubAPI) ListResponses(_ context.Context, _ string, _ forms.PageParams) (*formsapi.ListFormResponsesResponse, error) {
	return &formsapi.ListFormResponsesResponse{}, nil
}

func (s *stubAPI) GetResponse(_ context.Context, _, responseID string) (*formsapi.FormResponse, error) {
	return &formsapi.FormResponse{ResponseId: responseID}, nil
}

func (s *stubAPI) BatchUpdate(_ context.Context, _ string, req *formsapi.BatchUpdateFormRequest) (*formsapi.BatchUpdateFormResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, req)
	return &formsapi.BatchUpdateFormResponse{}, nil
}

func (s *stubAPI) batchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

// setupTestClient creates a Server, connects an SDK client via in-memory
// transports, and returns the client session. The server runs in a background
// goroutine tied to t.Cleanup.
func setupTestClient(t *testing.T, api forms.API) *mcp.ClientSession {
	t.Helper()

	dispatcher, err := formtools.NewDispatcher(api, nil)
	require.NoError(t, err)
	s := New("forms-mcp-test", "1.0.0", dispatcher, nil)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- s.run(ctx, serverTransport)
	}()
	t.Cleanup(func() {
		cancel()
		<-serverDone
	})

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestListToolsMatchesCatalog(t *testing.T) {
	session := setupTestClient(t, &stubAPI{})

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	catalog := formtools.ToolSchemas(nil)
	require.Len(t, result.Tools, len(catalog))

	byName := make(map[string]*mcp.Tool, len(result.Tools))
	for _, tool := range result.Tools {
		byName[tool.Name] = tool
	}
	for _, def := range catalog {
		tool, ok := byName[def.Tool.Name]
		require.True(t, ok, def.Tool.Name)
		assert.Equal(t, def.Tool.Description, tool.Description)
	}
}

func TestCallToolSuccess(t *testing.T) {
	session := setupTestClient(t, &stubAPI{})

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      formtools.ToolCreateForm,
		Arguments: map[string]any{"title": "Survey"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &out))
	assert.Equal(t, "X", out["formId"])
	assert.Equal(t, "https://docs.google.com/forms/d/X/viewform", out["responderUri"])
}

func TestCallToolIntegerArguments(t *testing.T) {
	api := &stubAPI{}
	session := setupTestClient(t, api)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      formtools.ToolMoveQuestion,
		Arguments: map[string]any{"formId": "F", "fromIndex": 3, "toIndex": 0},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, textOf(t, result))
	require.Equal(t, 1, api.batchCount())

	move := api.batches[0].Requests[0].MoveItem
	assert.Equal(t, int64(3), move.OriginalLocation.Index)
	assert.Equal(t, int64(0), move.NewLocation.Index)
}

func TestCallToolIntegralFloatArguments(t *testing.T) {
	api := &stubAPI{}
	session := setupTestClient(t, api)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      formtools.ToolDeleteQuestion,
		Arguments: json.RawMessage(`{"formId":"F","index":2.0}`),
	})
	require.NoError(t, err)
	require.False(t, result.IsError, textOf(t, result))

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &out))
	assert.Equal(t, float64(2), out["deletedIndex"])
	require.Equal(t, 1, api.batchCount())
	assert.Equal(t, int64(2), api.batches[0].Requests[0].DeleteItem.Location.Index)

	result, err = session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      formtools.ToolDeleteQuestion,
		Arguments: json.RawMessage(`{"formId":"F","index":1e300}`),
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), `invalid argument "index": expected integer`)
	assert.NotContains(t, textOf(t, result), "Go struct")
	assert.Equal(t, 1, api.batchCount())
}

func TestServeOverPipes(t *testing.T) {
	dispatcher, err := formtools.NewDispatcher(&stubAPI{}, nil)
	require.NoError(t, err)
	s := New("forms-mcp-test", "1.0.0", dispatcher, nil)

	serverIn, clientOut := io.Pipe()
	clientIn, serverOut := io.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- s.Serve(ctx, serverIn, serverOut)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &mcp.IOTransport{Reader: clientIn, Writer: clientOut}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		_ = serverIn.Close()
		_ = serverOut.Close()
		cancel()
		select {
		case <-serverDone:
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	result, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, result.Tools, len(formtools.ToolSchemas(nil)))

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      formtools.ToolGetForm,
		Arguments: map[string]any{"formId": "F"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError, textOf(t, res))
}

func TestCallToolValidationFailure(t *testing.T) {
	api := &stubAPI{}
	session := setupTestClient(t, api)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      formtools.ToolUpdateQuestion,
		Arguments: map[string]any{"formId": "F", "index": 4, "required": true},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: Invalid index: 4. Form has 1 items.", textOf(t, result))
	assert.Equal(t, 0, api.batchCount())
}

func TestCallToolNotFound(t *testing.T) {
	session := setupTestClient(t, &stubAPI{})

	_, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "missing_tool",
		Arguments: map[string]any{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing_tool")
}

func TestDecodeArguments(t *testing.T) {
	args, err := decodeArguments(nil)
	require.NoError(t, err)
	assert.Empty(t, args)

	args, err = decodeArguments(json.RawMessage("null"))
	require.NoError(t, err)
	assert.NotNil(t, args)

	args, err = decodeArguments(json.RawMessage(`{"index": 12345678901234}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234"), args["index"])

	_, err = decodeArguments(json.RawMessage(`[1,2]`))
	assert.Error(t, err)
}

func TestContextCancellation(t *testing.T) {
	dispatcher, err := formtools.NewDispatcher(&stubAPI{}, nil)
	require.NoError(t, err)
	s := New("srv", "1.0.0", dispatcher, nil)
	serverTransport, _ := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.run(ctx, serverTransport)
	assert.ErrorIs(t, err, context.Canceled)
}
