package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arreyder/forms-mcp/internal/formtools"
)

const instructions = "Google Forms tools: create forms, add and edit questions, and read responses. " +
	"Items are addressed by 0-based index; indexes shift after every insert, delete or move, so call get_form before editing."

// Server serves the forms tool catalog over MCP using the official MCP Go SDK.
type Server struct {
	server     *mcp.Server
	dispatcher *formtools.Dispatcher
	logger     *slog.Logger
}

// New creates a Server and registers every tool known to dispatcher.
func New(name, version string, dispatcher *formtools.Dispatcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, &mcp.ServerOptions{Instructions: instructions})

	s := &Server{server: server, dispatcher: dispatcher, logger: logger}
	for _, tool := range dispatcher.Tools() {
		server.AddTool(tool, s.handler(tool.Name))
	}
	return s
}

// ServeStdio serves MCP over stdin/stdout until ctx is cancelled or the
// client disconnects.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.logger.InfoContext(ctx, "serving MCP over stdio", "tools", len(s.dispatcher.Tools()))
	return s.run(ctx, &mcp.StdioTransport{})
}

// Serve reads requests from in and writes responses to out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	transport := &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	}
	return s.run(ctx, transport)
}

// run starts the server with the given transport. Tests call it directly
// with in-memory transports.
func (s *Server) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArguments(req.Params.Arguments)
		if err != nil {
			return formtools.ErrorResult(&formtools.ValidationError{
				Field:   "arguments",
				Message: "invalid arguments: " + err.Error(),
				Hint:    "Arguments must be a JSON object.",
			}), nil
		}
		return s.dispatcher.Call(ctx, name, args)
	}
}

// decodeArguments keeps numbers as json.Number so integer arguments are not
// rounded through float64.
func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	args := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return args, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil {
		return nil, err
	}
	return args, nil
}

// nopWriteCloser wraps an io.Writer as an io.WriteCloser with a no-op Close.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
