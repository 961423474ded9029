package formtools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	slogctx "github.com/veqryn/slog-context"

	"github.com/arreyder/forms-mcp/internal/forms"
	"github.com/arreyder/forms-mcp/internal/textutil"
)

const logPreviewBytes = 512

// Dispatcher routes tool calls by name to their handlers and converts every
// handler outcome into a result envelope.
type Dispatcher struct {
	registry *ToolRegistry
	logger   *slog.Logger
}

// NewDispatcher registers the full catalog backed by api. A nil logger
// discards log output.
func NewDispatcher(api forms.API, logger *slog.Logger) (*Dispatcher, error) {
	if api == nil {
		return nil, fmt.Errorf("forms client is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	registry := NewToolRegistry()
	if err := registry.AddAll(ToolSchemas(NewHandlers(api))); err != nil {
		return nil, err
	}
	return &Dispatcher{registry: registry, logger: logger}, nil
}

// Tools lists the catalog in declaration order.
func (d *Dispatcher) Tools() []*mcp.Tool {
	defs := d.registry.List()
	tools := make([]*mcp.Tool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, def.Tool)
	}
	return tools
}

// Call runs the named tool. The only returned error is *UnknownToolError;
// every other failure is reported in the result with IsError set.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	def, ok := d.registry.Lookup(name)
	if !ok {
		d.logger.WarnContext(ctx, "unknown tool", "tool", name)
		return nil, &UnknownToolError{Name: name}
	}

	ctx = slogctx.Append(ctx, "request_id", uuid.NewString(), "tool", name)
	ctx = slogctx.NewCtx(ctx, d.logger)
	start := time.Now()

	res, err := d.invoke(ctx, def, args)
	elapsed := time.Since(start)
	if err != nil {
		d.logger.ErrorContext(ctx, "tool call failed",
			"kind", string(KindOf(err)),
			"error", err.Error(),
			"duration_ms", elapsed.Milliseconds(),
		)
		return ErrorResult(err), nil
	}

	text := ResultText(res)
	d.logger.InfoContext(ctx, "tool call succeeded",
		"duration_ms", elapsed.Milliseconds(),
		"result_lines", textutil.CountLines(text),
	)
	// Results can hold respondent answers; previews stay at debug.
	if d.logger.Enabled(ctx, slog.LevelDebug) {
		d.logger.DebugContext(ctx, "tool call result", "result_preview", textutil.Preview(text, logPreviewBytes))
	}
	return res, nil
}

func (d *Dispatcher) invoke(ctx context.Context, def ToolDefinition, args map[string]any) (res *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "tool handler panicked", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			res, err = nil, fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ValidateArgs(def.Tool, args); err != nil {
		return nil, err
	}
	payload, err := def.Handler(ctx, args)
	if err != nil {
		return nil, err
	}
	return render(payload)
}
